package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"eventrsvp/internal/domain"
)

const eventColumns = `id, title, description, location, start_date, end_date, created_at, creator_id, slug, rsvp_token, creation_status`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, location, start_date, end_date, created_at, creator_id, slug, rsvp_token, creation_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	var endDate sql.NullTime
	if e.EndDate != nil {
		endDate = sql.NullTime{Time: *e.EndDate, Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Location, e.StartDate, endDate,
		e.CreatedAt, e.CreatorID, e.Slug, e.RSVPToken, e.CreationStatus,
	).Scan(&e.ID)
}

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	var endDate sql.NullTime
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Location, &e.StartDate, &endDate,
		&e.CreatedAt, &e.CreatorID, &e.Slug, &e.RSVPToken, &e.CreationStatus,
	)
	if err != nil {
		return nil, err
	}
	if endDate.Valid {
		t := endDate.Time
		e.EndDate = &t
	}
	return e, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetDetailed(ctx context.Context, id string) (*domain.Event, error) {
	e, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.attachDetails(ctx, []*domain.Event{e}); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListByCreator(ctx context.Context, creatorID string, params domain.ListParams) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE creator_id = $1 ORDER BY created_at DESC`
	args := []any{creatorID}
	if params.Limit != nil {
		args = append(args, *params.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if params.Offset != nil {
		args = append(args, *params.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachDetails(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

// attachDetails loads creator summaries and RSVP lists for the events.
func (r *eventRepository) attachDetails(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Event, len(events))
	eventIDs := make([]string, 0, len(events))
	creatorIDs := make([]string, 0, len(events))
	for _, e := range events {
		byID[e.ID] = e
		e.RSVPs = []*domain.RSVP{}
		eventIDs = append(eventIDs, e.ID)
		creatorIDs = append(creatorIDs, e.CreatorID)
	}

	creatorQuery := `SELECT id, first_name, last_name, email FROM users WHERE id = ANY($1)`
	creatorRows, err := r.DB.QueryContext(ctx, creatorQuery, pq.Array(creatorIDs))
	if err != nil {
		return err
	}
	defer creatorRows.Close()
	creators := make(map[string]*domain.UserSummary)
	for creatorRows.Next() {
		var id string
		summary := &domain.UserSummary{}
		if err := creatorRows.Scan(&id, &summary.FirstName, &summary.LastName, &summary.Email); err != nil {
			return err
		}
		creators[id] = summary
	}
	if err := creatorRows.Err(); err != nil {
		return err
	}
	for _, e := range events {
		e.Creator = creators[e.CreatorID]
	}

	rsvpQuery := `SELECT ` + rsvpColumns + ` FROM rsvps WHERE event_id = ANY($1) ORDER BY created_at`
	rsvpRows, err := r.DB.QueryContext(ctx, rsvpQuery, pq.Array(eventIDs))
	if err != nil {
		return err
	}
	defer rsvpRows.Close()
	for rsvpRows.Next() {
		rsvp, err := scanRSVP(rsvpRows)
		if err != nil {
			return err
		}
		if e, ok := byID[rsvp.EventID]; ok {
			e.RSVPs = append(e.RSVPs, rsvp)
		}
	}
	return rsvpRows.Err()
}

func (r *eventRepository) Update(ctx context.Context, eventID, creatorID string, update domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{}
	args := []any{}
	n := 1
	addClause := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if update.Title != nil {
		addClause("title", *update.Title)
	}
	if update.Description != nil {
		addClause("description", *update.Description)
	}
	if update.Location != nil {
		addClause("location", *update.Location)
	}
	if update.StartDate != nil {
		addClause("start_date", *update.StartDate)
	}
	if update.EndDate != nil {
		addClause("end_date", *update.EndDate)
	}
	if update.CreationStatus != nil {
		addClause("creation_status", string(*update.CreationStatus))
	}
	if len(setClauses) == 0 {
		// Nothing to change; still verify ownership via the same match.
		return r.getByIDAndCreator(ctx, eventID, creatorID)
	}
	args = append(args, eventID, creatorID)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d AND creator_id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, n+1, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) getByIDAndCreator(ctx context.Context, eventID, creatorID string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND creator_id = $2`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, eventID, creatorID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, eventID, creatorID string) (*domain.Event, error) {
	snapshot, err := r.getByIDAndCreator(ctx, eventID, creatorID)
	if err != nil {
		return nil, err
	}
	if err := r.attachDetails(ctx, []*domain.Event{snapshot}); err != nil {
		return nil, err
	}

	// The FK cascade removes the RSVPs with the event in one statement,
	// so the deletion is atomic for the caller.
	query := `DELETE FROM events WHERE id = $1 AND creator_id = $2`
	result, err := r.DB.ExecContext(ctx, query, eventID, creatorID)
	if err != nil {
		return nil, err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, domain.ErrNotFound
	}
	return snapshot, nil
}
