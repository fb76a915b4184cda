package postgres

import (
	"context"
	"database/sql"

	"eventrsvp/internal/domain"
)

const rsvpColumns = `id, event_id, user_id, name, email, status, created_at`

type rsvpRepository struct {
	DB *sql.DB
}

func NewRSVPRepository(db *sql.DB) domain.RSVPRepository {
	return &rsvpRepository{DB: db}
}

func scanRSVP(row interface{ Scan(...any) error }) (*domain.RSVP, error) {
	rsvp := &domain.RSVP{}
	var userID sql.NullString
	err := row.Scan(
		&rsvp.ID, &rsvp.EventID, &userID, &rsvp.Name, &rsvp.Email, &rsvp.Status, &rsvp.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		s := userID.String
		rsvp.UserID = &s
	}
	return rsvp, nil
}

// Upsert writes the RSVP in a single conditional statement against the
// (event, identity) unique index, so two concurrent submissions from the
// same identity cannot produce duplicate rows: the second one updates.
func (r *rsvpRepository) Upsert(ctx context.Context, rsvp *domain.RSVP) error {
	query := `
		INSERT INTO rsvps (event_id, user_id, name, email, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id, COALESCE(user_id::text, lower(email)))
		DO UPDATE SET status = EXCLUDED.status, name = EXCLUDED.name, email = EXCLUDED.email
		RETURNING id, created_at
	`
	var userID sql.NullString
	if rsvp.UserID != nil && *rsvp.UserID != "" {
		userID = sql.NullString{String: *rsvp.UserID, Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query,
		rsvp.EventID, userID, rsvp.Name, rsvp.Email, rsvp.Status, rsvp.CreatedAt,
	).Scan(&rsvp.ID, &rsvp.CreatedAt)
}

func (r *rsvpRepository) DeleteByEventID(ctx context.Context, eventID string) ([]*domain.RSVP, error) {
	query := `DELETE FROM rsvps WHERE event_id = $1 RETURNING ` + rsvpColumns
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deleted := make([]*domain.RSVP, 0)
	for rows.Next() {
		rsvp, err := scanRSVP(rows)
		if err != nil {
			return nil, err
		}
		deleted = append(deleted, rsvp)
	}
	return deleted, rows.Err()
}

func (r *rsvpRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.RSVP, error) {
	query := `
		SELECT r.id, r.event_id, r.user_id, r.name, r.email, r.status, r.created_at,
		       e.id, e.title, e.description, e.location, e.start_date, e.end_date,
		       e.created_at, e.creator_id, e.slug, e.rsvp_token, e.creation_status
		FROM rsvps r
		JOIN events e ON e.id = r.event_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rsvps := make([]*domain.RSVP, 0)
	for rows.Next() {
		rsvp := &domain.RSVP{}
		event := &domain.Event{}
		var rsvpUserID sql.NullString
		var endDate sql.NullTime
		err := rows.Scan(
			&rsvp.ID, &rsvp.EventID, &rsvpUserID, &rsvp.Name, &rsvp.Email, &rsvp.Status, &rsvp.CreatedAt,
			&event.ID, &event.Title, &event.Description, &event.Location, &event.StartDate, &endDate,
			&event.CreatedAt, &event.CreatorID, &event.Slug, &event.RSVPToken, &event.CreationStatus,
		)
		if err != nil {
			return nil, err
		}
		if rsvpUserID.Valid {
			s := rsvpUserID.String
			rsvp.UserID = &s
		}
		if endDate.Valid {
			t := endDate.Time
			event.EndDate = &t
		}
		rsvp.Event = event
		rsvps = append(rsvps, rsvp)
	}
	return rsvps, rows.Err()
}
