package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"eventrsvp/internal/domain"
)

type mockUserRepository struct {
	usersByID    map[string]*domain.User
	usersByEmail map[string]*domain.User
	createErr    error
	created      []*domain.User
}

func (m *mockUserRepository) Create(ctx context.Context, u *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	u.ID = "user-" + strconv.Itoa(len(m.created)+1)
	m.created = append(m.created, u)
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := m.usersByEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := m.usersByID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

type mockEventRepository struct {
	events      map[string]*domain.Event
	createErr   error
	updateErr   error
	lastUpdate  *domain.EventUpdate
	deleteCalls int
}

func (m *mockEventRepository) Create(ctx context.Context, e *domain.Event) error {
	if m.createErr != nil {
		return m.createErr
	}
	e.ID = "ev-created"
	if m.events == nil {
		m.events = map[string]*domain.Event{}
	}
	m.events[e.ID] = e
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockEventRepository) GetDetailed(ctx context.Context, id string) (*domain.Event, error) {
	return m.GetByID(ctx, id)
}

func (m *mockEventRepository) ListByCreator(ctx context.Context, creatorID string, params domain.ListParams) ([]*domain.Event, error) {
	var events []*domain.Event
	for _, e := range m.events {
		if e.CreatorID == creatorID {
			events = append(events, e)
		}
	}
	return events, nil
}

func (m *mockEventRepository) Update(ctx context.Context, eventID, creatorID string, update domain.EventUpdate) (*domain.Event, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	m.lastUpdate = &update
	e, ok := m.events[eventID]
	if !ok || e.CreatorID != creatorID {
		return nil, domain.ErrNotFound
	}
	if update.Title != nil {
		e.Title = *update.Title
	}
	if update.StartDate != nil {
		e.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		e.EndDate = update.EndDate
	}
	if update.CreationStatus != nil {
		e.CreationStatus = *update.CreationStatus
	}
	return e, nil
}

func (m *mockEventRepository) Delete(ctx context.Context, eventID, creatorID string) (*domain.Event, error) {
	m.deleteCalls++
	e, ok := m.events[eventID]
	if !ok || e.CreatorID != creatorID {
		return nil, domain.ErrNotFound
	}
	delete(m.events, eventID)
	return e, nil
}

// mockRSVPRepository keys rows the way the store's unique index does, so
// upsert semantics in tests match production.
type mockRSVPRepository struct {
	mu        sync.Mutex
	rows      map[string]*domain.RSVP // eventID + "|" + identity
	upsertErr error
}

func rsvpKey(r *domain.RSVP) string {
	return r.EventID + "|" + r.IdentityKey()
}

func (m *mockRSVPRepository) Upsert(ctx context.Context, rsvp *domain.RSVP) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rows == nil {
		m.rows = map[string]*domain.RSVP{}
	}
	key := rsvpKey(rsvp)
	if existing, ok := m.rows[key]; ok {
		rsvp.ID = existing.ID
		rsvp.CreatedAt = existing.CreatedAt
	} else {
		rsvp.ID = fmt.Sprintf("rsvp-%d", len(m.rows)+1)
	}
	copied := *rsvp
	m.rows[key] = &copied
	return nil
}

func (m *mockRSVPRepository) DeleteByEventID(ctx context.Context, eventID string) ([]*domain.RSVP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	deleted := make([]*domain.RSVP, 0)
	for key, row := range m.rows {
		if row.EventID == eventID {
			deleted = append(deleted, row)
			delete(m.rows, key)
		}
	}
	return deleted, nil
}

func (m *mockRSVPRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.RSVP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rsvps []*domain.RSVP
	for _, row := range m.rows {
		if row.UserID != nil && *row.UserID == userID {
			rsvps = append(rsvps, row)
		}
	}
	return rsvps, nil
}

func (m *mockRSVPRepository) count(eventID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, row := range m.rows {
		if row.EventID == eventID {
			n++
		}
	}
	return n
}

type mockInvitationRepository struct {
	mu      sync.Mutex
	created []*domain.EventInvitation
}

func (m *mockInvitationRepository) Create(ctx context.Context, inv *domain.EventInvitation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, inv)
	return nil
}

func (m *mockInvitationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventInvitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created, nil
}

// mockEmailService records sends and fails the addresses listed in
// failFor.
type mockEmailService struct {
	mu          sync.Mutex
	failFor     map[string]bool
	invites     []*domain.InviteEmailData
	changeSends []*domain.EventChangedEmailData
}

func (m *mockEmailService) SendInvite(ctx context.Context, data *domain.InviteEmailData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[data.Email] {
		return fmt.Errorf("smtp refused %s", data.Email)
	}
	m.invites = append(m.invites, data)
	return nil
}

func (m *mockEmailService) SendEventChanged(ctx context.Context, data *domain.EventChangedEmailData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[data.Email] {
		return fmt.Errorf("smtp refused %s", data.Email)
	}
	m.changeSends = append(m.changeSends, data)
	return nil
}

type mockHasher struct {
	saltErr error
	hashErr error
	wrong   bool
}

func (m *mockHasher) GenerateSalt() (string, error) {
	if m.saltErr != nil {
		return "", m.saltErr
	}
	return "salt", nil
}

func (m *mockHasher) Hash(salt, password string) (string, error) {
	if m.hashErr != nil {
		return "", m.hashErr
	}
	return "hashed:" + salt + ":" + password, nil
}

func (m *mockHasher) Compare(hash, salt, password string) error {
	if m.wrong || hash != "hashed:"+salt+":"+password {
		return fmt.Errorf("mismatch")
	}
	return nil
}

type mockIssuer struct {
	err error
}

func (m *mockIssuer) Issue(userID string, expiry time.Duration) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "token-for-" + userID, nil
}
