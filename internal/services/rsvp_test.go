package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventrsvp/internal/domain"
)

func newRSVPFixture() (domain.RSVPService, *mockRSVPRepository) {
	event := &domain.Event{
		ID:             "ev-1",
		Title:          "Party",
		StartDate:      time.Now().Add(24 * time.Hour),
		CreatorID:      "owner-1",
		RSVPToken:      "tok-1",
		CreationStatus: domain.CreationPublished,
	}
	events := &mockEventRepository{events: map[string]*domain.Event{"ev-1": event}}
	users := &mockUserRepository{usersByID: map[string]*domain.User{
		"user-1": {ID: "user-1", FirstName: "Ana", LastName: "Lima", Email: "account@example.com"},
	}}
	rsvps := &mockRSVPRepository{}
	return NewRSVPService(events, rsvps, users, testTimeout), rsvps
}

func TestRSVPService_Submit_Anonymous(t *testing.T) {
	ctx := context.Background()
	svc, rsvps := newRSVPFixture()

	rsvp, err := svc.Submit(ctx, "", domain.RSVPInput{
		EventID:   "ev-1",
		RSVPToken: "tok-1",
		Name:      "Guest",
		Email:     "guest@example.com",
		Status:    "ACCEPTED",
	})
	require.NoError(t, err)
	assert.Nil(t, rsvp.UserID)
	assert.Equal(t, "Guest", rsvp.Name)
	assert.Equal(t, domain.RSVPAccepted, rsvp.Status)
	assert.Equal(t, 1, rsvps.count("ev-1"))
}

func TestRSVPService_Submit_AnonymousResubmitCoalesces(t *testing.T) {
	ctx := context.Background()
	svc, rsvps := newRSVPFixture()

	_, err := svc.Submit(ctx, "", domain.RSVPInput{
		EventID: "ev-1", RSVPToken: "tok-1", Email: "guest@example.com", Status: "ACCEPTED",
	})
	require.NoError(t, err)
	second, err := svc.Submit(ctx, "", domain.RSVPInput{
		EventID: "ev-1", RSVPToken: "tok-1", Email: "guest@example.com", Status: "DECLINED",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, rsvps.count("ev-1"), "same identity coalesces to one row")
	assert.Equal(t, domain.RSVPDeclined, second.Status)
}

func TestRSVPService_Submit_AuthenticatedUsesAccountIdentity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRSVPFixture()

	rsvp, err := svc.Submit(ctx, "user-1", domain.RSVPInput{
		EventID:   "ev-1",
		RSVPToken: "tok-1",
		Name:      "Spoofed Name",
		Email:     "spoofed@example.com",
		Status:    "MAYBE",
	})
	require.NoError(t, err)
	require.NotNil(t, rsvp.UserID)
	assert.Equal(t, "user-1", *rsvp.UserID)
	assert.Equal(t, "Ana Lima", rsvp.Name, "name comes from the account, not the request")
	assert.Equal(t, "account@example.com", rsvp.Email)
}

func TestRSVPService_Submit_TokenFailures(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRSVPFixture()

	tests := []struct {
		name string
		in   domain.RSVPInput
	}{
		{
			name: "missing token",
			in:   domain.RSVPInput{EventID: "ev-1", Email: "g@example.com", Status: "ACCEPTED"},
		},
		{
			name: "wrong token",
			in:   domain.RSVPInput{EventID: "ev-1", RSVPToken: "bogus", Email: "g@example.com", Status: "ACCEPTED"},
		},
		{
			// A missing event answers exactly like a wrong token so the
			// endpoint cannot be used to probe for event existence.
			name: "unknown event",
			in:   domain.RSVPInput{EventID: "missing", RSVPToken: "tok-1", Email: "g@example.com", Status: "ACCEPTED"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, "", tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}
}

func TestRSVPService_Submit_InvalidInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRSVPFixture()

	t.Run("bad status", func(t *testing.T) {
		_, err := svc.Submit(ctx, "", domain.RSVPInput{
			EventID: "ev-1", RSVPToken: "tok-1", Email: "g@example.com", Status: "PERHAPS",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("anonymous without email", func(t *testing.T) {
		_, err := svc.Submit(ctx, "", domain.RSVPInput{
			EventID: "ev-1", RSVPToken: "tok-1", Name: "Guest", Status: "ACCEPTED",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestRSVPService_ListForUser(t *testing.T) {
	ctx := context.Background()
	svc, rsvps := newRSVPFixture()

	userID := "user-1"
	require.NoError(t, rsvps.Upsert(ctx, &domain.RSVP{
		EventID: "ev-1",
		UserID:  &userID,
		Email:   "account@example.com",
		Status:  domain.RSVPAccepted,
	}))
	// The repository attaches parent events; the service derives their
	// schedule status at read time.
	rsvps.mu.Lock()
	for _, row := range rsvps.rows {
		row.Event = &domain.Event{
			StartDate:      time.Now().Add(time.Hour),
			CreationStatus: domain.CreationPublished,
		}
	}
	rsvps.mu.Unlock()

	got, err := svc.ListForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Event)
	assert.Equal(t, domain.StatusUpcoming, got[0].Event.Status)
}
