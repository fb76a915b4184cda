package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventrsvp/internal/domain"
)

// The full lifecycle at the service layer: register two users, one hosts
// an event and invites guests, responses arrive both anonymously and
// authenticated, the host reschedules and the responses are discarded.
func TestEventLifecycle(t *testing.T) {
	ctx := context.Background()

	users := &mockUserRepository{usersByID: map[string]*domain.User{}, usersByEmail: map[string]*domain.User{}}
	events := &mockEventRepository{}
	rsvps := &mockRSVPRepository{}
	invitations := &mockInvitationRepository{}
	emails := &mockEmailService{}

	auth := NewAuthService(users, &mockHasher{}, &mockIssuer{}, time.Hour, testTimeout)
	eventSvc := NewEventService(events, rsvps, users, invitations, emails, testTimeout)
	rsvpSvc := NewRSVPService(events, rsvps, users, testTimeout)

	// Host registers.
	_, err := auth.Register(ctx, "host@example.com", "password123", "Ana", "Lima")
	require.NoError(t, err)
	host := users.created[0]
	users.usersByID[host.ID] = host
	users.usersByEmail[host.Email] = host

	// Guest registers.
	_, err = auth.Register(ctx, "guest@example.com", "password123", "Jo", "Reyes")
	require.NoError(t, err)
	guest := users.created[1]
	users.usersByID[guest.ID] = guest
	users.usersByEmail[guest.Email] = guest

	// Host creates an event.
	event, err := eventSvc.Create(ctx, host.ID, domain.CreateEventInput{
		Title:     "Team Offsite",
		Location:  "Lisbon",
		StartDate: time.Now().Add(7 * 24 * time.Hour),
	})
	require.NoError(t, err)
	require.NotEmpty(t, event.RSVPToken)

	// Host invites two people.
	failed, err := eventSvc.Invite(ctx, event.ID, host.ID, []domain.Recipient{
		{Email: guest.Email, Name: "Jo"},
		{Email: "outsider@example.com"},
	}, "See you there!")
	require.NoError(t, err)
	require.Empty(t, failed)
	require.Len(t, emails.invites, 2)
	tokenFromEmail := emails.invites[0].RSVPToken
	assert.Equal(t, event.RSVPToken, tokenFromEmail)

	// The registered guest RSVPs with their account.
	_, err = rsvpSvc.Submit(ctx, guest.ID, domain.RSVPInput{
		EventID:   event.ID,
		RSVPToken: tokenFromEmail,
		Status:    "ACCEPTED",
	})
	require.NoError(t, err)

	// The outsider RSVPs anonymously, then changes their mind.
	_, err = rsvpSvc.Submit(ctx, "", domain.RSVPInput{
		EventID:   event.ID,
		RSVPToken: tokenFromEmail,
		Name:      "Sam",
		Email:     "outsider@example.com",
		Status:    "MAYBE",
	})
	require.NoError(t, err)
	_, err = rsvpSvc.Submit(ctx, "", domain.RSVPInput{
		EventID:   event.ID,
		RSVPToken: tokenFromEmail,
		Name:      "Sam",
		Email:     "Outsider@Example.com",
		Status:    "DECLINED",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, rsvps.count(event.ID), "case-folded email coalesces to the same identity")

	// The token holder can view the event but not the responder list.
	view, err := eventSvc.GetDetailed(ctx, event.ID, "", tokenFromEmail)
	require.NoError(t, err)
	assert.Nil(t, view.RSVPs)

	// The guest sees their RSVP with the parent event attached.
	mine, err := rsvpSvc.ListForUser(ctx, guest.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, domain.RSVPAccepted, mine[0].Status)

	// The host reschedules; every RSVP is invalidated.
	newStart := time.Now().Add(14 * 24 * time.Hour)
	_, err = eventSvc.Modify(ctx, host.ID, domain.ModifyEventInput{
		EventID: event.ID,
		Update:  domain.EventUpdate{StartDate: &newStart},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, rsvps.count(event.ID))
}
