package domain

import (
	"context"
	"strings"
	"time"
)

// RSVPStatus is an attendee's response to an event.
type RSVPStatus string

const (
	RSVPAccepted RSVPStatus = "ACCEPTED"
	RSVPDeclined RSVPStatus = "DECLINED"
	RSVPMaybe    RSVPStatus = "MAYBE"
)

// ValidRSVPStatus reports whether s is a recognized RSVP status.
func ValidRSVPStatus(s string) bool {
	switch RSVPStatus(s) {
	case RSVPAccepted, RSVPDeclined, RSVPMaybe:
		return true
	}
	return false
}

// RSVP is one responder's answer for one event. UserID is set when the
// responder was authenticated; for anonymous responders the submitted
// email is the identity. At most one RSVP exists per (event, identity).
// swagger:model RSVP
type RSVP struct {
	ID        string     `json:"id"`
	EventID   string     `json:"eventId"`
	UserID    *string    `json:"userId,omitempty"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Status    RSVPStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`

	Event *Event `json:"event,omitempty"`
}

// IdentityKey returns the deduplication key for this RSVP: the user id
// when present, otherwise the lowercased email.
func (r *RSVP) IdentityKey() string {
	if r.UserID != nil && *r.UserID != "" {
		return *r.UserID
	}
	return strings.ToLower(r.Email)
}

// RSVPRepository defines storage for RSVPs. Upsert must be a single
// conditional write keyed on (event, identity) so two concurrent
// responses from the same identity cannot both insert.
type RSVPRepository interface {
	Upsert(ctx context.Context, rsvp *RSVP) error
	// DeleteByEventID hard-deletes every RSVP for the event and returns
	// the deleted rows.
	DeleteByEventID(ctx context.Context, eventID string) ([]*RSVP, error)
	// ListByUserID returns the user's RSVPs, each with its parent event.
	ListByUserID(ctx context.Context, userID string) ([]*RSVP, error)
}

// RSVPInput is one submitted response. CallerID is empty for anonymous
// responders; Name and Email are only definitive in that case.
type RSVPInput struct {
	EventID   string
	RSVPToken string
	Name      string
	Email     string
	Status    string
}

// RSVPService defines the token-gated RSVP upsert and the per-user view.
type RSVPService interface {
	Submit(ctx context.Context, callerID string, in RSVPInput) (*RSVP, error)
	ListForUser(ctx context.Context, userID string) ([]*RSVP, error)
}
