package domain

import (
	"context"
	"time"
)

// ScheduleStatus is derived from the event dates at read time and never
// stored; persisting it would drift against the wall clock.
type ScheduleStatus string

const (
	StatusUpcoming  ScheduleStatus = "UPCOMING"
	StatusOngoing   ScheduleStatus = "ONGOING"
	StatusCompleted ScheduleStatus = "COMPLETED"
	StatusCancelled ScheduleStatus = "CANCELLED"
)

// CreationStatus is the stored lifecycle state of an event record.
type CreationStatus string

const (
	CreationDraft     CreationStatus = "DRAFT"
	CreationPublished CreationStatus = "PUBLISHED"
	CreationArchived  CreationStatus = "ARCHIVED"
)

// ValidCreationStatus reports whether s is a recognized creation status.
func ValidCreationStatus(s string) bool {
	switch CreationStatus(s) {
	case CreationDraft, CreationPublished, CreationArchived:
		return true
	}
	return false
}

// defaultEventWindow is how long an event without an end date is
// considered ongoing after it starts.
const defaultEventWindow = 24 * time.Hour

// Event represents a user-created event. Slug is its unique public
// identifier; RSVPToken is a per-event capability secret granting
// anonymous view + RSVP access without an account.
// swagger:model Event
type Event struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Location       string         `json:"location"`
	StartDate      time.Time      `json:"startDate"`
	EndDate        *time.Time     `json:"endDate,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	CreatorID      string         `json:"creatorId"`
	Slug           string         `json:"slug"`
	RSVPToken      string         `json:"rsvpToken,omitempty"`
	CreationStatus CreationStatus `json:"creationStatus"`
	Status         ScheduleStatus `json:"status"`

	Creator *UserSummary `json:"creator,omitempty"`
	RSVPs   []*RSVP      `json:"rsvps,omitempty"`
	// Invitations is the send ledger; populated only for the owner's
	// detailed view.
	Invitations []*EventInvitation `json:"invitations,omitempty"`
}

// ScheduleStatusAt computes the derived status for the given instant.
// Archived events read as cancelled regardless of dates.
func (e *Event) ScheduleStatusAt(now time.Time) ScheduleStatus {
	if e.CreationStatus == CreationArchived {
		return StatusCancelled
	}
	if now.Before(e.StartDate) {
		return StatusUpcoming
	}
	end := e.StartDate.Add(defaultEventWindow)
	if e.EndDate != nil {
		end = *e.EndDate
	}
	if now.Before(end) {
		return StatusOngoing
	}
	return StatusCompleted
}

// EventUpdate carries a partial update; nil fields are left unchanged.
type EventUpdate struct {
	Title          *string
	Description    *string
	Location       *string
	StartDate      *time.Time
	EndDate        *time.Time
	CreationStatus *CreationStatus
}

// EventRepository defines the interface for event storage.
// Update and Delete match on (eventID, creatorID) so a non-owner observes
// ErrNotFound rather than learning the event exists.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// GetDetailed loads the event with its creator summary and RSVP list.
	GetDetailed(ctx context.Context, id string) (*Event, error)
	// ListByCreator returns detailed events newest-created-first.
	ListByCreator(ctx context.Context, creatorID string, params ListParams) ([]*Event, error)
	Update(ctx context.Context, eventID, creatorID string, update EventUpdate) (*Event, error)
	// Delete removes the event and its RSVPs in one transaction and
	// returns the detailed record as it was before deletion.
	Delete(ctx context.Context, eventID, creatorID string) (*Event, error)
}

// Recipient identifies one person to invite.
type Recipient struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// EventInvitation records one attempted invitation send.
type EventInvitation struct {
	ID      string    `json:"id"`
	EventID string    `json:"eventId"`
	Email   string    `json:"email"`
	SentAt  time.Time `json:"sentAt"`
}

// EventInvitationRepository defines storage for the invitation ledger.
type EventInvitationRepository interface {
	Create(ctx context.Context, inv *EventInvitation) error
	ListByEventID(ctx context.Context, eventID string) ([]*EventInvitation, error)
}

// CreateEventInput carries the accepted fields for event creation.
type CreateEventInput struct {
	Title          string
	Description    string
	Location       string
	StartDate      time.Time
	EndDate        *time.Time
	CreationStatus CreationStatus
}

// ModifyEventInput carries a partial event mutation.
type ModifyEventInput struct {
	EventID string
	Update  EventUpdate
}

// EventService defines the business logic for event CRUD, access
// resolution, and invitation fan-out.
type EventService interface {
	Create(ctx context.Context, creatorID string, in CreateEventInput) (*Event, error)
	ListByOwner(ctx context.Context, ownerID string, params ListParams) ([]*Event, error)
	// GetDetailed resolves the caller's capability. Owners get the full
	// record, token holders get it with RSVPs stripped, everyone else
	// gets ErrForbidden.
	GetDetailed(ctx context.Context, eventID, callerID, rsvpToken string) (*Event, error)
	Modify(ctx context.Context, callerID string, in ModifyEventInput) (*Event, error)
	Delete(ctx context.Context, eventID, callerID string) (*Event, error)
	// Invite attempts every recipient independently and returns the
	// emails that failed; err is reserved for pre-send failures.
	Invite(ctx context.Context, eventID, callerID string, recipients []Recipient, customMessage string) (failed []string, err error)
}
