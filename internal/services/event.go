package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"eventrsvp/internal/domain"
)

// maxConcurrentSends bounds the invitation fan-out.
const maxConcurrentSends = 4

const emailDateFormat = "January 2, 2006 at 3:04 PM MST"

type eventService struct {
	eventRepo      domain.EventRepository
	rsvpRepo       domain.RSVPRepository
	userRepo       domain.UserRepository
	invitationRepo domain.EventInvitationRepository
	emailService   domain.EmailService
	contextTimeout time.Duration
}

func NewEventService(
	eventRepo domain.EventRepository,
	rsvpRepo domain.RSVPRepository,
	userRepo domain.UserRepository,
	invitationRepo domain.EventInvitationRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		rsvpRepo:       rsvpRepo,
		userRepo:       userRepo,
		invitationRepo: invitationRepo,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

var slugStripPattern = regexp.MustCompile(`[^a-z0-9]+`)

// newSlug derives a unique public identifier from the title plus a ULID
// suffix; the suffix alone guarantees uniqueness, the title part is for
// readability.
func newSlug(title string) string {
	base := slugStripPattern.ReplaceAllString(strings.ToLower(title), "-")
	base = strings.Trim(base, "-")
	if len(base) > 40 {
		base = base[:40]
	}
	suffix := strings.ToLower(ulid.Make().String())
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

func (s *eventService) Create(ctx context.Context, creatorID string, in domain.CreateEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if creatorID == "" {
		return nil, fmt.Errorf("event creator is required")
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return nil, domain.ErrInvalidInput
	}
	status := in.CreationStatus
	if status == "" {
		status = domain.CreationPublished
	}

	event := &domain.Event{
		Title:          strings.TrimSpace(in.Title),
		Description:    in.Description,
		Location:       in.Location,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		CreatedAt:      time.Now(),
		CreatorID:      creatorID,
		Slug:           newSlug(in.Title),
		RSVPToken:      uuid.NewString(),
		CreationStatus: status,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	event.Status = event.ScheduleStatusAt(time.Now())
	return event, nil
}

func (s *eventService) ListByOwner(ctx context.Context, ownerID string, params domain.ListParams) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByCreator(ctx, ownerID, params)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	now := time.Now()
	for _, e := range events {
		e.Status = e.ScheduleStatusAt(now)
	}
	return events, nil
}

func (s *eventService) GetDetailed(ctx context.Context, eventID, callerID, rsvpToken string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetDetailed(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	event.Status = event.ScheduleStatusAt(time.Now())

	switch domain.ResolveCapability(callerID, rsvpToken, event) {
	case domain.CapabilityOwner:
		invs, err := s.invitationRepo.ListByEventID(ctx, event.ID)
		if err != nil {
			return nil, fmt.Errorf("list invitations: %w", err)
		}
		event.Invitations = invs
		return event, nil
	case domain.CapabilityTokenHolder:
		// Token holders see the event without other responders.
		event.RSVPs = nil
		return event, nil
	default:
		return nil, domain.ErrForbidden
	}
}

func (s *eventService) Modify(ctx context.Context, callerID string, in domain.ModifyEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	current, err := s.eventRepo.GetByID(ctx, in.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	// A non-owner gets the same answer as a missing event so the lookup
	// does not confirm the event exists.
	if current.CreatorID != callerID {
		return nil, domain.ErrNotFound
	}

	newStart := current.StartDate
	if in.Update.StartDate != nil {
		newStart = *in.Update.StartDate
	}
	newEnd := current.EndDate
	if in.Update.EndDate != nil {
		newEnd = in.Update.EndDate
	}
	if newEnd != nil && newEnd.Before(newStart) {
		return nil, domain.ErrInvalidInput
	}

	updated, err := s.eventRepo.Update(ctx, in.EventID, callerID, in.Update)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	updated.Status = updated.ScheduleStatusAt(time.Now())

	// A new start date invalidates every response made against the old
	// schedule: hard-delete them before answering, then tell the (former)
	// responders. The sends happen after the response and never affect it.
	if in.Update.StartDate != nil {
		invalidated, err := s.rsvpRepo.DeleteByEventID(ctx, in.EventID)
		if err != nil {
			return nil, fmt.Errorf("invalidate rsvps: %w", err)
		}
		if len(invalidated) > 0 {
			go s.notifyEventChanged(updated, invalidated)
		}
	}

	return updated, nil
}

// notifyEventChanged dispatches a change notice to each former responder.
// Failures are logged and never propagate; each recipient is independent.
func (s *eventService) notifyEventChanged(event *domain.Event, recipients []*domain.RSVP) {
	ctx, cancel := context.WithTimeout(context.Background(), s.contextTimeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, rsvp := range recipients {
		wg.Add(1)
		go func(rsvp *domain.RSVP) {
			defer wg.Done()
			data := &domain.EventChangedEmailData{
				Email:         rsvp.Email,
				Name:          rsvp.Name,
				EventTitle:    event.Title,
				EventLocation: event.Location,
				StartDate:     event.StartDate.Format(emailDateFormat),
				RSVPToken:     event.RSVPToken,
				EventID:       event.ID,
			}
			if event.EndDate != nil {
				data.EndDate = event.EndDate.Format(emailDateFormat)
			}
			if err := s.emailService.SendEventChanged(ctx, data); err != nil {
				log.Printf("[EVENTS] failed to notify %s of change to event %s: %v", rsvp.Email, event.ID, err)
			}
		}(rsvp)
	}
	wg.Wait()
}

func (s *eventService) Delete(ctx context.Context, eventID, callerID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	deleted, err := s.eventRepo.Delete(ctx, eventID, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete event: %w", err)
	}
	deleted.Status = deleted.ScheduleStatusAt(time.Now())
	return deleted, nil
}

func (s *eventService) Invite(ctx context.Context, eventID, callerID string, recipients []domain.Recipient, customMessage string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.CreatorID != callerID {
		return nil, domain.ErrNotFound
	}

	hostName := "The event host"
	if owner, err := s.userRepo.GetByID(ctx, callerID); err == nil {
		name := strings.TrimSpace(owner.FirstName + " " + owner.LastName)
		if name != "" {
			hostName = name
		} else if owner.Email != "" {
			hostName = owner.Email
		}
	}
	if customMessage == "" {
		customMessage = "You have been invited to an event. Please check the details below."
	}

	var mu sync.Mutex
	var failed []string
	g := new(errgroup.Group)
	g.SetLimit(maxConcurrentSends)

	for _, recipient := range recipients {
		email := strings.TrimSpace(strings.ToLower(recipient.Email))
		if email == "" {
			continue
		}
		name := recipient.Name
		// Every recipient is attempted; one failure never short-circuits
		// the rest, so the goroutines always return nil.
		g.Go(func() error {
			data := &domain.InviteEmailData{
				Email:         email,
				Name:          name,
				HostName:      hostName,
				EventTitle:    event.Title,
				EventLocation: event.Location,
				StartDate:     event.StartDate.Format(emailDateFormat),
				RSVPToken:     event.RSVPToken,
				EventID:       event.ID,
				CustomMessage: customMessage,
			}
			if event.EndDate != nil {
				data.EndDate = event.EndDate.Format(emailDateFormat)
			}
			if err := s.emailService.SendInvite(ctx, data); err != nil {
				log.Printf("[EVENTS] failed to invite %s to event %s: %v", email, event.ID, err)
				mu.Lock()
				failed = append(failed, email)
				mu.Unlock()
				return nil
			}
			inv := &domain.EventInvitation{EventID: event.ID, Email: email, SentAt: time.Now()}
			if err := s.invitationRepo.Create(ctx, inv); err != nil {
				log.Printf("[EVENTS] failed to record invitation for %s: %v", email, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return failed, nil
}
