package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventrsvp/internal/domain"
)

type rsvpService struct {
	eventRepo      domain.EventRepository
	rsvpRepo       domain.RSVPRepository
	userRepo       domain.UserRepository
	contextTimeout time.Duration
}

func NewRSVPService(
	eventRepo domain.EventRepository,
	rsvpRepo domain.RSVPRepository,
	userRepo domain.UserRepository,
	timeout time.Duration,
) domain.RSVPService {
	return &rsvpService{
		eventRepo:      eventRepo,
		rsvpRepo:       rsvpRepo,
		userRepo:       userRepo,
		contextTimeout: timeout,
	}
}

// Submit creates or updates the caller's RSVP for the event named by the
// capability token. A missing event and a mismatched token are the same
// failure: the token is a capability, and a wrong one must not reveal
// whether the event exists.
func (s *rsvpService) Submit(ctx context.Context, callerID string, in domain.RSVPInput) (*domain.RSVP, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if in.RSVPToken == "" {
		return nil, domain.ErrInvalidToken
	}
	// Re-checked here independent of schema validation.
	if !domain.ValidRSVPStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}

	event, err := s.eventRepo.GetByID(ctx, in.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if domain.ResolveCapability(callerID, in.RSVPToken, event) == domain.CapabilityDenied {
		return nil, domain.ErrInvalidToken
	}

	rsvp := &domain.RSVP{
		EventID:   event.ID,
		Status:    domain.RSVPStatus(in.Status),
		CreatedAt: time.Now(),
	}
	if callerID != "" {
		// Authenticated responders are identified by user id; their
		// name/email come from the account, not the request.
		user, err := s.userRepo.GetByID(ctx, callerID)
		if err != nil {
			return nil, fmt.Errorf("get user: %w", err)
		}
		rsvp.UserID = &user.ID
		rsvp.Name = strings.TrimSpace(user.FirstName + " " + user.LastName)
		rsvp.Email = user.Email
	} else {
		if strings.TrimSpace(in.Email) == "" {
			return nil, domain.ErrInvalidInput
		}
		rsvp.Name = strings.TrimSpace(in.Name)
		rsvp.Email = strings.TrimSpace(in.Email)
	}

	if err := s.rsvpRepo.Upsert(ctx, rsvp); err != nil {
		return nil, fmt.Errorf("upsert rsvp: %w", err)
	}
	return rsvp, nil
}

func (s *rsvpService) ListForUser(ctx context.Context, userID string) ([]*domain.RSVP, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rsvps, err := s.rsvpRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list rsvps: %w", err)
	}
	now := time.Now()
	for _, rsvp := range rsvps {
		if rsvp.Event != nil {
			rsvp.Event.Status = rsvp.Event.ScheduleStatusAt(now)
		}
	}
	return rsvps, nil
}
