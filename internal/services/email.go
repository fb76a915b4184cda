package services

import (
	"context"
	"fmt"
	"log"

	"eventrsvp/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendInvite sends the invitation email using the "invite" template.
func (s *emailService) SendInvite(ctx context.Context, data *domain.InviteEmailData) error {
	if data == nil {
		return fmt.Errorf("invite email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("invite", data)
	if err != nil {
		return fmt.Errorf("failed to render invite template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send invite email: %w", err)
	}
	log.Printf("[EMAIL] Invitation sent to %s", data.Email)
	return nil
}

// SendEventChanged sends the "event details changed" email using the
// "event_changed" template.
func (s *emailService) SendEventChanged(ctx context.Context, data *domain.EventChangedEmailData) error {
	if data == nil {
		return fmt.Errorf("event changed email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("event_changed", data)
	if err != nil {
		return fmt.Errorf("failed to render event_changed template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send event changed email: %w", err)
	}
	log.Printf("[EMAIL] Event change notice sent to %s", data.Email)
	return nil
}
