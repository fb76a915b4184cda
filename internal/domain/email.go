package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// InviteEmailData holds data for the "you're invited" email.
type InviteEmailData struct {
	Email         string
	Name          string
	HostName      string
	EventTitle    string
	EventLocation string
	StartDate     string
	EndDate       string
	RSVPToken     string
	EventID       string
	CustomMessage string
}

// EventChangedEmailData holds data for the "event details changed" email
// sent to responders whose RSVPs were invalidated.
type EventChangedEmailData struct {
	Email         string
	Name          string
	EventTitle    string
	EventLocation string
	StartDate     string
	EndDate       string
	RSVPToken     string
	EventID       string
}

// EmailService defines the contract for sending domain-level emails.
// Sends are fire-and-forget from the caller's perspective: a failure is
// returned but never retried here.
type EmailService interface {
	SendInvite(ctx context.Context, data *InviteEmailData) error
	SendEventChanged(ctx context.Context, data *EventChangedEmailData) error
}
