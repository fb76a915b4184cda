package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventrsvp/internal/domain"
)

func TestTemplateRenderer_Invite(t *testing.T) {
	renderer := NewTemplateRenderer()

	subject, htmlBody, textBody, err := renderer.Render("invite", &domain.InviteEmailData{
		Email:         "guest@example.com",
		Name:          "Jordan",
		HostName:      "Ana Lima",
		EventTitle:    "Launch Party",
		EventLocation: "Rooftop Bar",
		StartDate:     "October 1, 2026 at 6:00 PM UTC",
		RSVPToken:     "tok-abc",
		EventID:       "ev-1",
		CustomMessage: "Come celebrate with us!",
	})
	require.NoError(t, err)

	assert.Equal(t, "You're Invited: Launch Party", subject)
	assert.Contains(t, textBody, "Jordan")
	assert.Contains(t, textBody, "Come celebrate with us!")
	assert.Contains(t, textBody, "Launch Party")
	assert.Contains(t, htmlBody, "tok-abc")
}

func TestTemplateRenderer_InviteWithoutName(t *testing.T) {
	renderer := NewTemplateRenderer()

	_, _, textBody, err := renderer.Render("invite", &domain.InviteEmailData{
		Email:         "guest@example.com",
		HostName:      "Ana Lima",
		EventTitle:    "Launch Party",
		StartDate:     "October 1, 2026 at 6:00 PM UTC",
		RSVPToken:     "tok-abc",
		EventID:       "ev-1",
		CustomMessage: "Hello",
	})
	require.NoError(t, err)
	assert.Contains(t, textBody, "Hi there")
}

func TestTemplateRenderer_EventChanged(t *testing.T) {
	renderer := NewTemplateRenderer()

	subject, _, textBody, err := renderer.Render("event_changed", &domain.EventChangedEmailData{
		Email:      "guest@example.com",
		Name:       "Jordan",
		EventTitle: "Launch Party",
		StartDate:  "October 2, 2026 at 6:00 PM UTC",
		RSVPToken:  "tok-abc",
		EventID:    "ev-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "Event Details Changed: Launch Party", subject)
	assert.Contains(t, textBody, "Launch Party")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	renderer := NewTemplateRenderer()
	_, _, _, err := renderer.Render("nonexistent", nil)
	assert.Error(t, err)
}
