package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduleStatusAt(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	end := now.Add(2 * time.Hour)

	tests := []struct {
		name  string
		event Event
		want  ScheduleStatus
	}{
		{
			name:  "before start",
			event: Event{StartDate: now.Add(time.Hour), CreationStatus: CreationPublished},
			want:  StatusUpcoming,
		},
		{
			name:  "between start and end",
			event: Event{StartDate: now.Add(-time.Hour), EndDate: &end, CreationStatus: CreationPublished},
			want:  StatusOngoing,
		},
		{
			name:  "after end",
			event: Event{StartDate: now.Add(-4 * time.Hour), EndDate: timePtr(now.Add(-time.Hour)), CreationStatus: CreationPublished},
			want:  StatusCompleted,
		},
		{
			name:  "no end date inside default window",
			event: Event{StartDate: now.Add(-23 * time.Hour), CreationStatus: CreationPublished},
			want:  StatusOngoing,
		},
		{
			name:  "no end date past default window",
			event: Event{StartDate: now.Add(-25 * time.Hour), CreationStatus: CreationPublished},
			want:  StatusCompleted,
		},
		{
			name:  "archived reads as cancelled regardless of dates",
			event: Event{StartDate: now.Add(time.Hour), CreationStatus: CreationArchived},
			want:  StatusCancelled,
		},
		{
			name:  "starts exactly now is ongoing",
			event: Event{StartDate: now, EndDate: &end, CreationStatus: CreationPublished},
			want:  StatusOngoing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.ScheduleStatusAt(now))
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestRSVPIdentityKey(t *testing.T) {
	userID := "user-1"
	withUser := &RSVP{UserID: &userID, Email: "Someone@Example.com"}
	assert.Equal(t, "user-1", withUser.IdentityKey())

	anonymous := &RSVP{Email: "Guest@Example.COM"}
	assert.Equal(t, "guest@example.com", anonymous.IdentityKey())

	emptyUserID := ""
	blankPointer := &RSVP{UserID: &emptyUserID, Email: "guest@example.com"}
	assert.Equal(t, "guest@example.com", blankPointer.IdentityKey())
}

func TestValidRSVPStatus(t *testing.T) {
	assert.True(t, ValidRSVPStatus("ACCEPTED"))
	assert.True(t, ValidRSVPStatus("DECLINED"))
	assert.True(t, ValidRSVPStatus("MAYBE"))
	assert.False(t, ValidRSVPStatus("maybe"))
	assert.False(t, ValidRSVPStatus(""))
}
