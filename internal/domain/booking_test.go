package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to approved", StatusPending, StatusApproved, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to started", StatusPending, StatusStarted, false},
		{"pending to completed", StatusPending, StatusCompleted, false},
		{"approved to started", StatusApproved, StatusStarted, true},
		{"approved to completed", StatusApproved, StatusCompleted, true},
		{"approved to cancelled", StatusApproved, StatusCancelled, true},
		{"approved to pending", StatusApproved, StatusPending, false},
		{"started to completed", StatusStarted, StatusCompleted, true},
		{"started to cancelled", StatusStarted, StatusCancelled, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusPending, false},
		{"cancelled to approved", StatusCancelled, StatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.allowed, b.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusPredicates(t *testing.T) {
	t.Run("cancelled booking does not occupy slot", func(t *testing.T) {
		b := &Booking{Status: StatusCancelled}
		assert.False(t, b.IsActive())
		assert.True(t, b.IsTerminal())
	})

	t.Run("completed booking occupies slot but is terminal", func(t *testing.T) {
		b := &Booking{Status: StatusCompleted}
		assert.True(t, b.IsActive())
		assert.True(t, b.IsTerminal())
	})

	t.Run("cancellable statuses", func(t *testing.T) {
		assert.True(t, (&Booking{Status: StatusPending}).CanBeCancelled())
		assert.True(t, (&Booking{Status: StatusApproved}).CanBeCancelled())
		assert.False(t, (&Booking{Status: StatusStarted}).CanBeCancelled())
		assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCancelled())
		assert.False(t, (&Booking{Status: StatusCancelled}).CanBeCancelled())
	})

	t.Run("completable statuses", func(t *testing.T) {
		assert.True(t, (&Booking{Status: StatusApproved}).CanBeCompleted())
		assert.True(t, (&Booking{Status: StatusStarted}).CanBeCompleted())
		assert.False(t, (&Booking{Status: StatusPending}).CanBeCompleted())
	})
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"Pending", "Approved", "Started", "Completed", "Cancelled"} {
		status, ok := ParseStatus(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, BookingStatus(valid), status)
	}

	for _, invalid := range []string{"", "pending", "APPROVED", "Unknown"} {
		_, ok := ParseStatus(invalid)
		assert.False(t, ok, invalid)
	}
}

func TestCanModify(t *testing.T) {
	now := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		start   time.Time
		allowed bool
	}{
		{"13 hours before start", now.Add(13 * time.Hour), true},
		{"exactly 12 hours before start", now.Add(12 * time.Hour), true},
		{"just under 12 hours", now.Add(12*time.Hour - time.Second), false},
		{"1 hour before start", now.Add(time.Hour), false},
		{"start in the past", now.Add(-time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanModify(tt.start, now))
		})
	}
}

func TestIsWithinReservationWindow(t *testing.T) {
	now := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		start  time.Time
		within bool
	}{
		{"now", now, true},
		{"tomorrow", now.AddDate(0, 0, 1), true},
		{"exactly 7 days ahead", now.Add(7 * 24 * time.Hour), true},
		{"just past 7 days", now.Add(7*24*time.Hour + time.Second), false},
		{"8 days ahead", now.AddDate(0, 0, 8), false},
		{"in the past", now.Add(-time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.within, IsWithinReservationWindow(tt.start, now))
		})
	}
}
