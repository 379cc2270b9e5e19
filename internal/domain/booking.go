package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusApproved  BookingStatus = "Approved"
	StatusStarted   BookingStatus = "Started"
	StatusCompleted BookingStatus = "Completed"
	StatusCancelled BookingStatus = "Cancelled"
)

// Booking represents a charging point reservation in the system
type Booking struct {
	ID                  int64
	BookingReference    string // Human-readable reference, unique per creation event
	OwnerNIC            string // EV owner identifier, owned by the owner directory
	StationID           int64
	ChargingPointNumber int // 1..N, N comes from the station record

	BookingDate     time.Time // Date only, normalized to midnight UTC
	TimeSlot        int       // Hour of the day, 0..23
	StartTime       time.Time
	EndTime         time.Time // Always StartTime + DurationMinutes
	DurationMinutes int

	Status     BookingStatus
	QRCodeData *string // Issued credential token, if any

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsTerminal returns true if no further transitions are allowed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusApproved
}

// CanBeUpdated returns true if non-status fields of the booking can be updated
func (b *Booking) CanBeUpdated() bool {
	return b.Status == StatusPending || b.Status == StatusApproved
}

// CanBeCompleted returns true if the booking can transition to Completed
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusApproved || b.Status == StatusStarted
}

// CanTransitionTo reports whether the state machine allows moving to next.
// Transitions out of terminal states are never allowed.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusApproved || next == StatusCancelled
	case StatusApproved:
		return next == StatusStarted || next == StatusCompleted || next == StatusCancelled
	case StatusStarted:
		return next == StatusCompleted
	default:
		// Completed and Cancelled are terminal
		return false
	}
}

// ParseStatus converts a raw string into a BookingStatus
func ParseStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusApproved, StatusStarted, StatusCompleted, StatusCancelled:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// CanModify reports whether owner-side modification of a booking with the
// given start time is still allowed: at least 12 hours before the reservation.
func CanModify(startTime, now time.Time) bool {
	return startTime.Sub(now) >= ModifyNoticePeriod
}

// IsWithinReservationWindow reports whether a start time falls inside the
// allowed reservation window: not in the past and at most 7 days ahead.
func IsWithinReservationWindow(startTime, now time.Time) bool {
	return !startTime.Before(now) && !startTime.After(now.Add(ReservationWindow))
}

// StationBookingsFilter фильтр для получения бронирований станции
type StationBookingsFilter struct {
	StationID  int64
	Date       *time.Time     // Фильтр по дате (опционально)
	Status     *BookingStatus // Фильтр по статусу (опционально)
	ActiveOnly bool           // Только бронирования, занимающие слот (status != Cancelled)
}
