package domain

import "time"

// Default configuration values
const (
	DefaultChargingPoints      = 3  // Charging points per station when the directory reports none
	DefaultSlotDurationMinutes = 60 // Hourly slots
	HoursPerDay                = 24
	MinChargingPointNumber     = 1
	MinTimeSlot                = 0
	MaxTimeSlot                = HoursPerDay - 1
)

// Business rule windows
const (
	// ModifyNoticePeriod минимальный срок до начала, в течение которого
	// владелец ещё может изменить или отменить бронирование
	ModifyNoticePeriod = 12 * time.Hour

	// ReservationWindow максимальный горизонт бронирования
	ReservationWindow = 7 * 24 * time.Hour
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BookingReferencePrefix prefix of generated human-readable booking references
const BookingReferencePrefix = "EVB"
