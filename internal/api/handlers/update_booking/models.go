package update_booking

import (
	"time"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	"github.com/m04kA/EVC-BookingService/internal/service/bookings/models"
)

// UpdateBookingRequest HTTP request model
// Все поля опциональны, nil означает "оставить как есть"
type UpdateBookingRequest struct {
	ChargingPointNumber *int    `json:"chargingPointNumber,omitempty"`
	BookingDate         *string `json:"bookingDate,omitempty"` // "2025-10-15"
	TimeSlot            *int    `json:"timeSlot,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateBookingRequest) ToServiceRequest() (*models.UpdateBookingRequest, error) {
	req := &models.UpdateBookingRequest{
		ChargingPointNumber: r.ChargingPointNumber,
		TimeSlot:            r.TimeSlot,
	}

	if r.BookingDate != nil {
		bookingDate, err := time.Parse(domain.DateFormat, *r.BookingDate)
		if err != nil {
			return nil, err
		}
		req.BookingDate = &bookingDate
	}

	return req, nil
}
