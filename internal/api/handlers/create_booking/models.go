package create_booking

import (
	"time"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	createBooking "github.com/m04kA/EVC-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	OwnerNIC            string    `json:"ownerNic"`
	StationID           int64     `json:"stationId"`
	ChargingPointNumber int       `json:"chargingPointNumber"`
	StartTime           time.Time `json:"startTime"` // RFC 3339
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                  int64     `json:"id"`
	BookingReference    string    `json:"bookingReference"`
	OwnerNIC            string    `json:"ownerNic"`
	StationID           int64     `json:"stationId"`
	ChargingPointNumber int       `json:"chargingPointNumber"`
	BookingDate         string    `json:"bookingDate"`
	TimeSlot            int       `json:"timeSlot"`
	StartTime           time.Time `json:"startTime"`
	EndTime             time.Time `json:"endTime"`
	DurationMinutes     int       `json:"durationMinutes"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		OwnerNIC:            r.OwnerNIC,
		StationID:           r.StationID,
		ChargingPointNumber: r.ChargingPointNumber,
		StartTime:           r.StartTime,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                  resp.ID,
		BookingReference:    resp.BookingReference,
		OwnerNIC:            resp.OwnerNIC,
		StationID:           resp.StationID,
		ChargingPointNumber: resp.ChargingPointNumber,
		BookingDate:         resp.BookingDate.Format(domain.DateFormat),
		TimeSlot:            resp.TimeSlot,
		StartTime:           resp.StartTime,
		EndTime:             resp.EndTime,
		DurationMinutes:     resp.DurationMinutes,
		Status:              resp.Status,
		CreatedAt:           resp.CreatedAt,
		UpdatedAt:           resp.UpdatedAt,
	}
}
