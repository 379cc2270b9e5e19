package create_slot_booking

import (
	"time"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	createSlotBooking "github.com/m04kA/EVC-BookingService/internal/usecase/create_slot_booking"
)

// CreateSlotBookingRequest HTTP request model
type CreateSlotBookingRequest struct {
	OwnerNIC            string `json:"ownerNic"`
	StationID           int64  `json:"stationId"`
	ChargingPointNumber int    `json:"chargingPointNumber"`
	BookingDate         string `json:"bookingDate"` // "2025-10-15"
	TimeSlot            int    `json:"timeSlot"`    // 0-23
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
func (r *CreateSlotBookingRequest) ToUseCaseRequest() (*createSlotBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	return &createSlotBooking.Request{
		OwnerNIC:            r.OwnerNIC,
		StationID:           r.StationID,
		ChargingPointNumber: r.ChargingPointNumber,
		BookingDate:         bookingDate,
		TimeSlot:            r.TimeSlot,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createSlotBooking.Response) *BookingResponse {
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
