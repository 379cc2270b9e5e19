package get_availability

import (
	"time"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	getAvailability "github.com/m04kA/EVC-BookingService/internal/usecase/get_availability"
)

// SlotResponse одна ячейка сетки в HTTP ответе
type SlotResponse struct {
	ChargingPointNumber int       `json:"chargingPointNumber"`
	TimeSlot            int       `json:"timeSlot"`
	TimeRange           string    `json:"timeRange"`
	StartTime           time.Time `json:"startTime"`
	IsAvailable         bool      `json:"isAvailable"`
	BookingID           *int64    `json:"bookingId,omitempty"`
	BookedBy            *string   `json:"bookedBy,omitempty"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	StationID          int64          `json:"stationId"`
	Date               string         `json:"date"`
	ChargingPointCount int            `json:"chargingPointCount"`
	Slots              []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			ChargingPointNumber: s.ChargingPointNumber,
			TimeSlot:            s.TimeSlot,
			TimeRange:           s.TimeRange,
			StartTime:           s.StartTime,
			IsAvailable:         s.IsAvailable,
			BookingID:           s.BookingID,
			BookedBy:            s.BookedBy,
		})
	}

	return &AvailabilityResponse{
		StationID:          resp.StationID,
		Date:               resp.Date.Format(domain.DateFormat),
		ChargingPointCount: resp.ChargingPointCount,
		Slots:              slots,
	}
}
