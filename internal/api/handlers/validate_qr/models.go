package validate_qr

import (
	"time"

	"github.com/m04kA/EVC-BookingService/internal/service/qrtoken"
)

// ValidateQRRequest HTTP request model
type ValidateQRRequest struct {
	QRData string `json:"qrData"`
}

// ValidateQRResponse HTTP response model
type ValidateQRResponse struct {
	Valid               bool      `json:"valid"`
	BookingID           int64     `json:"bookingId"`
	BookingReference    string    `json:"bookingReference"`
	OwnerNIC            string    `json:"ownerNic"`
	StationID           int64     `json:"stationId"`
	ChargingPointNumber int       `json:"chargingPointNumber"`
	StartTime           time.Time `json:"startTime"`
	DurationMinutes     int       `json:"durationMinutes"`
	Status              string    `json:"status"`
	GeneratedAt         time.Time `json:"generatedAt"`
	ExpiresAt           time.Time `json:"expiresAt"`
}

// FromPayload конвертирует результат валидации в HTTP response
func FromPayload(p *qrtoken.Payload) *ValidateQRResponse {
	return &ValidateQRResponse{
		Valid:               true,
		BookingID:           p.BookingID,
		BookingReference:    p.BookingReference,
		OwnerNIC:            p.OwnerNIC,
		StationID:           p.StationID,
		ChargingPointNumber: p.ChargingPointNumber,
		StartTime:           p.StartTime,
		DurationMinutes:     p.DurationMinutes,
		Status:              string(p.Status),
		GeneratedAt:         p.GeneratedAt,
		ExpiresAt:           p.ExpiresAt,
	}
}
