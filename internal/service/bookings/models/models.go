package models

import (
	"time"

	"github.com/m04kA/EVC-BookingService/internal/domain"
)

// Request модели

// UpdateBookingRequest запрос владельца на изменение бронирования
// Обновляются только не-статусные поля; nil означает "оставить как есть"
type UpdateBookingRequest struct {
	ChargingPointNumber *int       `json:"chargingPointNumber,omitempty"`
	BookingDate         *time.Time `json:"bookingDate,omitempty"`
	TimeSlot            *int       `json:"timeSlot,omitempty"`
}

// CancelBookingRequest запрос владельца на отмену бронирования
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// CompleteBookingRequest запрос на завершение зарядной сессии
// QRData - необязательный QR токен для best-effort подтверждения
type CompleteBookingRequest struct {
	QRData *string `json:"qrData,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                  int64  `json:"id"`
	BookingReference    string `json:"bookingReference"`
	OwnerNIC            string `json:"ownerNic"`
	StationID           int64  `json:"stationId"`
	ChargingPointNumber int    `json:"chargingPointNumber"`

	BookingDate     string    `json:"bookingDate"` // "2025-10-15"
	TimeSlot        int       `json:"timeSlot"`    // 0-23
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`

	Status     string  `json:"status"`
	QRCodeData *string `json:"qrCodeData,omitempty"`

	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// OwnerBookingCounts счетчики бронирований владельца по статусам
type OwnerBookingCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                  b.ID,
		BookingReference:    b.BookingReference,
		OwnerNIC:            b.OwnerNIC,
		StationID:           b.StationID,
		ChargingPointNumber: b.ChargingPointNumber,
		BookingDate:         b.BookingDate.Format(domain.DateFormat),
		TimeSlot:            b.TimeSlot,
		StartTime:           b.StartTime,
		EndTime:             b.EndTime,
		DurationMinutes:     b.DurationMinutes,
		Status:              string(b.Status),
		QRCodeData:          b.QRCodeData,
		CancellationReason:  b.CancellationReason,
		CancelledAt:         b.CancelledAt,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		result.Bookings = append(result.Bookings, *FromDomainBooking(b))
	}
	return result
}
