package bookings

import (
	"context"
	"time"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	"github.com/m04kA/EVC-BookingService/internal/integrations/ownerservice"
	"github.com/m04kA/EVC-BookingService/internal/integrations/stationservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByOwnerNIC(ctx context.Context, nic string, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetUpcomingByOwnerNIC(ctx context.Context, nic string, now time.Time) ([]*domain.Booking, error)
	GetHistoryByOwnerNIC(ctx context.Context, nic string, now time.Time) ([]*domain.Booking, error)
	CountByOwnerAndStatus(ctx context.Context, nic string, status domain.BookingStatus) (int, error)
	GetByStationWithFilter(ctx context.Context, filter domain.StationBookingsFilter) ([]*domain.Booking, error)
	HasActiveByStation(ctx context.Context, stationID int64) (bool, error)
	Update(ctx context.Context, booking *domain.Booking) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
	SetQRCode(ctx context.Context, id int64, qrData string) error
}

// OwnerServiceClient интерфейс клиента справочника владельцев EV
type OwnerServiceClient interface {
	GetOwner(ctx context.Context, nic string) (*ownerservice.Owner, error)
}

// StationServiceClient интерфейс клиента справочника станций
type StationServiceClient interface {
	GetStation(ctx context.Context, stationID int64) (*stationservice.Station, error)
	GetStationByOperator(ctx context.Context, operatorUsername string) (*stationservice.Station, error)
}

// QRManager интерфейс выпуска и проверки QR токенов бронирований
type QRManager interface {
	Generate(ctx context.Context, booking *domain.Booking) (string, error)
	IsValidFor(ctx context.Context, tokenString string, bookingID int64) bool
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
