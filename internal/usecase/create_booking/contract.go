package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	"github.com/m04kA/EVC-BookingService/internal/integrations/ownerservice"
	"github.com/m04kA/EVC-BookingService/internal/integrations/stationservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetBySlot(ctx context.Context, stationID int64, pointNumber int, date time.Time, timeSlot int) (*domain.Booking, error)
}

// OwnerServiceClient интерфейс клиента для OwnerService
type OwnerServiceClient interface {
	GetOwner(ctx context.Context, nic string) (*ownerservice.Owner, error)
}

// StationServiceClient интерфейс клиента для StationService
type StationServiceClient interface {
	GetStation(ctx context.Context, stationID int64) (*stationservice.Station, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
