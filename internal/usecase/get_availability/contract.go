package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	"github.com/m04kA/EVC-BookingService/internal/integrations/stationservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByStationWithFilter(ctx context.Context, filter domain.StationBookingsFilter) ([]*domain.Booking, error)
}

// StationServiceClient интерфейс клиента для StationService
type StationServiceClient interface {
	GetStation(ctx context.Context, stationID int64) (*stationservice.Station, error)
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
