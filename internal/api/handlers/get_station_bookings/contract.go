package get_station_bookings

import (
	"context"

	"github.com/m04kA/EVC-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetByStation(ctx context.Context, stationID int64, activeOnly bool) (*models.BookingListResponse, error)
	GetByOperator(ctx context.Context, operatorUsername string) (*models.BookingListResponse, error)
	HasActiveBookings(ctx context.Context, stationID int64) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
