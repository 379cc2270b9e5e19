package get_owner_bookings

import (
	"context"

	"github.com/m04kA/EVC-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetUpcomingByOwner(ctx context.Context, nic string) (*models.BookingListResponse, error)
	GetHistoryByOwner(ctx context.Context, nic string) (*models.BookingListResponse, error)
	GetCountsByOwner(ctx context.Context, nic string) (*models.OwnerBookingCounts, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
