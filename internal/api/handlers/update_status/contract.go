package update_status

import (
	"context"

	"github.com/m04kA/EVC-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	UpdateStatusDirect(ctx context.Context, id int64, status string) (*models.BookingResponse, error)
	Approve(ctx context.Context, id int64) (*models.BookingResponse, error)
	Start(ctx context.Context, id int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
