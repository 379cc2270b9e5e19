package create_slot_booking

import (
	"context"

	createSlotBooking "github.com/m04kA/EVC-BookingService/internal/usecase/create_slot_booking"
)

type CreateSlotBookingUseCase interface {
	Execute(ctx context.Context, req *createSlotBooking.Request) (*createSlotBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
