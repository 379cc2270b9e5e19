package validate_qr

import (
	"context"

	"github.com/m04kA/EVC-BookingService/internal/service/qrtoken"
)

type QRTokenService interface {
	Validate(ctx context.Context, token string) (*qrtoken.Payload, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
