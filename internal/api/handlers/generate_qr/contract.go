package generate_qr

import "context"

type BookingService interface {
	IssueQRCode(ctx context.Context, id int64) (string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
