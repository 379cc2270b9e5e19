package validate_qr

import (
	"errors"
	"net/http"

	"github.com/m04kA/EVC-BookingService/internal/api/handlers"
	"github.com/m04kA/EVC-BookingService/internal/service/qrtoken"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingQRData      = "отсутствуют данные QR кода"
	msgMalformedToken     = "QR код поврежден или подделан"
	msgTokenExpired       = "срок действия QR кода истек"
	msgUnknownVersion     = "неизвестная версия формата QR кода"
	msgBookingNotFound    = "бронирование из QR кода не найдено"
	msgNotApproved        = "бронирование из QR кода не подтверждено"
	msgBookingMismatch    = "данные QR кода расходятся с бронированием"
)

type Handler struct {
	service QRTokenService
	logger  Logger
}

func NewHandler(service QRTokenService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/qrcodes/validate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateQRRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /qrcodes/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.QRData == "" {
		h.logger.Warn("POST /qrcodes/validate - Missing QR data")
		handlers.RespondBadRequest(w, msgMissingQRData)
		return
	}

	payload, err := h.service.Validate(r.Context(), req.QRData)
	if err != nil {
		switch {
		case errors.Is(err, qrtoken.ErrMalformedToken):
			h.logger.Warn("POST /qrcodes/validate - Malformed token")
			handlers.RespondBadRequest(w, msgMalformedToken)

		case errors.Is(err, qrtoken.ErrTokenExpired):
			h.logger.Warn("POST /qrcodes/validate - Token expired")
			handlers.RespondError(w, http.StatusGone, msgTokenExpired)

		case errors.Is(err, qrtoken.ErrUnknownVersion):
			h.logger.Warn("POST /qrcodes/validate - Unknown token version")
			handlers.RespondBadRequest(w, msgUnknownVersion)

		case errors.Is(err, qrtoken.ErrBookingNotFound):
			h.logger.Warn("POST /qrcodes/validate - Booking not found")
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, qrtoken.ErrBookingNotApproved):
			h.logger.Warn("POST /qrcodes/validate - Booking not approved")
			handlers.RespondError(w, http.StatusConflict, msgNotApproved)

		case errors.Is(err, qrtoken.ErrBookingMismatch):
			h.logger.Warn("POST /qrcodes/validate - Booking mismatch")
			handlers.RespondError(w, http.StatusConflict, msgBookingMismatch)

		default:
			h.logger.Error("POST /qrcodes/validate - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /qrcodes/validate - Token validated: booking_id=%d", payload.BookingID)
	handlers.RespondJSON(w, http.StatusOK, FromPayload(payload))
}
