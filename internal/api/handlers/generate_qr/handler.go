package generate_qr

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/EVC-BookingService/internal/api/handlers"
	"github.com/m04kA/EVC-BookingService/internal/service/bookings"
	"github.com/m04kA/EVC-BookingService/internal/service/qrtoken"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgNotApproved      = "QR код выдается только для подтвержденных бронирований"
)

// QRCodeResponse HTTP response model
type QRCodeResponse struct {
	BookingID  int64  `json:"bookingId"`
	QRCodeData string `json:"qrCodeData"`
}

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/qrcode
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/qrcode - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	qrData, err := h.service.IssueQRCode(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/qrcode - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, qrtoken.ErrNotApproved):
			h.logger.Warn("POST /bookings/{id}/qrcode - Booking not approved: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgNotApproved)

		default:
			h.logger.Error("POST /bookings/{id}/qrcode - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/qrcode - QR code issued: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, QRCodeResponse{
		BookingID:  bookingID,
		QRCodeData: qrData,
	})
}
