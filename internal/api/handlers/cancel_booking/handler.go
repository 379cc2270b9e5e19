package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/EVC-BookingService/internal/api/handlers"
	"github.com/m04kA/EVC-BookingService/internal/api/middleware"
	"github.com/m04kA/EVC-BookingService/internal/service/bookings"
	"github.com/m04kA/EVC-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgCannotCancel       = "бронирование в текущем статусе нельзя отменить"
	msgWindowClosed       = "отмена возможна не позднее чем за 12 часов до начала"
)

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

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Владелец может отменять только свои бронирования
	if role, _ := middleware.GetRole(r.Context()); role == middleware.RoleOwner {
		existing, err := h.service.GetByID(r.Context(), bookingID)
		if err != nil {
			if errors.Is(err, bookings.ErrBookingNotFound) {
				handlers.RespondNotFound(w, msgNotFound)
				return
			}
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed to get booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
			return
		}

		nic, _ := middleware.GetOwnerNIC(r.Context())
		if nic != existing.OwnerNIC {
			h.logger.Warn("PATCH /bookings/{id}/cancel - Access denied: booking_id=%d, owner=%s", bookingID, nic)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
	}

	if err := h.service.Cancel(r.Context(), bookingID, &req); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Cannot cancel: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		case errors.Is(err, bookings.ErrModifyWindowClosed):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Modify window closed: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgWindowClosed)

		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
