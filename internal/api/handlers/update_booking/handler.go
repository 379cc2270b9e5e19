package update_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/EVC-BookingService/internal/api/handlers"
	"github.com/m04kA/EVC-BookingService/internal/api/middleware"
	"github.com/m04kA/EVC-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgCannotUpdate       = "бронирование в текущем статусе нельзя изменить"
	msgWindowClosed       = "изменение возможно не позднее чем за 12 часов до начала"
	msgOutsideWindow      = "новое время начала вне 7-дневного горизонта бронирования"
	msgSlotTaken          = "выбранный слот уже занят"
	msgStationNotFound    = "станция не найдена"
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

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Владелец может изменять только свои бронирования
	if role, _ := middleware.GetRole(r.Context()); role == middleware.RoleOwner {
		existing, err := h.service.GetByID(r.Context(), bookingID)
		if err != nil {
			if errors.Is(err, bookings.ErrBookingNotFound) {
				handlers.RespondNotFound(w, msgNotFound)
				return
			}
			h.logger.Error("PUT /bookings/{id} - Failed to get booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
			return
		}

		nic, _ := middleware.GetOwnerNIC(r.Context())
		if nic != existing.OwnerNIC {
			h.logger.Warn("PUT /bookings/{id} - Access denied: booking_id=%d, owner=%s", bookingID, nic)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
	}

	booking, err := h.service.Update(r.Context(), bookingID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrCannotUpdate):
			h.logger.Warn("PUT /bookings/{id} - Cannot update: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgCannotUpdate)

		case errors.Is(err, bookings.ErrModifyWindowClosed):
			h.logger.Warn("PUT /bookings/{id} - Modify window closed: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgWindowClosed)

		case errors.Is(err, bookings.ErrOutsideReservationWindow):
			h.logger.Warn("PUT /bookings/{id} - Outside reservation window: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgOutsideWindow)

		case errors.Is(err, bookings.ErrSlotTaken):
			h.logger.Warn("PUT /bookings/{id} - Slot taken: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, bookings.ErrStationNotFound):
			h.logger.Warn("PUT /bookings/{id} - Station not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgStationNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/{id} - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to update booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking updated successfully: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
