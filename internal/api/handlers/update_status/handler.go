package update_status

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/EVC-BookingService/internal/api/handlers"
	"github.com/m04kA/EVC-BookingService/internal/service/bookings"
	"github.com/m04kA/EVC-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgInvalidStatus      = "некорректный статус"
	msgInvalidTransition  = "переход в указанный статус недопустим"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
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

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r, "status")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	h.execute(w, "status", bookingID, func(ctx context.Context) (*models.BookingResponse, error) {
		return h.service.UpdateStatusDirect(ctx, bookingID, req.Status)
	}, r)
}

// HandleApprove PATCH /api/v1/bookings/{bookingId}/approve
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r, "approve")
	if !ok {
		return
	}

	h.execute(w, "approve", bookingID, func(ctx context.Context) (*models.BookingResponse, error) {
		return h.service.Approve(ctx, bookingID)
	}, r)
}

// HandleStart PATCH /api/v1/bookings/{bookingId}/start
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r, "start")
	if !ok {
		return
	}

	h.execute(w, "start", bookingID, func(ctx context.Context) (*models.BookingResponse, error) {
		return h.service.Start(ctx, bookingID)
	}, r)
}

func (h *Handler) bookingID(w http.ResponseWriter, r *http.Request, op string) (int64, bool) {
	bookingIDStr := mux.Vars(r)["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/%s - Invalid booking ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return 0, false
	}

	return bookingID, true
}

func (h *Handler) execute(
	w http.ResponseWriter,
	op string,
	bookingID int64,
	fn func(ctx context.Context) (*models.BookingResponse, error),
	r *http.Request,
) {
	booking, err := fn(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/%s - Booking not found: booking_id=%d", op, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("PATCH /bookings/{id}/%s - Invalid status: booking_id=%d, error=%v", op, bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/%s - Invalid transition: booking_id=%d, error=%v", op, bookingID, err)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /bookings/{id}/%s - Failed: booking_id=%d, error=%v", op, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/%s - Status updated: booking_id=%d, status=%s", op, bookingID, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
