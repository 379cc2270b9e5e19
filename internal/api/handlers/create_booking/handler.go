package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/EVC-BookingService/internal/api/handlers"
	createBooking "github.com/m04kA/EVC-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgSlotTaken            = "выбранный слот уже занят"
	msgOwnerNotFound        = "владелец не найден"
	msgStationNotFound      = "станция не найдена"
	msgInvalidChargingPoint = "некорректный номер точки зарядки"
	msgOutsideWindow        = "время начала вне 7-дневного горизонта бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: owner=%s, station=%d", req.OwnerNIC, req.StationID)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createBooking.ErrOwnerNotFound):
			h.logger.Warn("POST /bookings - Owner not found: owner=%s", req.OwnerNIC)
			handlers.RespondNotFound(w, msgOwnerNotFound)

		case errors.Is(err, createBooking.ErrStationNotFound):
			h.logger.Warn("POST /bookings - Station not found: station=%d", req.StationID)
			handlers.RespondNotFound(w, msgStationNotFound)

		case errors.Is(err, createBooking.ErrInvalidChargingPoint):
			h.logger.Warn("POST /bookings - Invalid charging point: owner=%s, station=%d, point=%d",
				req.OwnerNIC, req.StationID, req.ChargingPointNumber)
			handlers.RespondBadRequest(w, msgInvalidChargingPoint)

		case errors.Is(err, createBooking.ErrOutsideReservationWindow):
			h.logger.Warn("POST /bookings - Outside reservation window: owner=%s, start=%s",
				req.OwnerNIC, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideWindow)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: owner=%s, station=%d, error=%v",
				req.OwnerNIC, req.StationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, reference=%s",
		result.ID, result.BookingReference)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
