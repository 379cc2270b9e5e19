package create_slot_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/EVC-BookingService/internal/api/handlers"
	createSlotBooking "github.com/m04kA/EVC-BookingService/internal/usecase/create_slot_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgSlotTaken            = "выбранный слот уже занят"
	msgOwnerNotFound        = "владелец не найден"
	msgStationNotFound      = "станция не найдена"
	msgInvalidChargingPoint = "некорректный номер точки зарядки"
	msgInvalidTimeSlot      = "некорректный временной слот"
	msgOutsideWindow        = "время начала вне 7-дневного горизонта бронирования"
)

type Handler struct {
	useCase CreateSlotBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateSlotBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSlotBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/slots - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createSlotBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings/slots - Slot taken: owner=%s, station=%d", req.OwnerNIC, req.StationID)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createSlotBooking.ErrOwnerNotFound):
			h.logger.Warn("POST /bookings/slots - Owner not found: owner=%s", req.OwnerNIC)
			handlers.RespondNotFound(w, msgOwnerNotFound)

		case errors.Is(err, createSlotBooking.ErrStationNotFound):
			h.logger.Warn("POST /bookings/slots - Station not found: station=%d", req.StationID)
			handlers.RespondNotFound(w, msgStationNotFound)

		case errors.Is(err, createSlotBooking.ErrInvalidChargingPoint):
			h.logger.Warn("POST /bookings/slots - Invalid charging point: owner=%s, station=%d, point=%d",
				req.OwnerNIC, req.StationID, req.ChargingPointNumber)
			handlers.RespondBadRequest(w, msgInvalidChargingPoint)

		case errors.Is(err, createSlotBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings/slots - Invalid time slot: owner=%s, slot=%d", req.OwnerNIC, req.TimeSlot)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createSlotBooking.ErrOutsideReservationWindow):
			h.logger.Warn("POST /bookings/slots - Outside reservation window: owner=%s, date=%s",
				req.OwnerNIC, req.BookingDate)
			handlers.RespondBadRequest(w, msgOutsideWindow)

		case errors.Is(err, createSlotBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/slots - Failed to create booking: owner=%s, station=%d, error=%v",
				req.OwnerNIC, req.StationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings/slots - Booking created successfully: booking_id=%d, reference=%s",
		result.ID, result.BookingReference)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
