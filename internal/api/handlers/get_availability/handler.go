package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/EVC-BookingService/internal/api/handlers"
	"github.com/m04kA/EVC-BookingService/internal/domain"
	getAvailability "github.com/m04kA/EVC-BookingService/internal/usecase/get_availability"
)

const (
	msgInvalidStationID = "некорректный ID станции"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate      = "отсутствует параметр date"
	msgStationNotFound  = "станция не найдена"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/stations/{stationId}/availability?date=2025-10-15&availableOnly=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	stationIDStr := vars["stationId"]

	stationID, err := strconv.ParseInt(stationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /stations/{id}/availability - Invalid station ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStationID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /stations/{id}/availability - Missing date parameter")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /stations/{id}/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	availableOnly := r.URL.Query().Get("availableOnly") == "true"

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		StationID:     stationID,
		Date:          date,
		AvailableOnly: availableOnly,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrStationNotFound):
			h.logger.Warn("GET /stations/{id}/availability - Station not found: station_id=%d", stationID)
			handlers.RespondNotFound(w, msgStationNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /stations/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /stations/{id}/availability - Failed: station_id=%d, error=%v", stationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stations/{id}/availability - Retrieved %d slots: station_id=%d, date=%s",
		len(result.Slots), stationID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
