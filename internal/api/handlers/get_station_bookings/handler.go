package get_station_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/EVC-BookingService/internal/api/handlers"
	"github.com/m04kA/EVC-BookingService/internal/service/bookings"
)

const (
	msgInvalidStationID = "некорректный ID станции"
	msgMissingOperator  = "отсутствует имя оператора"
	msgOperatorNotFound = "оператор не найден или не закреплен за станцией"
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

// Handle GET /api/v1/stations/{stationId}/bookings?activeOnly=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	stationIDStr := vars["stationId"]

	stationID, err := strconv.ParseInt(stationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /stations/{id}/bookings - Invalid station ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStationID)
		return
	}

	activeOnly := r.URL.Query().Get("activeOnly") == "true"

	list, err := h.service.GetByStation(r.Context(), stationID, activeOnly)
	if err != nil {
		h.logger.Error("GET /stations/{id}/bookings - Failed: station_id=%d, error=%v", stationID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /stations/{id}/bookings - Retrieved %d bookings: station_id=%d, activeOnly=%t",
		len(list.Bookings), stationID, activeOnly)
	handlers.RespondJSON(w, http.StatusOK, list)
}

// HandleHasActive GET /internal/stations/{stationId}/has-active-bookings
// Внутренний endpoint для справочника станций: проверка перед выводом станции из эксплуатации
func (h *Handler) HandleHasActive(w http.ResponseWriter, r *http.Request) {
	stationIDStr := mux.Vars(r)["stationId"]

	stationID, err := strconv.ParseInt(stationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /internal/stations/{id}/has-active-bookings - Invalid station ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStationID)
		return
	}

	hasActive, err := h.service.HasActiveBookings(r.Context(), stationID)
	if err != nil {
		h.logger.Error("GET /internal/stations/{id}/has-active-bookings - Failed: station_id=%d, error=%v",
			stationID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /internal/stations/{id}/has-active-bookings - station_id=%d, hasActive=%t",
		stationID, hasActive)
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"hasActiveBookings": hasActive})
}

// HandleByOperator GET /api/v1/operators/{username}/bookings
func (h *Handler) HandleByOperator(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	if username == "" {
		h.logger.Warn("GET /operators/{username}/bookings - Missing operator username")
		handlers.RespondBadRequest(w, msgMissingOperator)
		return
	}

	list, err := h.service.GetByOperator(r.Context(), username)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrOperatorNotFound):
			h.logger.Warn("GET /operators/{username}/bookings - Operator not found: operator=%s", username)
			handlers.RespondNotFound(w, msgOperatorNotFound)

		default:
			h.logger.Error("GET /operators/{username}/bookings - Failed: operator=%s, error=%v", username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /operators/{username}/bookings - Retrieved %d bookings: operator=%s",
		len(list.Bookings), username)
	handlers.RespondJSON(w, http.StatusOK, list)
}
