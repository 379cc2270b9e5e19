package get_owner_bookings

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/EVC-BookingService/internal/api/handlers"
	"github.com/m04kA/EVC-BookingService/internal/api/middleware"
	"github.com/m04kA/EVC-BookingService/internal/service/bookings"
	"github.com/m04kA/EVC-BookingService/internal/service/bookings/models"
)

const (
	msgMissingNIC    = "отсутствует NIC владельца"
	msgOwnerNotFound = "владелец не найден"
	msgForbidden     = "доступ запрещен"
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

// HandleUpcoming GET /api/v1/owners/{nic}/bookings/upcoming
func (h *Handler) HandleUpcoming(w http.ResponseWriter, r *http.Request) {
	h.handleList(w, r, "upcoming", h.service.GetUpcomingByOwner)
}

// HandleHistory GET /api/v1/owners/{nic}/bookings/history
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	h.handleList(w, r, "history", h.service.GetHistoryByOwner)
}

// HandleCounts GET /api/v1/owners/{nic}/bookings/counts
func (h *Handler) HandleCounts(w http.ResponseWriter, r *http.Request) {
	nic, ok := h.ownerNIC(w, r, "counts")
	if !ok {
		return
	}

	counts, err := h.service.GetCountsByOwner(r.Context(), nic)
	if err != nil {
		h.respondServiceError(w, "counts", nic, err)
		return
	}

	h.logger.Info("GET /owners/{nic}/bookings/counts - Counts retrieved: owner=%s", nic)
	handlers.RespondJSON(w, http.StatusOK, counts)
}

func (h *Handler) handleList(
	w http.ResponseWriter,
	r *http.Request,
	view string,
	fetch func(ctx context.Context, nic string) (*models.BookingListResponse, error),
) {
	nic, ok := h.ownerNIC(w, r, view)
	if !ok {
		return
	}

	list, err := fetch(r.Context(), nic)
	if err != nil {
		h.respondServiceError(w, view, nic, err)
		return
	}

	h.logger.Info("GET /owners/{nic}/bookings/%s - Retrieved %d bookings: owner=%s", view, len(list.Bookings), nic)
	handlers.RespondJSON(w, http.StatusOK, list)
}

// ownerNIC извлекает NIC из URL и проверяет, что владелец запрашивает свои данные
func (h *Handler) ownerNIC(w http.ResponseWriter, r *http.Request, view string) (string, bool) {
	nic := mux.Vars(r)["nic"]
	if nic == "" {
		h.logger.Warn("GET /owners/{nic}/bookings/%s - Missing owner NIC", view)
		handlers.RespondBadRequest(w, msgMissingNIC)
		return "", false
	}

	if role, _ := middleware.GetRole(r.Context()); role == middleware.RoleOwner {
		requesterNIC, _ := middleware.GetOwnerNIC(r.Context())
		if requesterNIC != nic {
			h.logger.Warn("GET /owners/{nic}/bookings/%s - Access denied: owner=%s, requester=%s",
				view, nic, requesterNIC)
			handlers.RespondForbidden(w, msgForbidden)
			return "", false
		}
	}

	return nic, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, view string, nic string, err error) {
	switch {
	case errors.Is(err, bookings.ErrOwnerNotFound):
		h.logger.Warn("GET /owners/{nic}/bookings/%s - Owner not found: owner=%s", view, nic)
		handlers.RespondNotFound(w, msgOwnerNotFound)

	default:
		h.logger.Error("GET /owners/{nic}/bookings/%s - Failed: owner=%s, error=%v", view, nic, err)
		handlers.RespondInternalError(w)
	}
}
