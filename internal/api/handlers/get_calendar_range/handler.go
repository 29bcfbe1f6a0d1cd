package get_calendar_range

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/VTC-PlanningService/internal/api/handlers"
	"github.com/m04kA/VTC-PlanningService/internal/api/middleware"
	"github.com/m04kA/VTC-PlanningService/internal/service/planning"
)

const (
	msgInvalidDriverID = "некорректный ID водителя"
	msgInvalidRange    = "некорректный период: ожидается startDate+endDate, week или month"
	msgMissingDriverID = "отсутствует ID водителя"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service PlanningService
	logger  Logger
}

func NewHandler(service PlanningService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/drivers/{driverId}/calendar
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	driverID, err := strconv.ParseInt(vars["driverId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /drivers/{id}/calendar - Invalid driver ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDriverID)
		return
	}

	authDriverID, ok := middleware.GetDriverID(r.Context())
	if !ok {
		h.logger.Warn("GET /drivers/{id}/calendar - Missing driver ID in context")
		handlers.RespondUnauthorized(w, msgMissingDriverID)
		return
	}
	if authDriverID != driverID {
		h.logger.Warn("GET /drivers/{id}/calendar - Access denied: path=%d, auth=%d", driverID, authDriverID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	req, err := parseRangeQuery(r.URL.Query(), driverID)
	if err != nil {
		h.logger.Warn("GET /drivers/{id}/calendar - Invalid range query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	calendar, err := h.service.GetCalendar(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, planning.ErrInvalidRange), errors.Is(err, planning.ErrInvalidInput):
			h.logger.Warn("GET /drivers/{id}/calendar - Invalid range: driver_id=%d, error=%v", driverID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /drivers/{id}/calendar - Failed to assemble calendar: driver_id=%d, error=%v", driverID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /drivers/{id}/calendar - Calendar assembled: driver_id=%d, days=%d",
		driverID, len(calendar.Days))
	handlers.RespondJSON(w, http.StatusOK, calendar)
}
