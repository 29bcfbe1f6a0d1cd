package get_day_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/VTC-PlanningService/internal/api/handlers"
	"github.com/m04kA/VTC-PlanningService/internal/api/middleware"
	"github.com/m04kA/VTC-PlanningService/internal/domain"
	"github.com/m04kA/VTC-PlanningService/internal/service/planning"
)

const (
	msgInvalidDriverID = "некорректный ID водителя"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/drivers/{driverId}/schedule/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	driverID, err := strconv.ParseInt(vars["driverId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /drivers/{id}/schedule/{date} - Invalid driver ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDriverID)
		return
	}

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("GET /drivers/{id}/schedule/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Водитель видит только своё расписание
	authDriverID, ok := middleware.GetDriverID(r.Context())
	if !ok {
		h.logger.Warn("GET /drivers/{id}/schedule/{date} - Missing driver ID in context")
		handlers.RespondUnauthorized(w, msgMissingDriverID)
		return
	}
	if authDriverID != driverID {
		h.logger.Warn("GET /drivers/{id}/schedule/{date} - Access denied: path=%d, auth=%d", driverID, authDriverID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	day, err := h.service.GetDay(r.Context(), driverID, date)
	if err != nil {
		switch {
		case errors.Is(err, planning.ErrInvalidInput):
			h.logger.Warn("GET /drivers/{id}/schedule/{date} - Invalid input: driver_id=%d, error=%v", driverID, err)
			handlers.RespondBadRequest(w, msgInvalidDriverID)

		default:
			h.logger.Error("GET /drivers/{id}/schedule/{date} - Failed to get schedule: driver_id=%d, error=%v", driverID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /drivers/{id}/schedule/{date} - Schedule retrieved: driver_id=%d, date=%s, stored=%t",
		driverID, vars["date"], day.IsStored)
	handlers.RespondJSON(w, http.StatusOK, day)
}
