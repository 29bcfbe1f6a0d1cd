package set_goals

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/VTC-PlanningService/internal/api/handlers"
	"github.com/m04kA/VTC-PlanningService/internal/api/middleware"
	"github.com/m04kA/VTC-PlanningService/internal/domain"
	"github.com/m04kA/VTC-PlanningService/internal/service/schedules"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDriverID    = "некорректный ID водителя"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidGoals       = "цели должны быть неотрицательными"
	msgConcurrentUpdate   = "расписание было изменено конкурентно, повторите запрос"
	msgMissingDriverID    = "отсутствует ID водителя"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/drivers/{driverId}/schedule/{date}/goals
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	driverID, err := strconv.ParseInt(vars["driverId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /drivers/{id}/schedule/{date}/goals - Invalid driver ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDriverID)
		return
	}

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("PUT /drivers/{id}/schedule/{date}/goals - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	authDriverID, ok := middleware.GetDriverID(r.Context())
	if !ok {
		h.logger.Warn("PUT /drivers/{id}/schedule/{date}/goals - Missing driver ID in context")
		handlers.RespondUnauthorized(w, msgMissingDriverID)
		return
	}
	if authDriverID != driverID {
		h.logger.Warn("PUT /drivers/{id}/schedule/{date}/goals - Access denied: path=%d, auth=%d", driverID, authDriverID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req SetGoalsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /drivers/{id}/schedule/{date}/goals - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetGoals(r.Context(), req.ToServiceRequest(driverID, date))
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("PUT /drivers/{id}/schedule/{date}/goals - Invalid goals: driver_id=%d, error=%v", driverID, err)
			handlers.RespondBadRequest(w, msgInvalidGoals)

		case errors.Is(err, schedules.ErrConcurrentUpdate):
			h.logger.Warn("PUT /drivers/{id}/schedule/{date}/goals - Concurrent update: driver_id=%d, date=%s",
				driverID, vars["date"])
			handlers.RespondError(w, http.StatusConflict, msgConcurrentUpdate)

		default:
			h.logger.Error("PUT /drivers/{id}/schedule/{date}/goals - Failed to set goals: driver_id=%d, error=%v",
				driverID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /drivers/{id}/schedule/{date}/goals - Goals set: driver_id=%d, date=%s",
		driverID, vars["date"])
	handlers.RespondJSON(w, http.StatusOK, result)
}
