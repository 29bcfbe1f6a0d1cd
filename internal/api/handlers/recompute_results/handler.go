package recompute_results

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
	msgInvalidCompletions = "некорректные статусы завершения"
	msgScheduleNotFound   = "расписание не найдено"
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

// Handle POST /api/v1/drivers/{driverId}/schedule/{date}/results/recompute
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	driverID, err := strconv.ParseInt(vars["driverId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /drivers/{id}/schedule/{date}/results/recompute - Invalid driver ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDriverID)
		return
	}

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("POST /drivers/{id}/schedule/{date}/results/recompute - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	authDriverID, ok := middleware.GetDriverID(r.Context())
	if !ok {
		h.logger.Warn("POST /drivers/{id}/schedule/{date}/results/recompute - Missing driver ID in context")
		handlers.RespondUnauthorized(w, msgMissingDriverID)
		return
	}
	if authDriverID != driverID {
		h.logger.Warn("POST /drivers/{id}/schedule/{date}/results/recompute - Access denied: path=%d, auth=%d",
			driverID, authDriverID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req RecomputeResultsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /drivers/{id}/schedule/{date}/results/recompute - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.RecomputeResults(r.Context(), req.ToServiceRequest(driverID, date))
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrScheduleNotFound):
			h.logger.Warn("POST /drivers/{id}/schedule/{date}/results/recompute - Schedule not found: driver_id=%d, date=%s",
				driverID, vars["date"])
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("POST /drivers/{id}/schedule/{date}/results/recompute - Invalid completions: driver_id=%d, error=%v",
				driverID, err)
			handlers.RespondBadRequest(w, msgInvalidCompletions)

		case errors.Is(err, schedules.ErrConcurrentUpdate):
			h.logger.Warn("POST /drivers/{id}/schedule/{date}/results/recompute - Concurrent update: driver_id=%d, date=%s",
				driverID, vars["date"])
			handlers.RespondError(w, http.StatusConflict, msgConcurrentUpdate)

		default:
			h.logger.Error("POST /drivers/{id}/schedule/{date}/results/recompute - Failed to recompute: driver_id=%d, error=%v",
				driverID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /drivers/{id}/schedule/{date}/results/recompute - Results recomputed: driver_id=%d, date=%s, rides=%d",
		driverID, vars["date"], result.TotalRides)
	handlers.RespondJSON(w, http.StatusOK, result)
}
