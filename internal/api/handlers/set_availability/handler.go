package set_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/VTC-PlanningService/internal/api/handlers"
	"github.com/m04kA/VTC-PlanningService/internal/api/middleware"
	"github.com/m04kA/VTC-PlanningService/internal/domain"
	setAvailability "github.com/m04kA/VTC-PlanningService/internal/usecase/set_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDriverID    = "некорректный ID водителя"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidStatus      = "некорректный статус доступности"
	msgInvalidIntervals   = "некорректное рабочее окно или перерывы"
	msgConcurrentUpdate   = "расписание было изменено конкурентно, повторите запрос"
	msgMissingDriverID    = "отсутствует ID водителя"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase SetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase SetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/drivers/{driverId}/schedule/{date}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	driverID, err := strconv.ParseInt(vars["driverId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /drivers/{id}/schedule/{date}/availability - Invalid driver ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDriverID)
		return
	}

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("PUT /drivers/{id}/schedule/{date}/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	authDriverID, ok := middleware.GetDriverID(r.Context())
	if !ok {
		h.logger.Warn("PUT /drivers/{id}/schedule/{date}/availability - Missing driver ID in context")
		handlers.RespondUnauthorized(w, msgMissingDriverID)
		return
	}
	if authDriverID != driverID {
		h.logger.Warn("PUT /drivers/{id}/schedule/{date}/availability - Access denied: path=%d, auth=%d", driverID, authDriverID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req SetAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /drivers/{id}/schedule/{date}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(driverID, date)
	if err != nil {
		h.logger.Warn("PUT /drivers/{id}/schedule/{date}/availability - Failed to parse times: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, setAvailability.ErrInvalidStatus):
			h.logger.Warn("PUT /drivers/{id}/schedule/{date}/availability - Invalid status: driver_id=%d, status=%s",
				driverID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, setAvailability.ErrInvalidInterval):
			h.logger.Warn("PUT /drivers/{id}/schedule/{date}/availability - Invalid intervals: driver_id=%d, error=%v",
				driverID, err)
			handlers.RespondBadRequest(w, msgInvalidIntervals)

		case errors.Is(err, setAvailability.ErrInvalidInput):
			h.logger.Warn("PUT /drivers/{id}/schedule/{date}/availability - Invalid input: driver_id=%d, error=%v",
				driverID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, setAvailability.ErrConcurrentUpdate):
			h.logger.Warn("PUT /drivers/{id}/schedule/{date}/availability - Concurrent update: driver_id=%d, date=%s",
				driverID, vars["date"])
			handlers.RespondError(w, http.StatusConflict, msgConcurrentUpdate)

		default:
			h.logger.Error("PUT /drivers/{id}/schedule/{date}/availability - Failed to set availability: driver_id=%d, error=%v",
				driverID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /drivers/{id}/schedule/{date}/availability - Availability set: driver_id=%d, date=%s, status=%s",
		driverID, vars["date"], result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
