package remove_booking

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
	schedulesModels "github.com/m04kA/VTC-PlanningService/internal/service/schedules/models"
)

const (
	msgInvalidDriverID  = "некорректный ID водителя"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidIndex     = "некорректный индекс бронирования"
	msgScheduleNotFound = "расписание не найдено"
	msgIndexOutOfRange  = "бронирование с таким индексом не найдено"
	msgConcurrentUpdate = "расписание было изменено конкурентно, повторите запрос"
	msgMissingDriverID  = "отсутствует ID водителя"
	msgForbidden        = "доступ запрещен"
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

// Handle DELETE /api/v1/drivers/{driverId}/schedule/{date}/bookings/{index}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	driverID, err := strconv.ParseInt(vars["driverId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /drivers/{id}/schedule/{date}/bookings/{index} - Invalid driver ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDriverID)
		return
	}

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("DELETE /drivers/{id}/schedule/{date}/bookings/{index} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		h.logger.Warn("DELETE /drivers/{id}/schedule/{date}/bookings/{index} - Invalid index: %v", err)
		handlers.RespondBadRequest(w, msgInvalidIndex)
		return
	}

	authDriverID, ok := middleware.GetDriverID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /drivers/{id}/schedule/{date}/bookings/{index} - Missing driver ID in context")
		handlers.RespondUnauthorized(w, msgMissingDriverID)
		return
	}
	if authDriverID != driverID {
		h.logger.Warn("DELETE /drivers/{id}/schedule/{date}/bookings/{index} - Access denied: path=%d, auth=%d",
			driverID, authDriverID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.service.RemoveBooking(r.Context(), &schedulesModels.RemoveBookingRequest{
		DriverID: driverID,
		Date:     date,
		Index:    index,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrScheduleNotFound):
			h.logger.Warn("DELETE /drivers/{id}/schedule/{date}/bookings/{index} - Schedule not found: driver_id=%d, date=%s",
				driverID, vars["date"])
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, schedules.ErrBookingIndexOutOfRange):
			h.logger.Warn("DELETE /drivers/{id}/schedule/{date}/bookings/{index} - Index out of range: driver_id=%d, index=%d",
				driverID, index)
			handlers.RespondNotFound(w, msgIndexOutOfRange)

		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("DELETE /drivers/{id}/schedule/{date}/bookings/{index} - Invalid input: driver_id=%d, error=%v",
				driverID, err)
			handlers.RespondBadRequest(w, msgInvalidIndex)

		case errors.Is(err, schedules.ErrConcurrentUpdate):
			h.logger.Warn("DELETE /drivers/{id}/schedule/{date}/bookings/{index} - Concurrent update: driver_id=%d, date=%s",
				driverID, vars["date"])
			handlers.RespondError(w, http.StatusConflict, msgConcurrentUpdate)

		default:
			h.logger.Error("DELETE /drivers/{id}/schedule/{date}/bookings/{index} - Failed to remove booking: driver_id=%d, error=%v",
				driverID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /drivers/{id}/schedule/{date}/bookings/{index} - Booking removed: driver_id=%d, date=%s, index=%d",
		driverID, vars["date"], index)
	handlers.RespondJSON(w, http.StatusOK, result)
}
