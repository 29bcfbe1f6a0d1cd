package add_reminder

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
	"github.com/m04kA/VTC-PlanningService/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDriverID    = "некорректный ID водителя"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidReminder    = "некорректное напоминание: требуются время HH:MM и текст"
	msgConcurrentUpdate   = "расписание было изменено конкурентно, повторите запрос"
	msgMissingDriverID    = "отсутствует ID водителя"
	msgForbidden          = "доступ запрещен"
)

// AddReminderRequest HTTP request model
type AddReminderRequest struct {
	Time    string `json:"time"` // "14:30"
	Message string `json:"message"`
}

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

// Handle POST /api/v1/drivers/{driverId}/schedule/{date}/reminders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	driverID, err := strconv.ParseInt(vars["driverId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /drivers/{id}/schedule/{date}/reminders - Invalid driver ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDriverID)
		return
	}

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("POST /drivers/{id}/schedule/{date}/reminders - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	authDriverID, ok := middleware.GetDriverID(r.Context())
	if !ok {
		h.logger.Warn("POST /drivers/{id}/schedule/{date}/reminders - Missing driver ID in context")
		handlers.RespondUnauthorized(w, msgMissingDriverID)
		return
	}
	if authDriverID != driverID {
		h.logger.Warn("POST /drivers/{id}/schedule/{date}/reminders - Access denied: path=%d, auth=%d", driverID, authDriverID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req AddReminderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /drivers/{id}/schedule/{date}/reminders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	reminderTime, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		h.logger.Warn("POST /drivers/{id}/schedule/{date}/reminders - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReminder)
		return
	}

	result, err := h.service.AddReminder(r.Context(), &schedulesModels.AddReminderRequest{
		DriverID: driverID,
		Date:     date,
		Time:     reminderTime,
		Message:  req.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("POST /drivers/{id}/schedule/{date}/reminders - Invalid reminder: driver_id=%d, error=%v",
				driverID, err)
			handlers.RespondBadRequest(w, msgInvalidReminder)

		case errors.Is(err, schedules.ErrConcurrentUpdate):
			h.logger.Warn("POST /drivers/{id}/schedule/{date}/reminders - Concurrent update: driver_id=%d, date=%s",
				driverID, vars["date"])
			handlers.RespondError(w, http.StatusConflict, msgConcurrentUpdate)

		default:
			h.logger.Error("POST /drivers/{id}/schedule/{date}/reminders - Failed to add reminder: driver_id=%d, error=%v",
				driverID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /drivers/{id}/schedule/{date}/reminders - Reminder added: driver_id=%d, date=%s, time=%s",
		driverID, vars["date"], req.Time)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
