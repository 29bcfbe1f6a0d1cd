package toggle_platform_sync

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
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDriverID    = "некорректный ID водителя"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPlatform    = "некорректное имя платформы"
	msgConcurrentUpdate   = "расписание было изменено конкурентно, повторите запрос"
	msgMissingDriverID    = "отсутствует ID водителя"
	msgForbidden          = "доступ запрещен"
)

// TogglePlatformSyncRequest HTTP request model
type TogglePlatformSyncRequest struct {
	IsOnline bool `json:"isOnline"`
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

// Handle PATCH /api/v1/drivers/{driverId}/schedule/{date}/platforms/{platform}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	driverID, err := strconv.ParseInt(vars["driverId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /drivers/{id}/schedule/{date}/platforms/{platform} - Invalid driver ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDriverID)
		return
	}

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("PATCH /drivers/{id}/schedule/{date}/platforms/{platform} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	platform := vars["platform"]

	authDriverID, ok := middleware.GetDriverID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /drivers/{id}/schedule/{date}/platforms/{platform} - Missing driver ID in context")
		handlers.RespondUnauthorized(w, msgMissingDriverID)
		return
	}
	if authDriverID != driverID {
		h.logger.Warn("PATCH /drivers/{id}/schedule/{date}/platforms/{platform} - Access denied: path=%d, auth=%d",
			driverID, authDriverID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req TogglePlatformSyncRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /drivers/{id}/schedule/{date}/platforms/{platform} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.TogglePlatformSync(r.Context(), &schedulesModels.TogglePlatformSyncRequest{
		DriverID: driverID,
		Date:     date,
		Platform: platform,
		IsOnline: req.IsOnline,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("PATCH /drivers/{id}/schedule/{date}/platforms/{platform} - Invalid platform: driver_id=%d, platform=%q",
				driverID, platform)
			handlers.RespondBadRequest(w, msgInvalidPlatform)

		case errors.Is(err, schedules.ErrConcurrentUpdate):
			h.logger.Warn("PATCH /drivers/{id}/schedule/{date}/platforms/{platform} - Concurrent update: driver_id=%d, date=%s",
				driverID, vars["date"])
			handlers.RespondError(w, http.StatusConflict, msgConcurrentUpdate)

		default:
			h.logger.Error("PATCH /drivers/{id}/schedule/{date}/platforms/{platform} - Failed to toggle sync: driver_id=%d, error=%v",
				driverID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /drivers/{id}/schedule/{date}/platforms/{platform} - Sync toggled: driver_id=%d, platform=%s, online=%t",
		driverID, platform, result.IsOnline)
	handlers.RespondJSON(w, http.StatusOK, result)
}
