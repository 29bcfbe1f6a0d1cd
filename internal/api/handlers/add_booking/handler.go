package add_booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/VTC-PlanningService/internal/api/handlers"
	"github.com/m04kA/VTC-PlanningService/internal/api/middleware"
	"github.com/m04kA/VTC-PlanningService/internal/domain"
	addBooking "github.com/m04kA/VTC-PlanningService/internal/usecase/add_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDriverID    = "некорректный ID водителя"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInterval    = "некорректный интервал бронирования"
	msgSlotConflict       = "интервал пересекается с существующим бронированием"
	msgConcurrentUpdate   = "расписание было изменено конкурентно, повторите запрос"
	msgMissingDriverID    = "отсутствует ID водителя"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase AddBookingUseCase
	logger  Logger
}

func NewHandler(useCase AddBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/drivers/{driverId}/schedule/{date}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	driverID, err := strconv.ParseInt(vars["driverId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /drivers/{id}/schedule/{date}/bookings - Invalid driver ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDriverID)
		return
	}

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("POST /drivers/{id}/schedule/{date}/bookings - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	authDriverID, ok := middleware.GetDriverID(r.Context())
	if !ok {
		h.logger.Warn("POST /drivers/{id}/schedule/{date}/bookings - Missing driver ID in context")
		handlers.RespondUnauthorized(w, msgMissingDriverID)
		return
	}
	if authDriverID != driverID {
		h.logger.Warn("POST /drivers/{id}/schedule/{date}/bookings - Access denied: path=%d, auth=%d", driverID, authDriverID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req AddBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /drivers/{id}/schedule/{date}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(driverID, date)
	if err != nil {
		h.logger.Warn("POST /drivers/{id}/schedule/{date}/bookings - Failed to parse times: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, addBooking.ErrSlotConflict):
			h.logger.Warn("POST /drivers/{id}/schedule/{date}/bookings - Slot conflict: driver_id=%d, date=%s, interval=%s-%s",
				driverID, vars["date"], req.Start, req.End)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, addBooking.ErrInvalidInterval):
			h.logger.Warn("POST /drivers/{id}/schedule/{date}/bookings - Invalid interval: driver_id=%d, interval=%s-%s",
				driverID, req.Start, req.End)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, addBooking.ErrInvalidInput):
			h.logger.Warn("POST /drivers/{id}/schedule/{date}/bookings - Invalid input: driver_id=%d, error=%v", driverID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, addBooking.ErrConcurrentUpdate):
			h.logger.Warn("POST /drivers/{id}/schedule/{date}/bookings - Concurrent update: driver_id=%d, date=%s",
				driverID, vars["date"])
			handlers.RespondError(w, http.StatusConflict, msgConcurrentUpdate)

		default:
			h.logger.Error("POST /drivers/{id}/schedule/{date}/bookings - Failed to add booking: driver_id=%d, error=%v",
				driverID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /drivers/{id}/schedule/{date}/bookings - Booking added: driver_id=%d, date=%s, index=%d",
		driverID, vars["date"], result.BookingIndex)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
