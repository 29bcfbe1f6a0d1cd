package set_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/VTC-PlanningService/internal/domain"
	scheduleRepo "github.com/m04kA/VTC-PlanningService/internal/infra/storage/schedule"
)

// UseCase use case для установки доступности дня: статус, рабочее окно, перерывы
// Существующие бронирования при сужении окна не отменяются - бронирования
// валидируются только в момент вставки
type UseCase struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case установки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SetAvailability: driver=%d, date=%s, status=%s",
		req.DriverID, req.Date.Format(domain.DateFormat), req.Status)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Конструируем рабочее окно и перерывы
	var workWindow *domain.Interval
	if req.WorkWindowStart != nil && req.WorkWindowEnd != nil {
		window, err := domain.NewInterval(*req.WorkWindowStart, *req.WorkWindowEnd)
		if err != nil {
			uc.logger.Warn("SetAvailability: invalid work window: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
		}
		workWindow = &window
	}

	breaks := make([]domain.Break, 0, len(req.Breaks))
	for _, b := range req.Breaks {
		interval, err := domain.NewInterval(b.Start, b.End)
		if err != nil {
			uc.logger.Warn("SetAvailability: invalid break %s-%s: %v", b.Start, b.End, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
		}
		breaks = append(breaks, domain.Break{Interval: interval, Reason: b.Reason})
	}

	var result *Response

	// 3. Read-modify-write в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		day, err := uc.scheduleRepo.GetByDriverAndDate(txCtx, req.DriverID, req.Date)
		if err != nil {
			if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				uc.logger.Error("SetAvailability: failed to get schedule: %v", err)
				return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
			}
			// Ленивое создание: первый write для даты создает запись
			day = domain.NewDefaultDaySchedule(req.DriverID, req.Date)
		}

		if err := day.SetAvailability(domain.AvailabilityStatus(req.Status), workWindow, breaks); err != nil {
			uc.logger.Warn("SetAvailability: domain rejected availability: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidInterval, err)
		}

		saved, err := uc.persist(txCtx, day)
		if err != nil {
			return err
		}

		result = &Response{
			DriverID:            saved.DriverID,
			Date:                saved.Date,
			Status:              saved.AvailabilityStatus,
			TotalAvailableHours: saved.TotalAvailableHours(),
			TotalBookedHours:    saved.TotalBookedHours(),
			AvailableHours:      saved.AvailableHours(),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("SetAvailability: driver=%d date=%s status=%s available=%.2fh",
		req.DriverID, req.Date.Format(domain.DateFormat), result.Status, result.TotalAvailableHours)
	return result, nil
}

// persist создает или обновляет запись дня
func (uc *UseCase) persist(ctx context.Context, day *domain.DaySchedule) (*domain.DaySchedule, error) {
	if day.IsStored() {
		saved, err := uc.scheduleRepo.Update(ctx, day)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrVersionConflict) {
				return nil, ErrConcurrentUpdate
			}
			uc.logger.Error("SetAvailability: failed to update schedule: %v", err)
			return nil, fmt.Errorf("%w: failed to update schedule: %v", ErrInternal, err)
		}
		return saved, nil
	}

	saved, err := uc.scheduleRepo.Create(ctx, day)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDuplicateSchedule) {
			return nil, ErrConcurrentUpdate
		}
		uc.logger.Error("SetAvailability: failed to create schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to create schedule: %v", ErrInternal, err)
	}
	return saved, nil
}
