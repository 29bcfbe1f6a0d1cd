package add_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/VTC-PlanningService/internal/domain"
	scheduleRepo "github.com/m04kA/VTC-PlanningService/internal/infra/storage/schedule"
)

// UseCase use case для добавления бронирования в расписание дня
// Единственный путь вставки бронирований: проверка пересечений выполняется
// внутри сериализуемой транзакции над заблокированной строкой, поэтому два
// конкурентных запроса не могут пройти проверку по одному и тому же снимку
type UseCase struct {
	scheduleRepo  ScheduleRepository
	txManager     TransactionManager
	defaultWindow domain.Interval
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	defaultWindow domain.Interval,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:  scheduleRepo,
		txManager:     txManager,
		defaultWindow: defaultWindow,
		logger:        logger,
	}
}

// Execute выполняет use case добавления бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AddBooking: driver=%d, date=%s, interval=%s-%s, platform=%s",
		req.DriverID, req.Date.Format(domain.DateFormat), req.Start, req.End, req.Platform)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AddBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Конструируем интервал (здесь отсекаются инвертированные и нулевые интервалы)
	candidate, err := domain.NewInterval(req.Start, req.End)
	if err != nil {
		uc.logger.Warn("AddBooking: invalid interval %s-%s: %v", req.Start, req.End, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	var result *Response

	// 3. Read-modify-write в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Читаем день с блокировкой строки
		day, err := uc.scheduleRepo.GetByDriverAndDate(txCtx, req.DriverID, req.Date)
		if err != nil {
			if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				uc.logger.Error("AddBooking: failed to get schedule: %v", err)
				return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
			}
			// Ленивое создание: первый write для даты создает запись
			day = domain.NewDefaultDayScheduleWithWindow(req.DriverID, req.Date, uc.defaultWindow)
			uc.logger.Info("AddBooking: no stored schedule for driver=%d date=%s, creating on first write",
				req.DriverID, req.Date.Format(domain.DateFormat))
		}

		// 3.2. Вставляем бронирование через проверку конфликтов
		if _, err := day.AddBooking(candidate, req.Platform, req.EstimatedEarnings, req.ExternalRef); err != nil {
			if errors.Is(err, domain.ErrSlotConflict) {
				uc.logger.Warn("AddBooking: slot conflict for driver=%d date=%s interval=%s",
					req.DriverID, req.Date.Format(domain.DateFormat), candidate)
				return ErrSlotConflict
			}
			uc.logger.Warn("AddBooking: domain rejected booking: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidInterval, err)
		}

		// 3.3. Сохраняем
		saved, err := uc.persist(txCtx, day)
		if err != nil {
			return err
		}

		result = &Response{
			DriverID:          saved.DriverID,
			Date:              saved.Date,
			BookingIndex:      len(saved.Bookings) - 1,
			Start:             candidate.Start,
			End:               candidate.End,
			Platform:          req.Platform,
			EstimatedEarnings: req.EstimatedEarnings,
			ExternalRef:       req.ExternalRef,
			TotalBookedHours:  saved.TotalBookedHours(),
			AvailableHours:    saved.AvailableHours(),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("AddBooking: booking added for driver=%d date=%s, booked=%.2fh, remaining=%.2fh",
		req.DriverID, req.Date.Format(domain.DateFormat), result.TotalBookedHours, result.AvailableHours)
	return result, nil
}

// persist создает или обновляет запись дня
func (uc *UseCase) persist(ctx context.Context, day *domain.DaySchedule) (*domain.DaySchedule, error) {
	if day.IsStored() {
		saved, err := uc.scheduleRepo.Update(ctx, day)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrVersionConflict) {
				uc.logger.Warn("AddBooking: version conflict for driver=%d date=%s",
					day.DriverID, day.Date.Format(domain.DateFormat))
				return nil, ErrConcurrentUpdate
			}
			uc.logger.Error("AddBooking: failed to update schedule: %v", err)
			return nil, fmt.Errorf("%w: failed to update schedule: %v", ErrInternal, err)
		}
		return saved, nil
	}

	saved, err := uc.scheduleRepo.Create(ctx, day)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDuplicateSchedule) {
			// Гонка двух первых записей для одной даты
			uc.logger.Warn("AddBooking: concurrent first write for driver=%d date=%s",
				day.DriverID, day.Date.Format(domain.DateFormat))
			return nil, ErrConcurrentUpdate
		}
		uc.logger.Error("AddBooking: failed to create schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to create schedule: %v", ErrInternal, err)
	}
	return saved, nil
}
