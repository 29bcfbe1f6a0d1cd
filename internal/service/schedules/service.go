package schedules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/VTC-PlanningService/internal/domain"
	scheduleRepo "github.com/m04kA/VTC-PlanningService/internal/infra/storage/schedule"
	"github.com/m04kA/VTC-PlanningService/internal/integrations/ridesservice"
	"github.com/m04kA/VTC-PlanningService/internal/service/schedules/models"
)

// Service сервис мутаций расписания дня: удаление бронирований, цели,
// синхронизация платформ, напоминания, пересчет фактических результатов
// Каждая мутация выполняется как атомарный read-modify-write по ключу
// (driver_id, date) в сериализуемой транзакции
type Service struct {
	scheduleRepo  ScheduleRepository
	ridesClient   RidesServiceClient
	txManager     TransactionManager
	defaultWindow domain.Interval
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	ridesClient RidesServiceClient,
	txManager TransactionManager,
	defaultWindow domain.Interval,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:  scheduleRepo,
		ridesClient:   ridesClient,
		txManager:     txManager,
		defaultWindow: defaultWindow,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// RemoveBooking удаляет бронирование по позиции в расписании дня
// День без сохраненной записи не создается: удалять нечего
func (s *Service) RemoveBooking(ctx context.Context, req *models.RemoveBookingRequest) (*models.MutationResponse, error) {
	s.logger.Info("RemoveBooking: driver=%d, date=%s, index=%d",
		req.DriverID, req.Date.Format(domain.DateFormat), req.Index)

	if req.DriverID <= 0 || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: driverID and date are required", ErrInvalidInput)
	}

	var result *models.MutationResponse

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		day, err := s.scheduleRepo.GetByDriverAndDate(txCtx, req.DriverID, req.Date)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				s.logger.Warn("RemoveBooking: no schedule for driver=%d date=%s",
					req.DriverID, req.Date.Format(domain.DateFormat))
				return ErrScheduleNotFound
			}
			s.logger.Error("RemoveBooking: failed to get schedule: %v", err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		if err := day.RemoveBooking(req.Index); err != nil {
			s.logger.Warn("RemoveBooking: index %d out of range for driver=%d date=%s",
				req.Index, req.DriverID, req.Date.Format(domain.DateFormat))
			return ErrBookingIndexOutOfRange
		}

		saved, err := s.update(txCtx, day, "RemoveBooking")
		if err != nil {
			return err
		}

		result = s.mutationResponse(saved)
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("RemoveBooking: removed booking %d for driver=%d date=%s",
		req.Index, req.DriverID, req.Date.Format(domain.DateFormat))
	return result, nil
}

// SetGoals устанавливает плановые цели дня
func (s *Service) SetGoals(ctx context.Context, req *models.SetGoalsRequest) (*models.MutationResponse, error) {
	s.logger.Info("SetGoals: driver=%d, date=%s, rides=%d, earnings=%.2f, hours=%.2f",
		req.DriverID, req.Date.Format(domain.DateFormat), req.TargetRides, req.TargetEarnings, req.TargetHours)

	if req.DriverID <= 0 || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: driverID and date are required", ErrInvalidInput)
	}
	if req.TargetRides < 0 || req.TargetEarnings < 0 || req.TargetHours < 0 {
		return nil, fmt.Errorf("%w: goal targets must be non-negative", ErrInvalidInput)
	}

	var result *models.MutationResponse

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		day, err := s.getOrDefault(txCtx, req.DriverID, req.Date)
		if err != nil {
			return err
		}

		day.SetDailyGoals(domain.DailyGoals{
			TargetRides:    req.TargetRides,
			TargetEarnings: req.TargetEarnings,
			TargetHours:    req.TargetHours,
			PreferredZones: req.PreferredZones,
		})

		saved, err := s.persist(txCtx, day, "SetGoals")
		if err != nil {
			return err
		}

		result = s.mutationResponse(saved)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

// TogglePlatformSync переключает флаг online внешней платформы и фиксирует время синхронизации
func (s *Service) TogglePlatformSync(ctx context.Context, req *models.TogglePlatformSyncRequest) (*models.PlatformSyncResponse, error) {
	s.logger.Info("TogglePlatformSync: driver=%d, date=%s, platform=%s, online=%t",
		req.DriverID, req.Date.Format(domain.DateFormat), req.Platform, req.IsOnline)

	if req.DriverID <= 0 || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: driverID and date are required", ErrInvalidInput)
	}
	if req.Platform == "" {
		return nil, fmt.Errorf("%w: platform is required", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	var result *models.PlatformSyncResponse

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		day, err := s.getOrDefault(txCtx, req.DriverID, req.Date)
		if err != nil {
			return err
		}

		day.SetPlatformSync(req.Platform, req.IsOnline, now)

		saved, err := s.persist(txCtx, day, "TogglePlatformSync")
		if err != nil {
			return err
		}

		result = &models.PlatformSyncResponse{
			DriverID: saved.DriverID,
			Date:     saved.Date.Format(domain.DateFormat),
			Platform: req.Platform,
			IsOnline: req.IsOnline,
			LastSync: now.Format(time.RFC3339),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

// AddReminder добавляет информационное напоминание
func (s *Service) AddReminder(ctx context.Context, req *models.AddReminderRequest) (*models.MutationResponse, error) {
	s.logger.Info("AddReminder: driver=%d, date=%s, time=%s",
		req.DriverID, req.Date.Format(domain.DateFormat), req.Time)

	if req.DriverID <= 0 || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: driverID and date are required", ErrInvalidInput)
	}
	if err := req.Time.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid reminder time: %v", ErrInvalidInput, err)
	}
	if req.Message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}

	var result *models.MutationResponse

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		day, err := s.getOrDefault(txCtx, req.DriverID, req.Date)
		if err != nil {
			return err
		}

		day.AddReminder(domain.Reminder{Time: req.Time, Message: req.Message})

		saved, err := s.persist(txCtx, day, "AddReminder")
		if err != nil {
			return err
		}

		result = s.mutationResponse(saved)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecomputeResults пересчитывает кэш фактических результатов дня
// из завершенных бронирований. Статусы завершения приходят от вызывающей
// стороны; при UseRidesService=true завершенные поездки дополнительно
// сверяются с RidesService по externalRef
func (s *Service) RecomputeResults(ctx context.Context, req *models.RecomputeResultsRequest) (*models.ResultsResponse, error) {
	s.logger.Info("RecomputeResults: driver=%d, date=%s, completions=%d, useRidesService=%t",
		req.DriverID, req.Date.Format(domain.DateFormat), len(req.Completions), req.UseRidesService)

	if req.DriverID <= 0 || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: driverID and date are required", ErrInvalidInput)
	}

	// Внешний вызов выполняем до транзакции, чтобы не держать блокировку
	// строки на время HTTP запроса
	var rides []ridesservice.Ride
	if req.UseRidesService {
		fetched, err := s.ridesClient.GetRidesForDayWithGracefulDegradation(ctx, req.DriverID, req.Date)
		if err != nil {
			if !errors.Is(err, ridesservice.ErrServiceDegraded) {
				return nil, fmt.Errorf("%w: failed to fetch rides: %v", ErrInternal, err)
			}
			// Деградация: пересчитываем только по присланным статусам
			s.logger.Warn("RecomputeResults: rides service degraded, using caller-supplied completions only")
		} else {
			rides = fetched
		}
	}

	var result *models.ResultsResponse

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		day, err := s.scheduleRepo.GetByDriverAndDate(txCtx, req.DriverID, req.Date)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return ErrScheduleNotFound
			}
			s.logger.Error("RecomputeResults: failed to get schedule: %v", err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		completed, err := s.collectCompleted(day, req.Completions, rides)
		if err != nil {
			return err
		}

		day.RecomputeActualResults(completed)

		saved, err := s.update(txCtx, day, "RecomputeResults")
		if err != nil {
			return err
		}

		result = &models.ResultsResponse{
			DriverID:      saved.DriverID,
			Date:          saved.Date.Format(domain.DateFormat),
			TotalRides:    saved.ActualResults.TotalRides,
			TotalEarnings: saved.ActualResults.TotalEarnings,
			TotalHours:    saved.ActualResults.TotalHours,
			AverageRating: saved.ActualResults.AverageRating,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("RecomputeResults: driver=%d date=%s rides=%d earnings=%.2f",
		req.DriverID, req.Date.Format(domain.DateFormat), result.TotalRides, result.TotalEarnings)
	return result, nil
}

// Вспомогательные методы

// collectCompleted собирает завершенные бронирования из присланных статусов
// и данных RidesService (по externalRef)
func (s *Service) collectCompleted(day *domain.DaySchedule, completions []models.CompletionInput, rides []ridesservice.Ride) ([]domain.CompletedBooking, error) {
	completed := make([]domain.CompletedBooking, 0, len(completions))
	seen := make(map[int]bool, len(completions))

	for _, c := range completions {
		if c.Index < 0 || c.Index >= len(day.Bookings) {
			return nil, fmt.Errorf("%w: completion index %d, %d bookings", ErrInvalidInput, c.Index, len(day.Bookings))
		}
		if seen[c.Index] {
			return nil, fmt.Errorf("%w: duplicate completion index %d", ErrInvalidInput, c.Index)
		}
		seen[c.Index] = true

		completed = append(completed, domain.CompletedBooking{
			Booking:        day.Bookings[c.Index],
			ActualEarnings: c.ActualEarnings,
			Rating:         c.Rating,
		})
	}

	// Сверка с RidesService: бронирования с externalRef, для которых поездка
	// завершена, тоже попадают в пересчет
	ridesByRef := make(map[string]ridesservice.Ride, len(rides))
	for _, r := range rides {
		if r.Status == ridesservice.RideStatusCompleted {
			ridesByRef[r.Ref] = r
		}
	}

	for i, b := range day.Bookings {
		if seen[i] || b.ExternalRef == nil {
			continue
		}
		ride, ok := ridesByRef[*b.ExternalRef]
		if !ok {
			continue
		}
		seen[i] = true
		completed = append(completed, domain.CompletedBooking{
			Booking:        b,
			ActualEarnings: ride.Earnings,
			Rating:         ride.Rating,
		})
	}

	return completed, nil
}

// getOrDefault читает день с блокировкой или лениво создает дефолтный
func (s *Service) getOrDefault(ctx context.Context, driverID int64, date time.Time) (*domain.DaySchedule, error) {
	day, err := s.scheduleRepo.GetByDriverAndDate(ctx, driverID, date)
	if err == nil {
		return day, nil
	}
	if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		return domain.NewDefaultDayScheduleWithWindow(driverID, date, s.defaultWindow), nil
	}
	s.logger.Error("getOrDefault: failed to get schedule: %v", err)
	return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
}

// persist создает или обновляет запись дня
func (s *Service) persist(ctx context.Context, day *domain.DaySchedule, op string) (*domain.DaySchedule, error) {
	if day.IsStored() {
		return s.update(ctx, day, op)
	}

	saved, err := s.scheduleRepo.Create(ctx, day)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDuplicateSchedule) {
			return nil, ErrConcurrentUpdate
		}
		s.logger.Error("%s: failed to create schedule: %v", op, err)
		return nil, fmt.Errorf("%w: failed to create schedule: %v", ErrInternal, err)
	}
	return saved, nil
}

// update обновляет существующую запись дня
func (s *Service) update(ctx context.Context, day *domain.DaySchedule, op string) (*domain.DaySchedule, error) {
	saved, err := s.scheduleRepo.Update(ctx, day)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrVersionConflict) {
			return nil, ErrConcurrentUpdate
		}
		s.logger.Error("%s: failed to update schedule: %v", op, err)
		return nil, fmt.Errorf("%w: failed to update schedule: %v", ErrInternal, err)
	}
	return saved, nil
}

func (s *Service) mutationResponse(day *domain.DaySchedule) *models.MutationResponse {
	return &models.MutationResponse{
		DriverID:         day.DriverID,
		Date:             day.Date.Format(domain.DateFormat),
		TotalBookedHours: day.TotalBookedHours(),
		AvailableHours:   day.AvailableHours(),
	}
}
