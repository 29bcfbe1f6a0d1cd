package planning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/VTC-PlanningService/internal/domain"
	scheduleRepo "github.com/m04kA/VTC-PlanningService/internal/infra/storage/schedule"
	"github.com/m04kA/VTC-PlanningService/internal/service/planning/models"
)

// Service сервис чтения расписаний: день, календарь за период, сводка
// Пути чтения тотальны: отсутствующие дни синтезируются дефолтными,
// никогда не сохраняются
type Service struct {
	scheduleRepo  ScheduleRepository
	defaultWindow domain.Interval
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса планирования
// defaultWindow - рабочее окно для синтезированных дней (из конфигурации)
func NewService(
	scheduleRepo ScheduleRepository,
	defaultWindow domain.Interval,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:  scheduleRepo,
		defaultWindow: defaultWindow,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// GetDay получает расписание водителя на дату
// Если записи нет, возвращает синтезированный дефолтный день (available,
// дефолтное рабочее окно, без бронирований) без записи в хранилище
func (s *Service) GetDay(ctx context.Context, driverID int64, date time.Time) (*models.DayScheduleResponse, error) {
	s.logger.Info("GetDay: driver=%d, date=%s", driverID, date.Format(domain.DateFormat))

	if driverID <= 0 {
		return nil, fmt.Errorf("%w: driverID must be positive", ErrInvalidInput)
	}

	stored, err := s.scheduleRepo.GetByDriverAndDate(ctx, driverID, date)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Info("GetDay: no stored schedule for driver=%d date=%s, synthesizing default",
				driverID, date.Format(domain.DateFormat))
			return models.FromDomainSchedule(s.defaultDay(driverID, date)), nil
		}
		s.logger.Error("GetDay: repository error for driver=%d: %v", driverID, err)
		return nil, fmt.Errorf("%w: GetDay - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(stored), nil
}

// GetCalendar собирает календарь за период [start, end] включительно
// Ровно end-start+1 дней по возрастанию дат, пропуски заполнены дефолтами
func (s *Service) GetCalendar(ctx context.Context, req *models.GetCalendarRequest) (*models.CalendarResponse, error) {
	start, end, err := s.resolveRange(req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetCalendar: driver=%d, period=%s to %s",
		req.DriverID, start.Format(domain.DateFormat), end.Format(domain.DateFormat))

	schedules, err := s.assemble(ctx, req.DriverID, start, end)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetCalendar: assembled %d days for driver=%d", len(schedules), req.DriverID)
	return models.FromDomainCalendar(req.DriverID, start, end, schedules), nil
}

// GetSummary вычисляет сводку за период поверх собранного календаря
func (s *Service) GetSummary(ctx context.Context, req *models.GetCalendarRequest) (*models.SummaryResponse, error) {
	start, end, err := s.resolveRange(req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetSummary: driver=%d, period=%s to %s",
		req.DriverID, start.Format(domain.DateFormat), end.Format(domain.DateFormat))

	schedules, err := s.assemble(ctx, req.DriverID, start, end)
	if err != nil {
		return nil, err
	}

	summary := domain.SummarizeRange(schedules)

	s.logger.Info("GetSummary: driver=%d, utilization=%d%%, booked=%.2fh, available=%.2fh",
		req.DriverID, summary.UtilizationRate, summary.TotalBookedHours, summary.TotalAvailableHours)
	return models.FromDomainSummary(req.DriverID, start, end, summary), nil
}

// assemble загружает сохраненные дни периода одним запросом и склеивает
// их с синтезированными дефолтами
func (s *Service) assemble(ctx context.Context, driverID int64, start, end time.Time) ([]*domain.DaySchedule, error) {
	stored, err := s.scheduleRepo.GetByDriverAndDateRange(ctx, driverID, start, end)
	if err != nil {
		s.logger.Error("assemble: repository error for driver=%d: %v", driverID, err)
		return nil, fmt.Errorf("%w: assemble - repository error: %v", ErrInternal, err)
	}

	byDate := make(map[string]*domain.DaySchedule, len(stored))
	for _, sch := range stored {
		byDate[sch.Date.Format(domain.DateFormat)] = sch
	}

	lookup := func(date time.Time) *domain.DaySchedule {
		return byDate[date.Format(domain.DateFormat)]
	}

	return domain.AssembleRangeWithWindow(driverID, start, end, s.defaultWindow, lookup), nil
}

// resolveRange валидирует запрошенный период; при нулевых датах
// возвращает текущую неделю (с понедельника)
func (s *Service) resolveRange(req *models.GetCalendarRequest) (time.Time, time.Time, error) {
	if req.DriverID <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: driverID must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() && req.End.IsZero() {
		start, end := domain.WeekBounds(s.timeProvider.Now())
		return start, end, nil
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: both startDate and endDate are required", ErrInvalidRange)
	}

	start := domain.DateOnly(req.Start)
	end := domain.DateOnly(req.End)

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endDate before startDate", ErrInvalidRange)
	}

	return start, end, nil
}

func (s *Service) defaultDay(driverID int64, date time.Time) *domain.DaySchedule {
	return domain.NewDefaultDayScheduleWithWindow(driverID, date, s.defaultWindow)
}
