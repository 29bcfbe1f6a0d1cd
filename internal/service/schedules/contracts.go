package schedules

import (
	"context"
	"time"

	"github.com/m04kA/VTC-PlanningService/internal/domain"
	"github.com/m04kA/VTC-PlanningService/internal/integrations/ridesservice"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByDriverAndDate(ctx context.Context, driverID int64, date time.Time) (*domain.DaySchedule, error)
	Create(ctx context.Context, s *domain.DaySchedule) (*domain.DaySchedule, error)
	Update(ctx context.Context, s *domain.DaySchedule) (*domain.DaySchedule, error)
}

// RidesServiceClient интерфейс клиента для RidesService
type RidesServiceClient interface {
	GetRidesForDayWithGracefulDegradation(ctx context.Context, driverID int64, date time.Time) ([]ridesservice.Ride, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
