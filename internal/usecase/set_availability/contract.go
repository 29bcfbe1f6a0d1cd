package set_availability

import (
	"context"
	"time"

	"github.com/m04kA/VTC-PlanningService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByDriverAndDate(ctx context.Context, driverID int64, date time.Time) (*domain.DaySchedule, error)
	Create(ctx context.Context, s *domain.DaySchedule) (*domain.DaySchedule, error)
	Update(ctx context.Context, s *domain.DaySchedule) (*domain.DaySchedule, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
