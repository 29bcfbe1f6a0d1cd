package planning

import (
	"context"
	"time"

	"github.com/m04kA/VTC-PlanningService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByDriverAndDate(ctx context.Context, driverID int64, date time.Time) (*domain.DaySchedule, error)
	GetByDriverAndDateRange(ctx context.Context, driverID int64, start, end time.Time) ([]*domain.DaySchedule, error)
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
