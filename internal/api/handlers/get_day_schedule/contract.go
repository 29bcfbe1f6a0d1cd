package get_day_schedule

import (
	"context"
	"time"

	planningModels "github.com/m04kA/VTC-PlanningService/internal/service/planning/models"
)

type PlanningService interface {
	GetDay(ctx context.Context, driverID int64, date time.Time) (*planningModels.DayScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
