package get_calendar_range

import (
	"context"

	planningModels "github.com/m04kA/VTC-PlanningService/internal/service/planning/models"
)

type PlanningService interface {
	GetCalendar(ctx context.Context, req *planningModels.GetCalendarRequest) (*planningModels.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
