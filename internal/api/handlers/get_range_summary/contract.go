package get_range_summary

import (
	"context"

	planningModels "github.com/m04kA/VTC-PlanningService/internal/service/planning/models"
)

type PlanningService interface {
	GetSummary(ctx context.Context, req *planningModels.GetCalendarRequest) (*planningModels.SummaryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
