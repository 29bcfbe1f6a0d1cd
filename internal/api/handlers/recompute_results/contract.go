package recompute_results

import (
	"context"

	schedulesModels "github.com/m04kA/VTC-PlanningService/internal/service/schedules/models"
)

type ScheduleService interface {
	RecomputeResults(ctx context.Context, req *schedulesModels.RecomputeResultsRequest) (*schedulesModels.ResultsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
