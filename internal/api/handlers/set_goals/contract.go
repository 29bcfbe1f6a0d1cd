package set_goals

import (
	"context"

	schedulesModels "github.com/m04kA/VTC-PlanningService/internal/service/schedules/models"
)

type ScheduleService interface {
	SetGoals(ctx context.Context, req *schedulesModels.SetGoalsRequest) (*schedulesModels.MutationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
