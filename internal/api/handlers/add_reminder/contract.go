package add_reminder

import (
	"context"

	schedulesModels "github.com/m04kA/VTC-PlanningService/internal/service/schedules/models"
)

type ScheduleService interface {
	AddReminder(ctx context.Context, req *schedulesModels.AddReminderRequest) (*schedulesModels.MutationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
