package toggle_platform_sync

import (
	"context"

	schedulesModels "github.com/m04kA/VTC-PlanningService/internal/service/schedules/models"
)

type ScheduleService interface {
	TogglePlatformSync(ctx context.Context, req *schedulesModels.TogglePlatformSyncRequest) (*schedulesModels.PlatformSyncResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
