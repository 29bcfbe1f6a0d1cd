package set_goals

import (
	"time"

	schedulesModels "github.com/m04kA/VTC-PlanningService/internal/service/schedules/models"
)

// SetGoalsRequest HTTP request model
type SetGoalsRequest struct {
	TargetRides    int      `json:"targetRides"`
	TargetEarnings float64  `json:"targetEarnings"`
	TargetHours    float64  `json:"targetHours"`
	PreferredZones []string `json:"preferredZones,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SetGoalsRequest) ToServiceRequest(driverID int64, date time.Time) *schedulesModels.SetGoalsRequest {
	return &schedulesModels.SetGoalsRequest{
		DriverID:       driverID,
		Date:           date,
		TargetRides:    r.TargetRides,
		TargetEarnings: r.TargetEarnings,
		TargetHours:    r.TargetHours,
		PreferredZones: r.PreferredZones,
	}
}
