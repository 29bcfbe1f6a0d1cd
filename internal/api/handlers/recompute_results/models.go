package recompute_results

import (
	"time"

	schedulesModels "github.com/m04kA/VTC-PlanningService/internal/service/schedules/models"
)

// CompletionRequest статус завершения бронирования
type CompletionRequest struct {
	Index          int      `json:"index"`
	ActualEarnings *float64 `json:"actualEarnings,omitempty"`
	Rating         *float64 `json:"rating,omitempty"`
}

// RecomputeResultsRequest HTTP request model
// useRidesService=true дополняет присланные статусы данными RidesService
type RecomputeResultsRequest struct {
	Completions     []CompletionRequest `json:"completions"`
	UseRidesService bool                `json:"useRidesService"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RecomputeResultsRequest) ToServiceRequest(driverID int64, date time.Time) *schedulesModels.RecomputeResultsRequest {
	req := &schedulesModels.RecomputeResultsRequest{
		DriverID:        driverID,
		Date:            date,
		UseRidesService: r.UseRidesService,
	}

	for _, c := range r.Completions {
		req.Completions = append(req.Completions, schedulesModels.CompletionInput{
			Index:          c.Index,
			ActualEarnings: c.ActualEarnings,
			Rating:         c.Rating,
		})
	}

	return req
}
