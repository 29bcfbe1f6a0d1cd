package set_availability

import (
	"time"

	"github.com/m04kA/VTC-PlanningService/internal/domain"
	"github.com/m04kA/VTC-PlanningService/pkg/types"
)

// BreakInput перерыв в запросе
type BreakInput struct {
	Start  types.TimeString
	End    types.TimeString
	Reason string
}

// Request модель запроса на установку доступности дня
// WorkWindowStart/End == nil означает день без рабочего окна (ноль доступных часов)
type Request struct {
	DriverID        int64
	Date            time.Time
	Status          string
	WorkWindowStart *types.TimeString
	WorkWindowEnd   *types.TimeString
	Breaks          []BreakInput
}

// Response модель ответа с производными показателями дня
type Response struct {
	DriverID            int64
	Date                time.Time
	Status              domain.AvailabilityStatus
	TotalAvailableHours float64
	TotalBookedHours    float64
	AvailableHours      float64
}
