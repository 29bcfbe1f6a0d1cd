package set_availability

import (
	"time"

	"github.com/m04kA/VTC-PlanningService/internal/domain"
	setAvailability "github.com/m04kA/VTC-PlanningService/internal/usecase/set_availability"
	"github.com/m04kA/VTC-PlanningService/pkg/types"
)

// BreakRequest перерыв в HTTP запросе
type BreakRequest struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Reason string `json:"reason"`
}

// SetAvailabilityRequest HTTP request model
// workWindow == null означает день без рабочего окна
type SetAvailabilityRequest struct {
	Status     string         `json:"status"`
	WorkWindow *WindowRequest `json:"workWindow,omitempty"`
	Breaks     []BreakRequest `json:"breaks,omitempty"`
}

// WindowRequest рабочее окно в HTTP запросе
type WindowRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailabilityResponse HTTP response model с производными показателями дня
type AvailabilityResponse struct {
	DriverID            int64   `json:"driverId"`
	Date                string  `json:"date"`
	Status              string  `json:"status"`
	TotalAvailableHours float64 `json:"totalAvailableHours"`
	TotalBookedHours    float64 `json:"totalBookedHours"`
	AvailableHours      float64 `json:"availableHours"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SetAvailabilityRequest) ToUseCaseRequest(driverID int64, date time.Time) (*setAvailability.Request, error) {
	req := &setAvailability.Request{
		DriverID: driverID,
		Date:     date,
		Status:   r.Status,
	}

	if r.WorkWindow != nil {
		start, err := types.NewTimeStringFromString(r.WorkWindow.Start)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromString(r.WorkWindow.End)
		if err != nil {
			return nil, err
		}
		req.WorkWindowStart = &start
		req.WorkWindowEnd = &end
	}

	for _, b := range r.Breaks {
		start, err := types.NewTimeStringFromString(b.Start)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromString(b.End)
		if err != nil {
			return nil, err
		}
		req.Breaks = append(req.Breaks, setAvailability.BreakInput{
			Start:  start,
			End:    end,
			Reason: b.Reason,
		})
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *setAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		DriverID:            resp.DriverID,
		Date:                resp.Date.Format(domain.DateFormat),
		Status:              string(resp.Status),
		TotalAvailableHours: resp.TotalAvailableHours,
		TotalBookedHours:    resp.TotalBookedHours,
		AvailableHours:      resp.AvailableHours,
	}
}
