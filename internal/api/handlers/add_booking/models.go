package add_booking

import (
	"time"

	"github.com/m04kA/VTC-PlanningService/internal/domain"
	addBooking "github.com/m04kA/VTC-PlanningService/internal/usecase/add_booking"
	"github.com/m04kA/VTC-PlanningService/pkg/types"
)

// AddBookingRequest HTTP request model
type AddBookingRequest struct {
	Start             string  `json:"start"` // "09:00"
	End               string  `json:"end"`   // "10:30"
	Platform          string  `json:"platform"`
	EstimatedEarnings float64 `json:"estimatedEarnings"`
	ExternalRef       *string `json:"externalRef,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	DriverID          int64   `json:"driverId"`
	Date              string  `json:"date"`
	BookingIndex      int     `json:"bookingIndex"`
	Start             string  `json:"start"`
	End               string  `json:"end"`
	Platform          string  `json:"platform"`
	EstimatedEarnings float64 `json:"estimatedEarnings"`
	ExternalRef       *string `json:"externalRef,omitempty"`
	TotalBookedHours  float64 `json:"totalBookedHours"`
	AvailableHours    float64 `json:"availableHours"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AddBookingRequest) ToUseCaseRequest(driverID int64, date time.Time) (*addBooking.Request, error) {
	start, err := types.NewTimeStringFromString(r.Start)
	if err != nil {
		return nil, err
	}

	end, err := types.NewTimeStringFromString(r.End)
	if err != nil {
		return nil, err
	}

	return &addBooking.Request{
		DriverID:          driverID,
		Date:              date,
		Start:             start,
		End:               end,
		Platform:          r.Platform,
		EstimatedEarnings: r.EstimatedEarnings,
		ExternalRef:       r.ExternalRef,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *addBooking.Response) *BookingResponse {
	return &BookingResponse{
		DriverID:          resp.DriverID,
		Date:              resp.Date.Format(domain.DateFormat),
		BookingIndex:      resp.BookingIndex,
		Start:             resp.Start.String(),
		End:               resp.End.String(),
		Platform:          resp.Platform,
		EstimatedEarnings: resp.EstimatedEarnings,
		ExternalRef:       resp.ExternalRef,
		TotalBookedHours:  resp.TotalBookedHours,
		AvailableHours:    resp.AvailableHours,
	}
}
