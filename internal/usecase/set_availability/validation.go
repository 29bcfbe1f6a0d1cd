package set_availability

import (
	"fmt"

	"github.com/m04kA/VTC-PlanningService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.DriverID <= 0 {
		return fmt.Errorf("%w: driverID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !domain.AvailabilityStatus(req.Status).IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	// Окно задается либо целиком, либо никак
	if (req.WorkWindowStart == nil) != (req.WorkWindowEnd == nil) {
		return fmt.Errorf("%w: work window requires both start and end", ErrInvalidInput)
	}

	return nil
}
