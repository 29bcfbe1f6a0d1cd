package add_booking

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.DriverID <= 0 {
		return fmt.Errorf("%w: driverID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end times are required", ErrInvalidInput)
	}

	if req.Platform == "" {
		return fmt.Errorf("%w: platform is required", ErrInvalidInput)
	}

	if req.EstimatedEarnings < 0 {
		return fmt.Errorf("%w: estimatedEarnings must be non-negative", ErrInvalidInput)
	}

	return nil
}
