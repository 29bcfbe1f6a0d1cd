package add_booking

import (
	"context"

	addBooking "github.com/m04kA/VTC-PlanningService/internal/usecase/add_booking"
)

type AddBookingUseCase interface {
	Execute(ctx context.Context, req *addBooking.Request) (*addBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
