package get_viewer_bookings

import (
	"context"

	getViewerBookings "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_viewer_bookings"
)

type GetViewerBookingsUseCase interface {
	Execute(ctx context.Context, req *getViewerBookings.Request) (*getViewerBookings.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
