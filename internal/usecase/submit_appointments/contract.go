package submit_appointments

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/booking/models"
)

// BookingCoordinator интерфейс координатора бронирований
type BookingCoordinator interface {
	RequestBooking(ctx context.Context, viewerID int64, key domain.SlotKey) (*models.BookingResult, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
