package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/booking/models"
)

// BookingCoordinator интерфейс координатора бронирований
type BookingCoordinator interface {
	CancelBooking(ctx context.Context, actorID int64, key domain.SlotKey) (*models.CancelResult, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
