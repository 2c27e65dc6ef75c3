package withdraw_waitlist

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// BookingCoordinator интерфейс координатора бронирований
type BookingCoordinator interface {
	WithdrawFromWaitlist(ctx context.Context, viewerID int64, key domain.SlotKey) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
