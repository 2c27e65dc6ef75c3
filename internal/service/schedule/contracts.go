package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// SlotRepository интерфейс репозитория расписаний и слотов
type SlotRepository interface {
	EnsureDay(ctx context.Context, ownerID int64, date time.Time) (*domain.Schedule, error)
	GetDays(ctx context.Context, ownerID int64, from, to time.Time) ([]*domain.Schedule, error)
	GetLastDay(ctx context.Context, ownerID int64) (*domain.Schedule, error)
	DeleteDaysBefore(ctx context.Context, ownerID int64, before time.Time) (int64, error)
	GetOwnerIDs(ctx context.Context) ([]int64, error)
	GetSlotsByScheduleIDs(ctx context.Context, scheduleIDs []int64) (map[int64][]*domain.Timeslot, error)
	GetViewerBookings(ctx context.Context, viewerID int64) ([]*domain.ViewerBooking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
