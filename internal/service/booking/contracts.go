package booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// SlotRepository интерфейс репозитория расписаний и слотов
type SlotRepository interface {
	EnsureDay(ctx context.Context, ownerID int64, date time.Time) (*domain.Schedule, error)
	GetSlotByKey(ctx context.Context, key domain.SlotKey) (*domain.Timeslot, error)
	SetAvailability(ctx context.Context, slotID int64, available bool) error
	SetOccupant(ctx context.Context, slotID int64, occupant *int64) error
}

// WaitlistRepository интерфейс репозитория очередей ожидания
type WaitlistRepository interface {
	Append(ctx context.Context, timeslotID, viewerID int64) (*domain.WaitlistEntry, error)
	Remove(ctx context.Context, timeslotID, viewerID int64) (bool, error)
	PeekHead(ctx context.Context, timeslotID int64) (*domain.WaitlistEntry, error)
	Exists(ctx context.Context, timeslotID, viewerID int64) (bool, error)
	Size(ctx context.Context, timeslotID int64) (int, error)
}

// StatsRepository интерфейс репозитория статистики бронирований
type StatsRepository interface {
	IncrementBooking(ctx context.Context, ownerID, bookerID int64, hour, minute int) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotLocker арена per-slot блокировок
// Все переходы состояния одного слота сериализуются через неё;
// разные слоты не контендят между собой
type SlotLocker interface {
	Lock(key string)
	Unlock(key string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
