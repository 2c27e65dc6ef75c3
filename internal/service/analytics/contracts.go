package analytics

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// StatsRepository интерфейс репозитория статистики бронирований
type StatsRepository interface {
	GetMostFrequentSlot(ctx context.Context, ownerID int64) (*domain.FrequentSlot, error)
	GetTopBookers(ctx context.Context, ownerID int64, limit int) ([]*domain.BookerTotal, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
