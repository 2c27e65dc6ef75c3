package withdraw_waitlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/booking"
)

// UseCase use case выхода зрителя из очереди ожидания
type UseCase struct {
	coordinator BookingCoordinator
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(coordinator BookingCoordinator, logger Logger) *UseCase {
	return &UseCase{
		coordinator: coordinator,
		logger:      logger,
	}
}

// Execute выполняет use case выхода из очереди
// Операция идемпотентна: повторный выход из очереди не является ошибкой
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("WithdrawWaitlist: viewer=%d, owner=%d, date=%s, time=%s",
		req.ViewerID, req.OwnerID, req.Date.Format(domain.DateFormat),
		domain.FormatSlotTime(req.Hour, req.Minute))

	// 1. Валидация входных данных
	if req.ViewerID <= 0 {
		return fmt.Errorf("%w: viewerID must be positive", ErrInvalidInput)
	}

	key := domain.SlotKey{
		OwnerID: req.OwnerID,
		Date:    domain.DateOnly(req.Date),
		Hour:    req.Hour,
		Minute:  req.Minute,
	}
	if err := key.Validate(); err != nil {
		uc.logger.Warn("WithdrawWaitlist: validation failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Убираем зрителя из очереди через координатор
	if err := uc.coordinator.WithdrawFromWaitlist(ctx, req.ViewerID, key); err != nil {
		switch {
		case errors.Is(err, booking.ErrSlotNotFound):
			return ErrSlotNotFound
		case errors.Is(err, booking.ErrInvalidInput):
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("WithdrawWaitlist: slot %s: %v", key, err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	return nil
}
