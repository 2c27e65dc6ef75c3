package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/booking"
)

// UseCase use case отмены бронирования
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

// Execute выполняет use case отмены бронирования
// Отмена и продвижение очереди происходят одним переходом внутри координатора
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: actor=%d, owner=%d, date=%s, time=%s",
		req.ActorID, req.OwnerID, req.Date.Format(domain.DateFormat),
		domain.FormatSlotTime(req.Hour, req.Minute))

	// 1. Валидация входных данных
	if req.ActorID <= 0 {
		return nil, fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	key := domain.SlotKey{
		OwnerID: req.OwnerID,
		Date:    domain.DateOnly(req.Date),
		Hour:    req.Hour,
		Minute:  req.Minute,
	}
	if err := key.Validate(); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Отменяем бронирование через координатор
	result, err := uc.coordinator.CancelBooking(ctx, req.ActorID, key)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrSlotNotFound):
			return nil, ErrSlotNotFound
		case errors.Is(err, booking.ErrInvalidTransition):
			return nil, ErrNoActiveBooking
		case errors.Is(err, booking.ErrAccessDenied):
			return nil, ErrAccessDenied
		case errors.Is(err, booking.ErrInvalidInput):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("CancelBooking: slot %s: %v", key, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	return &Response{
		OwnerID:          key.OwnerID,
		Date:             key.Date,
		Hour:             key.Hour,
		Minute:           key.Minute,
		State:            string(result.NewState),
		PromotedViewerID: result.PromotedViewerID,
		WaitlistCount:    result.WaitlistCount,
	}, nil
}
