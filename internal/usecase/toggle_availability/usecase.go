package toggle_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/booking"
)

// UseCase use case переключения доступности слота владельцем
type UseCase struct {
	coordinator  BookingCoordinator
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(coordinator BookingCoordinator, logger Logger) *UseCase {
	return &UseCase{
		coordinator:  coordinator,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переключения слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ToggleAvailability: actor=%d, owner=%d, date=%s, time=%s",
		req.ActorID, req.OwnerID, req.Date.Format(domain.DateFormat),
		domain.FormatSlotTime(req.Hour, req.Minute))

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("ToggleAvailability: validation failed: %v", err)
		return nil, err
	}

	key := domain.SlotKey{
		OwnerID: req.OwnerID,
		Date:    domain.DateOnly(req.Date),
		Hour:    req.Hour,
		Minute:  req.Minute,
	}

	// 2. Переключаем слот через координатор
	result, err := uc.coordinator.ToggleAvailability(ctx, req.ActorID, key)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNotOwner):
			return nil, ErrNotOwner
		case errors.Is(err, booking.ErrSlotOccupied):
			return nil, ErrSlotOccupied
		case errors.Is(err, booking.ErrInvalidInput):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("ToggleAvailability: slot %s: %v", key, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	return &Response{
		OwnerID: key.OwnerID,
		Date:    key.Date,
		Hour:    key.Hour,
		Minute:  key.Minute,
		State:   string(result.NewState),
	}, nil
}
