package submit_appointments

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/booking"
	bookingModels "github.com/m04kA/SMC-ScheduleService/internal/service/booking/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

// UseCase use case подачи заявки зрителя на набор слотов
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

// Execute выполняет use case подачи заявки
//
// Повторные клики по одному слоту схлопываются до подсчёта лимита. Лимит
// проверяется по всей заявке: превышение отклоняет её целиком. Прошедшие
// лимит слоты обрабатываются независимо друг от друга
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitAppointments: viewer=%d, %d selections", req.ViewerID, len(req.Selections))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitAppointments: validation failed: %v", err)
		return nil, err
	}

	// 2. Схлопываем повторные выборы одного слота
	keys := collapseSelections(req)
	if len(keys) == 0 {
		uc.logger.Info("SubmitAppointments: viewer=%d selections cancelled each other out", req.ViewerID)
		return &Response{Results: []SlotOutcome{}}, nil
	}

	// 3. Проверяем лимит выбора по всей заявке
	if len(keys) > domain.MaxSelectionsPerBatch {
		uc.logger.Warn("SubmitAppointments: viewer=%d selected %d slots, limit is %d",
			req.ViewerID, len(keys), domain.MaxSelectionsPerBatch)
		return nil, ErrSelectionLimitExceeded
	}

	// 4. Обрабатываем каждый слот независимо
	results := make([]SlotOutcome, 0, len(keys))
	for _, key := range keys {
		results = append(results, uc.processSlot(ctx, req.ViewerID, key))
	}

	uc.logger.Info("SubmitAppointments: viewer=%d processed %d slots", req.ViewerID, len(results))
	return &Response{Results: results}, nil
}

// processSlot прогоняет один слот через координатор и переводит исход
// в элемент ответа; ошибка по слоту не прерывает обработку остальных
func (uc *UseCase) processSlot(ctx context.Context, viewerID int64, key domain.SlotKey) SlotOutcome {
	outcome := SlotOutcome{
		OwnerID: key.OwnerID,
		Date:    key.Date,
		Hour:    key.Hour,
		Minute:  key.Minute,
	}

	result, err := uc.coordinator.RequestBooking(ctx, viewerID, key)
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Reason = failureReason(err)
		uc.logger.Warn("SubmitAppointments: viewer=%d slot %s failed: %v", viewerID, key, err)
		return outcome
	}

	switch result.Outcome {
	case bookingModels.OutcomeBooked:
		outcome.Status = StatusBooked
	case bookingModels.OutcomeWaitlisted:
		outcome.Status = StatusWaitlisted
		outcome.Position = ptr.Ptr(result.Position)
	}

	return outcome
}

// failureReason переводит ошибку координатора в машиночитаемую причину отказа
func failureReason(err error) string {
	switch {
	case errors.Is(err, booking.ErrSlotNotFound):
		return ReasonSlotNotFound
	case errors.Is(err, booking.ErrInvalidTransition):
		return ReasonSlotClosed
	case errors.Is(err, booking.ErrDuplicateRequest):
		return ReasonDuplicateRequest
	case errors.Is(err, booking.ErrTransientStore):
		return ReasonTransientFailure
	default:
		return ReasonInternalError
	}
}
