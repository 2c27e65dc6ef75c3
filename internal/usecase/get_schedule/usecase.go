package get_schedule

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// UseCase use case чтения окна расписания владельца
type UseCase struct {
	scheduleService ScheduleService
	profileClient   ProfileServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(scheduleService ScheduleService, profileClient ProfileServiceClient, logger Logger) *UseCase {
	return &UseCase{
		scheduleService: scheduleService,
		profileClient:   profileClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case чтения расписания
// Отображаемые имена занимающих подтягиваются из ProfileService с graceful
// degradation: при недоступности сервиса расписание отдаётся без имён
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSchedule: owner=%d", req.OwnerID)

	// 1. Валидация входных данных
	if req.OwnerID <= 0 {
		return nil, fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	// 2. Читаем окно расписания (с актуализацией в той же транзакции)
	days, err := uc.scheduleService.GetSchedule(ctx, req.OwnerID, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Error("GetSchedule: owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Собираем ответ, обогащая занятые слоты именами зрителей
	names := make(map[int64]*string)
	response := &Response{
		OwnerID: req.OwnerID,
		Days:    make([]Day, 0, len(days)),
	}

	for _, day := range days {
		respDay := Day{
			Date:  day.Date.Format(domain.DateFormat),
			Slots: make([]Slot, 0, len(day.Slots)),
		}

		for _, slot := range day.Slots {
			respSlot := Slot{
				Time:          slot.TimeLabel(),
				State:         string(slot.State()),
				WaitlistCount: slot.WaitlistCount,
			}

			if slot.BookedByUserID != nil {
				respSlot.BookedBy = &BookedBy{
					UserID: *slot.BookedByUserID,
					Name:   uc.resolveName(ctx, names, *slot.BookedByUserID),
				}
			}

			respDay.Slots = append(respDay.Slots, respSlot)
		}

		response.Days = append(response.Days, respDay)
	}

	return response, nil
}

// resolveName возвращает отображаемое имя пользователя, кэшируя результат
// в пределах запроса; nil при недоступном профиле
func (uc *UseCase) resolveName(ctx context.Context, cache map[int64]*string, userID int64) *string {
	if name, ok := cache[userID]; ok {
		return name
	}

	user, err := uc.profileClient.GetUserWithGracefulDegradation(ctx, userID)
	if err != nil {
		cache[userID] = nil
		return nil
	}

	cache[userID] = &user.Name
	return &user.Name
}
