package get_analytics

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// UseCase use case чтения аналитики владельца
type UseCase struct {
	analyticsService AnalyticsService
	profileClient    ProfileServiceClient
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(analyticsService AnalyticsService, profileClient ProfileServiceClient, logger Logger) *UseCase {
	return &UseCase{
		analyticsService: analyticsService,
		profileClient:    profileClient,
		logger:           logger,
	}
}

// Execute выполняет use case чтения аналитики
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAnalytics: owner=%d", req.OwnerID)

	// 1. Валидация входных данных
	if req.OwnerID <= 0 {
		return nil, fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	// 2. Читаем агрегаты
	analytics, err := uc.analyticsService.GetOwnerAnalytics(ctx, req.OwnerID)
	if err != nil {
		uc.logger.Error("GetAnalytics: owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	response := &Response{
		OwnerID:    req.OwnerID,
		TopBookers: make([]TopBooker, 0, len(analytics.TopBookers)),
	}

	if analytics.FrequentSlot != nil {
		response.FrequentSlot = &FrequentSlot{
			Time:  domain.FormatSlotTime(analytics.FrequentSlot.Hour, analytics.FrequentSlot.Minute),
			Total: analytics.FrequentSlot.Total,
		}
	}

	// 3. Обогащаем топ зрителей именами из ProfileService
	for _, booker := range analytics.TopBookers {
		entry := TopBooker{
			UserID: booker.BookerUserID,
			Total:  booker.Total,
		}

		user, err := uc.profileClient.GetUserWithGracefulDegradation(ctx, booker.BookerUserID)
		if err == nil {
			entry.Name = &user.Name
		}

		response.TopBookers = append(response.TopBookers, entry)
	}

	return response, nil
}
