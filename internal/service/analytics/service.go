package analytics

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	statsRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/stats"
	"github.com/m04kA/SMC-ScheduleService/internal/service/analytics/models"
)

// Service сервис аналитики бронирований владельца
type Service struct {
	statsRepo StatsRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса аналитики
func NewService(statsRepo StatsRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		statsRepo: statsRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// GetOwnerAnalytics возвращает агрегаты по накопленной статистике владельца
// Отмены бронирований счётчики не уменьшают, поэтому новый владелец без
// единого бронирования получает пустой ответ, а не ошибку
func (s *Service) GetOwnerAnalytics(ctx context.Context, ownerID int64) (*models.OwnerAnalytics, error) {
	if ownerID <= 0 {
		return nil, fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	result := &models.OwnerAnalytics{}

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		frequent, err := s.statsRepo.GetMostFrequentSlot(txCtx, ownerID)
		if err != nil && !errors.Is(err, statsRepo.ErrNoStats) {
			return fmt.Errorf("%w: GetOwnerAnalytics - frequent slot: %v", ErrInternal, err)
		}
		result.FrequentSlot = frequent

		bookers, err := s.statsRepo.GetTopBookers(txCtx, ownerID, domain.TopBookersLimit)
		if err != nil {
			return fmt.Errorf("%w: GetOwnerAnalytics - top bookers: %v", ErrInternal, err)
		}
		result.TopBookers = bookers
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
