package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	statsRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/stats"
)

type fakeStatsRepo struct {
	frequent *domain.FrequentSlot
	bookers  []*domain.BookerTotal
}

func (f *fakeStatsRepo) GetMostFrequentSlot(_ context.Context, _ int64) (*domain.FrequentSlot, error) {
	if f.frequent == nil {
		return nil, statsRepo.ErrNoStats
	}
	return f.frequent, nil
}

func (f *fakeStatsRepo) GetTopBookers(_ context.Context, _ int64, limit int) ([]*domain.BookerTotal, error) {
	if len(f.bookers) > limit {
		return f.bookers[:limit], nil
	}
	return f.bookers, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGetOwnerAnalytics(t *testing.T) {
	ctx := context.Background()

	t.Run("returns aggregates", func(t *testing.T) {
		repo := &fakeStatsRepo{
			frequent: &domain.FrequentSlot{Hour: 9, Minute: 30, Total: 5},
			bookers: []*domain.BookerTotal{
				{BookerUserID: 101, Total: 5},
				{BookerUserID: 102, Total: 3},
				{BookerUserID: 103, Total: 2},
				{BookerUserID: 104, Total: 1},
			},
		}
		svc := NewService(repo, passthroughTxManager{}, nopLogger{})

		result, err := svc.GetOwnerAnalytics(ctx, 10)
		require.NoError(t, err)
		require.NotNil(t, result.FrequentSlot)
		assert.Equal(t, 9, result.FrequentSlot.Hour)
		assert.Equal(t, 30, result.FrequentSlot.Minute)
		assert.Len(t, result.TopBookers, domain.TopBookersLimit)
		assert.Equal(t, int64(101), result.TopBookers[0].BookerUserID)
	})

	t.Run("owner without history gets empty aggregates", func(t *testing.T) {
		svc := NewService(&fakeStatsRepo{}, passthroughTxManager{}, nopLogger{})

		result, err := svc.GetOwnerAnalytics(ctx, 10)
		require.NoError(t, err)
		assert.Nil(t, result.FrequentSlot)
		assert.Empty(t, result.TopBookers)
	})

	t.Run("invalid owner", func(t *testing.T) {
		svc := NewService(&fakeStatsRepo{}, passthroughTxManager{}, nopLogger{})

		_, err := svc.GetOwnerAnalytics(ctx, -1)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
