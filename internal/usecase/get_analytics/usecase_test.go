package get_analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/profileservice"
	"github.com/m04kA/SMC-ScheduleService/internal/service/analytics/models"
)

type fakeAnalyticsService struct {
	result *models.OwnerAnalytics
	err    error
}

func (f *fakeAnalyticsService) GetOwnerAnalytics(_ context.Context, _ int64) (*models.OwnerAnalytics, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeProfileClient struct {
	users map[int64]*profileservice.User
}

func (f *fakeProfileClient) GetUserWithGracefulDegradation(_ context.Context, userID int64) (*profileservice.User, error) {
	if user, ok := f.users[userID]; ok {
		return user, nil
	}
	return nil, profileservice.ErrServiceDegraded
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("renders aggregates with names", func(t *testing.T) {
		svc := &fakeAnalyticsService{result: &models.OwnerAnalytics{
			FrequentSlot: &domain.FrequentSlot{Hour: 9, Minute: 30, Total: 5},
			TopBookers: []*domain.BookerTotal{
				{BookerUserID: 101, Total: 5},
				{BookerUserID: 102, Total: 3},
			},
		}}
		profiles := &fakeProfileClient{users: map[int64]*profileservice.User{
			101: {ID: 101, Name: "Alice"},
		}}
		uc := NewUseCase(svc, profiles, nopLogger{})

		resp, err := uc.Execute(ctx, &Request{OwnerID: 10})
		require.NoError(t, err)

		require.NotNil(t, resp.FrequentSlot)
		assert.Equal(t, "09:30", resp.FrequentSlot.Time)
		assert.Equal(t, 5, resp.FrequentSlot.Total)

		require.Len(t, resp.TopBookers, 2)
		require.NotNil(t, resp.TopBookers[0].Name)
		assert.Equal(t, "Alice", *resp.TopBookers[0].Name)
		assert.Nil(t, resp.TopBookers[1].Name, "degraded profile keeps the entry without a name")
		assert.Equal(t, 3, resp.TopBookers[1].Total)
	})

	t.Run("empty history", func(t *testing.T) {
		uc := NewUseCase(&fakeAnalyticsService{result: &models.OwnerAnalytics{}}, &fakeProfileClient{}, nopLogger{})

		resp, err := uc.Execute(ctx, &Request{OwnerID: 10})
		require.NoError(t, err)
		assert.Nil(t, resp.FrequentSlot)
		assert.Empty(t, resp.TopBookers)
	})

	t.Run("invalid owner", func(t *testing.T) {
		uc := NewUseCase(&fakeAnalyticsService{}, &fakeProfileClient{}, nopLogger{})

		_, err := uc.Execute(ctx, &Request{OwnerID: -5})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
