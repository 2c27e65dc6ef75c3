package toggle_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/booking"
	bookingModels "github.com/m04kA/SMC-ScheduleService/internal/service/booking/models"
)

type fakeCoordinator struct {
	lastActorID int64
	lastKey     domain.SlotKey
	result      *bookingModels.ToggleResult
	err         error
}

func (f *fakeCoordinator) ToggleAvailability(_ context.Context, actorID int64, key domain.SlotKey) (*bookingModels.ToggleResult, error) {
	f.lastActorID = actorID
	f.lastKey = key
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var today = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func newUseCase(coordinator *fakeCoordinator) *UseCase {
	uc := NewUseCase(coordinator, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: today}
	return uc
}

func validRequest() *Request {
	return &Request{
		ActorID: 10,
		OwnerID: 10,
		Date:    time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		Hour:    9,
		Minute:  30,
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("opens slot", func(t *testing.T) {
		coordinator := &fakeCoordinator{result: &bookingModels.ToggleResult{NewState: domain.SlotOpen}}
		uc := newUseCase(coordinator)

		resp, err := uc.Execute(ctx, validRequest())
		require.NoError(t, err)
		assert.Equal(t, "open", resp.State)
		assert.Equal(t, int64(10), coordinator.lastActorID)
		assert.Equal(t, 9, coordinator.lastKey.Hour)
	})

	t.Run("maps coordinator errors", func(t *testing.T) {
		cases := []struct {
			name        string
			coordinator error
			expected    error
		}{
			{"not owner", booking.ErrNotOwner, ErrNotOwner},
			{"occupied", booking.ErrSlotOccupied, ErrSlotOccupied},
			{"invalid input", booking.ErrInvalidInput, ErrInvalidInput},
			{"internal", booking.ErrInternal, ErrInternal},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				uc := newUseCase(&fakeCoordinator{err: tc.coordinator})

				_, err := uc.Execute(ctx, validRequest())
				assert.ErrorIs(t, err, tc.expected)
			})
		}
	})

	t.Run("past date is outside the window", func(t *testing.T) {
		uc := newUseCase(&fakeCoordinator{})

		req := validRequest()
		req.Date = today.AddDate(0, 0, -1)
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrDateOutsideWindow)
	})

	t.Run("date beyond horizon is outside the window", func(t *testing.T) {
		uc := newUseCase(&fakeCoordinator{})

		req := validRequest()
		req.Date = today.AddDate(0, 0, domain.ScheduleWindowDays)
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrDateOutsideWindow)
	})

	t.Run("off-grid time", func(t *testing.T) {
		uc := newUseCase(&fakeCoordinator{})

		req := validRequest()
		req.Minute = 15
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
