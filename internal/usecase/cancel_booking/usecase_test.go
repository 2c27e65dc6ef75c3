package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/booking"
	bookingModels "github.com/m04kA/SMC-ScheduleService/internal/service/booking/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

type fakeCoordinator struct {
	result *bookingModels.CancelResult
	err    error
}

func (f *fakeCoordinator) CancelBooking(_ context.Context, _ int64, _ domain.SlotKey) (*bookingModels.CancelResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validRequest() *Request {
	return &Request{
		ActorID: 101,
		OwnerID: 10,
		Date:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Hour:    9,
		Minute:  30,
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("reopened slot", func(t *testing.T) {
		uc := NewUseCase(&fakeCoordinator{
			result: &bookingModels.CancelResult{NewState: domain.SlotOpen},
		}, nopLogger{})

		resp, err := uc.Execute(ctx, validRequest())
		require.NoError(t, err)
		assert.Equal(t, "open", resp.State)
		assert.Nil(t, resp.PromotedViewerID)
	})

	t.Run("promotion reported", func(t *testing.T) {
		uc := NewUseCase(&fakeCoordinator{
			result: &bookingModels.CancelResult{
				PromotedViewerID: ptr.Ptr(int64(102)),
				NewState:         domain.SlotBooked,
				WaitlistCount:    1,
			},
		}, nopLogger{})

		resp, err := uc.Execute(ctx, validRequest())
		require.NoError(t, err)
		assert.Equal(t, "booked", resp.State)
		require.NotNil(t, resp.PromotedViewerID)
		assert.Equal(t, int64(102), *resp.PromotedViewerID)
		assert.Equal(t, 1, resp.WaitlistCount)
	})

	t.Run("maps coordinator errors", func(t *testing.T) {
		cases := []struct {
			name        string
			coordinator error
			expected    error
		}{
			{"not found", booking.ErrSlotNotFound, ErrSlotNotFound},
			{"no booking", booking.ErrInvalidTransition, ErrNoActiveBooking},
			{"access denied", booking.ErrAccessDenied, ErrAccessDenied},
			{"internal", booking.ErrInternal, ErrInternal},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				uc := NewUseCase(&fakeCoordinator{err: tc.coordinator}, nopLogger{})

				_, err := uc.Execute(ctx, validRequest())
				assert.ErrorIs(t, err, tc.expected)
			})
		}
	})

	t.Run("invalid actor", func(t *testing.T) {
		uc := NewUseCase(&fakeCoordinator{}, nopLogger{})

		req := validRequest()
		req.ActorID = 0
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
