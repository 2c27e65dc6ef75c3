package get_schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/profileservice"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

type fakeScheduleService struct {
	days []*domain.ScheduleDay
	err  error
}

func (f *fakeScheduleService) GetSchedule(_ context.Context, _ int64, _ time.Time) ([]*domain.ScheduleDay, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.days, nil
}

type fakeProfileClient struct {
	users map[int64]*profileservice.User
	calls int
}

func (f *fakeProfileClient) GetUserWithGracefulDegradation(_ context.Context, userID int64) (*profileservice.User, error) {
	f.calls++
	if user, ok := f.users[userID]; ok {
		return user, nil
	}
	return nil, profileservice.ErrServiceDegraded
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func scheduleDay(date time.Time, slots ...*domain.Timeslot) *domain.ScheduleDay {
	return &domain.ScheduleDay{Date: date, Slots: slots}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("renders window with states", func(t *testing.T) {
		svc := &fakeScheduleService{days: []*domain.ScheduleDay{
			scheduleDay(date,
				&domain.Timeslot{Hour: 8, Minute: 0},
				&domain.Timeslot{Hour: 8, Minute: 45, Available: true},
				&domain.Timeslot{Hour: 9, Minute: 30, Available: true, BookedByUserID: ptr.Ptr(int64(101)), WaitlistCount: 2},
			),
		}}
		profiles := &fakeProfileClient{users: map[int64]*profileservice.User{
			101: {ID: 101, Name: "Alice"},
		}}
		uc := NewUseCase(svc, profiles, nopLogger{})

		resp, err := uc.Execute(ctx, &Request{OwnerID: 10})
		require.NoError(t, err)
		require.Len(t, resp.Days, 1)
		require.Len(t, resp.Days[0].Slots, 3)

		assert.Equal(t, "2026-09-01", resp.Days[0].Date)

		closed := resp.Days[0].Slots[0]
		assert.Equal(t, "08:00", closed.Time)
		assert.Equal(t, "closed", closed.State)
		assert.Nil(t, closed.BookedBy)

		open := resp.Days[0].Slots[1]
		assert.Equal(t, "open", open.State)

		booked := resp.Days[0].Slots[2]
		assert.Equal(t, "booked", booked.State)
		assert.Equal(t, 2, booked.WaitlistCount)
		require.NotNil(t, booked.BookedBy)
		assert.Equal(t, int64(101), booked.BookedBy.UserID)
		require.NotNil(t, booked.BookedBy.Name)
		assert.Equal(t, "Alice", *booked.BookedBy.Name)
	})

	t.Run("degrades without profile names", func(t *testing.T) {
		svc := &fakeScheduleService{days: []*domain.ScheduleDay{
			scheduleDay(date,
				&domain.Timeslot{Hour: 8, Minute: 0, Available: true, BookedByUserID: ptr.Ptr(int64(101))},
			),
		}}
		uc := NewUseCase(svc, &fakeProfileClient{}, nopLogger{})

		resp, err := uc.Execute(ctx, &Request{OwnerID: 10})
		require.NoError(t, err)

		booked := resp.Days[0].Slots[0]
		require.NotNil(t, booked.BookedBy)
		assert.Equal(t, int64(101), booked.BookedBy.UserID)
		assert.Nil(t, booked.BookedBy.Name)
	})

	t.Run("caches profile lookups per request", func(t *testing.T) {
		svc := &fakeScheduleService{days: []*domain.ScheduleDay{
			scheduleDay(date,
				&domain.Timeslot{Hour: 8, Minute: 0, Available: true, BookedByUserID: ptr.Ptr(int64(101))},
				&domain.Timeslot{Hour: 8, Minute: 45, Available: true, BookedByUserID: ptr.Ptr(int64(101))},
			),
		}}
		profiles := &fakeProfileClient{users: map[int64]*profileservice.User{
			101: {ID: 101, Name: "Alice"},
		}}
		uc := NewUseCase(svc, profiles, nopLogger{})

		_, err := uc.Execute(ctx, &Request{OwnerID: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, profiles.calls)
	})

	t.Run("invalid owner", func(t *testing.T) {
		uc := NewUseCase(&fakeScheduleService{}, &fakeProfileClient{}, nopLogger{})

		_, err := uc.Execute(ctx, &Request{OwnerID: 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
