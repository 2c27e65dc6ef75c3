package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
	waitlistRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-ScheduleService/internal/service/booking/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/slotlock"
)

// fakeStore in-memory реализация всех трех репозиториев координатора
type fakeStore struct {
	mu     sync.Mutex
	nextID int64
	slots  map[string]*domain.Timeslot
	byID   map[int64]*domain.Timeslot
	queues map[int64][]domain.WaitlistEntry
	stats  map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		slots:  make(map[string]*domain.Timeslot),
		byID:   make(map[int64]*domain.Timeslot),
		queues: make(map[int64][]domain.WaitlistEntry),
		stats:  make(map[string]int),
	}
}

func (f *fakeStore) slotMapKey(ownerID int64, date time.Time, hour, minute int) string {
	return fmt.Sprintf("%d:%s:%02d:%02d", ownerID, date.Format(domain.DateFormat), hour, minute)
}

func (f *fakeStore) EnsureDay(_ context.Context, ownerID int64, date time.Time) (*domain.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, gt := range domain.GridTimes() {
		mapKey := f.slotMapKey(ownerID, date, gt.Hour, gt.Minute)
		if _, ok := f.slots[mapKey]; ok {
			continue
		}
		f.nextID++
		slot := &domain.Timeslot{ID: f.nextID, Hour: gt.Hour, Minute: gt.Minute}
		f.slots[mapKey] = slot
		f.byID[slot.ID] = slot
	}

	return &domain.Schedule{OwnerID: ownerID, Date: date}, nil
}

func (f *fakeStore) GetSlotByKey(_ context.Context, key domain.SlotKey) (*domain.Timeslot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	slot, ok := f.slots[f.slotMapKey(key.OwnerID, key.Date, key.Hour, key.Minute)]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	copied := *slot
	return &copied, nil
}

func (f *fakeStore) SetAvailability(_ context.Context, slotID int64, available bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.byID[slotID].Available = available
	return nil
}

func (f *fakeStore) SetOccupant(_ context.Context, slotID int64, occupant *int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	slot := f.byID[slotID]
	slot.BookedByUserID = occupant
	slot.Available = true
	return nil
}

func (f *fakeStore) Append(_ context.Context, timeslotID, viewerID int64) (*domain.WaitlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.queues[timeslotID] {
		if e.ViewerUserID == viewerID {
			return nil, waitlistRepo.ErrDuplicateEntry
		}
	}

	entry := domain.WaitlistEntry{
		TimeslotID:   timeslotID,
		ViewerUserID: viewerID,
		Position:     len(f.queues[timeslotID]),
		RequestedAt:  time.Now(),
	}
	f.queues[timeslotID] = append(f.queues[timeslotID], entry)
	return &entry, nil
}

func (f *fakeStore) Remove(_ context.Context, timeslotID, viewerID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	queue := f.queues[timeslotID]
	for i, e := range queue {
		if e.ViewerUserID == viewerID {
			queue = append(queue[:i], queue[i+1:]...)
			for j := range queue {
				queue[j].Position = j
			}
			f.queues[timeslotID] = queue
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) PeekHead(_ context.Context, timeslotID int64) (*domain.WaitlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	queue := f.queues[timeslotID]
	if len(queue) == 0 {
		return nil, waitlistRepo.ErrEmptyWaitlist
	}
	head := queue[0]
	return &head, nil
}

func (f *fakeStore) Exists(_ context.Context, timeslotID, viewerID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.queues[timeslotID] {
		if e.ViewerUserID == viewerID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Size(_ context.Context, timeslotID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.queues[timeslotID]), nil
}

func (f *fakeStore) IncrementBooking(_ context.Context, ownerID, bookerID int64, hour, minute int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.stats[fmt.Sprintf("%d:%d:%02d:%02d", ownerID, bookerID, hour, minute)]++
	return nil
}

func (f *fakeStore) bookingCount(ownerID, bookerID int64, hour, minute int) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.stats[fmt.Sprintf("%d:%d:%02d:%02d", ownerID, bookerID, hour, minute)]
}

func (f *fakeStore) queuePositions(timeslotID int64) []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	viewers := make([]int64, 0, len(f.queues[timeslotID]))
	for _, e := range f.queues[timeslotID] {
		viewers = append(viewers, e.ViewerUserID)
	}
	return viewers
}

// passthroughTxManager выполняет callback без транзакции
type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// flakyTxManager сбоит временной ошибкой указанное число раз
type flakyTxManager struct {
	failures int
	calls    int
}

func (m *flakyTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if m.calls <= m.failures {
		return &pq.Error{Code: "40001"}
	}
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	ownerID  = int64(10)
	viewerA  = int64(101)
	viewerB  = int64(102)
	viewerC  = int64(103)
	stranger = int64(999)
)

func testKey() domain.SlotKey {
	return domain.SlotKey{
		OwnerID: ownerID,
		Date:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Hour:    9,
		Minute:  30,
	}
}

func newFixture(t *testing.T) (*Service, *fakeStore) {
	t.Helper()

	store := newFakeStore()
	svc := NewService(store, store, store, passthroughTxManager{}, slotlock.New(), metrics.Nop{}, nopLogger{})
	return svc, store
}

// openSlot материализует день и открывает слот под ключом
func openSlot(t *testing.T, svc *Service, key domain.SlotKey) {
	t.Helper()

	result, err := svc.ToggleAvailability(context.Background(), key.OwnerID, key)
	require.NoError(t, err)
	require.Equal(t, domain.SlotOpen, result.NewState)
}

func TestToggleAvailability(t *testing.T) {
	ctx := context.Background()
	key := testKey()

	t.Run("opens then closes", func(t *testing.T) {
		svc, _ := newFixture(t)

		result, err := svc.ToggleAvailability(ctx, ownerID, key)
		require.NoError(t, err)
		assert.Equal(t, domain.SlotOpen, result.NewState)

		result, err = svc.ToggleAvailability(ctx, ownerID, key)
		require.NoError(t, err)
		assert.Equal(t, domain.SlotClosed, result.NewState)
	})

	t.Run("not owner", func(t *testing.T) {
		svc, _ := newFixture(t)

		_, err := svc.ToggleAvailability(ctx, stranger, key)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("booked slot cannot be closed", func(t *testing.T) {
		svc, _ := newFixture(t)
		openSlot(t, svc, key)

		_, err := svc.RequestBooking(ctx, viewerA, key)
		require.NoError(t, err)

		_, err = svc.ToggleAvailability(ctx, ownerID, key)
		assert.ErrorIs(t, err, ErrSlotOccupied)
	})

	t.Run("off-grid time", func(t *testing.T) {
		svc, _ := newFixture(t)

		badKey := key
		badKey.Minute = 17
		_, err := svc.ToggleAvailability(ctx, ownerID, badKey)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestRequestBooking(t *testing.T) {
	ctx := context.Background()
	key := testKey()

	t.Run("open slot is booked", func(t *testing.T) {
		svc, store := newFixture(t)
		openSlot(t, svc, key)

		result, err := svc.RequestBooking(ctx, viewerA, key)
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeBooked, result.Outcome)
		assert.Equal(t, 1, store.bookingCount(ownerID, viewerA, key.Hour, key.Minute))
	})

	t.Run("closed slot rejects booking", func(t *testing.T) {
		svc, _ := newFixture(t)
		openSlot(t, svc, key)

		_, err := svc.ToggleAvailability(ctx, ownerID, key)
		require.NoError(t, err)

		_, err = svc.RequestBooking(ctx, viewerA, key)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown slot", func(t *testing.T) {
		svc, _ := newFixture(t)

		_, err := svc.RequestBooking(ctx, viewerA, key)
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("booked slot queues later viewers in order", func(t *testing.T) {
		svc, _ := newFixture(t)
		openSlot(t, svc, key)

		_, err := svc.RequestBooking(ctx, viewerA, key)
		require.NoError(t, err)

		result, err := svc.RequestBooking(ctx, viewerB, key)
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeWaitlisted, result.Outcome)
		assert.Equal(t, 0, result.Position)

		result, err = svc.RequestBooking(ctx, viewerC, key)
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeWaitlisted, result.Outcome)
		assert.Equal(t, 1, result.Position)
	})

	t.Run("duplicate by occupant", func(t *testing.T) {
		svc, _ := newFixture(t)
		openSlot(t, svc, key)

		_, err := svc.RequestBooking(ctx, viewerA, key)
		require.NoError(t, err)

		_, err = svc.RequestBooking(ctx, viewerA, key)
		assert.ErrorIs(t, err, ErrDuplicateRequest)
	})

	t.Run("duplicate by queued viewer", func(t *testing.T) {
		svc, _ := newFixture(t)
		openSlot(t, svc, key)

		_, err := svc.RequestBooking(ctx, viewerA, key)
		require.NoError(t, err)
		_, err = svc.RequestBooking(ctx, viewerB, key)
		require.NoError(t, err)

		_, err = svc.RequestBooking(ctx, viewerB, key)
		assert.ErrorIs(t, err, ErrDuplicateRequest)
	})

	t.Run("owner cannot book own slot", func(t *testing.T) {
		svc, _ := newFixture(t)
		openSlot(t, svc, key)

		_, err := svc.RequestBooking(ctx, ownerID, key)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestRequestBooking_ConcurrentSingleWinner(t *testing.T) {
	ctx := context.Background()
	key := testKey()

	svc, _ := newFixture(t)
	openSlot(t, svc, key)

	const viewers = 16
	results := make([]*models.BookingResult, viewers)

	var wg sync.WaitGroup
	for i := 0; i < viewers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := svc.RequestBooking(ctx, int64(200+i), key)
			require.NoError(t, err)
			results[i] = result
		}(i)
	}
	wg.Wait()

	booked := 0
	positions := make(map[int]bool)
	for _, result := range results {
		if result.Outcome == models.OutcomeBooked {
			booked++
			continue
		}
		assert.False(t, positions[result.Position], "duplicate queue position %d", result.Position)
		positions[result.Position] = true
	}

	assert.Equal(t, 1, booked, "exactly one concurrent request must win the slot")
	assert.Len(t, positions, viewers-1)
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()
	key := testKey()

	t.Run("empty queue reopens slot", func(t *testing.T) {
		svc, _ := newFixture(t)
		openSlot(t, svc, key)

		_, err := svc.RequestBooking(ctx, viewerA, key)
		require.NoError(t, err)

		result, err := svc.CancelBooking(ctx, viewerA, key)
		require.NoError(t, err)
		assert.Nil(t, result.PromotedViewerID)
		assert.Equal(t, domain.SlotOpen, result.NewState)
	})

	t.Run("promotes head of queue", func(t *testing.T) {
		svc, store := newFixture(t)
		openSlot(t, svc, key)

		_, err := svc.RequestBooking(ctx, viewerA, key)
		require.NoError(t, err)
		_, err = svc.RequestBooking(ctx, viewerB, key)
		require.NoError(t, err)
		_, err = svc.RequestBooking(ctx, viewerC, key)
		require.NoError(t, err)

		result, err := svc.CancelBooking(ctx, viewerA, key)
		require.NoError(t, err)
		require.NotNil(t, result.PromotedViewerID)
		assert.Equal(t, viewerB, *result.PromotedViewerID)
		assert.Equal(t, domain.SlotBooked, result.NewState)
		assert.Equal(t, 1, result.WaitlistCount)
		assert.Equal(t, 1, store.bookingCount(ownerID, viewerB, key.Hour, key.Minute))

		// Следующая отмена продвигает следующего в порядке постановки
		result, err = svc.CancelBooking(ctx, viewerB, key)
		require.NoError(t, err)
		require.NotNil(t, result.PromotedViewerID)
		assert.Equal(t, viewerC, *result.PromotedViewerID)
		assert.Equal(t, 0, result.WaitlistCount)
	})

	t.Run("owner may cancel viewer booking", func(t *testing.T) {
		svc, _ := newFixture(t)
		openSlot(t, svc, key)

		_, err := svc.RequestBooking(ctx, viewerA, key)
		require.NoError(t, err)

		result, err := svc.CancelBooking(ctx, ownerID, key)
		require.NoError(t, err)
		assert.Equal(t, domain.SlotOpen, result.NewState)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		svc, _ := newFixture(t)
		openSlot(t, svc, key)

		_, err := svc.RequestBooking(ctx, viewerA, key)
		require.NoError(t, err)

		_, err = svc.CancelBooking(ctx, stranger, key)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("open slot has nothing to cancel", func(t *testing.T) {
		svc, _ := newFixture(t)
		openSlot(t, svc, key)

		_, err := svc.CancelBooking(ctx, ownerID, key)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestJoinWaitlist(t *testing.T) {
	ctx := context.Background()
	key := testKey()

	t.Run("only booked slots take a queue", func(t *testing.T) {
		svc, _ := newFixture(t)
		openSlot(t, svc, key)

		_, err := svc.JoinWaitlist(ctx, viewerA, key)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("joins booked slot", func(t *testing.T) {
		svc, _ := newFixture(t)
		openSlot(t, svc, key)

		_, err := svc.RequestBooking(ctx, viewerA, key)
		require.NoError(t, err)

		result, err := svc.JoinWaitlist(ctx, viewerB, key)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Position)
	})
}

func TestWithdrawFromWaitlist(t *testing.T) {
	ctx := context.Background()
	key := testKey()

	t.Run("middle withdrawal keeps queue contiguous", func(t *testing.T) {
		svc, store := newFixture(t)
		openSlot(t, svc, key)

		_, err := svc.RequestBooking(ctx, viewerA, key)
		require.NoError(t, err)
		_, err = svc.RequestBooking(ctx, viewerB, key)
		require.NoError(t, err)
		_, err = svc.RequestBooking(ctx, viewerC, key)
		require.NoError(t, err)

		require.NoError(t, svc.WithdrawFromWaitlist(ctx, viewerB, key))

		slot, err := store.GetSlotByKey(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []int64{viewerC}, store.queuePositions(slot.ID))

		// Оставшийся зритель продвигается после отмены
		result, err := svc.CancelBooking(ctx, viewerA, key)
		require.NoError(t, err)
		require.NotNil(t, result.PromotedViewerID)
		assert.Equal(t, viewerC, *result.PromotedViewerID)
	})

	t.Run("absent entry is a no-op", func(t *testing.T) {
		svc, _ := newFixture(t)
		openSlot(t, svc, key)

		assert.NoError(t, svc.WithdrawFromWaitlist(ctx, viewerA, key))
	})

	t.Run("unknown slot", func(t *testing.T) {
		svc, _ := newFixture(t)

		err := svc.WithdrawFromWaitlist(ctx, viewerA, key)
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})
}

func TestWithRetry(t *testing.T) {
	ctx := context.Background()
	key := testKey()

	t.Run("recovers after transient failures", func(t *testing.T) {
		store := newFakeStore()
		txm := &flakyTxManager{failures: 2}
		svc := NewService(store, store, store, txm, slotlock.New(), metrics.Nop{}, nopLogger{})

		result, err := svc.ToggleAvailability(ctx, ownerID, key)
		require.NoError(t, err)
		assert.Equal(t, domain.SlotOpen, result.NewState)
		assert.Equal(t, 3, txm.calls)
	})

	t.Run("gives up after bounded attempts", func(t *testing.T) {
		store := newFakeStore()
		txm := &flakyTxManager{failures: domain.StoreRetryAttempts + 1}
		svc := NewService(store, store, store, txm, slotlock.New(), metrics.Nop{}, nopLogger{})

		_, err := svc.ToggleAvailability(ctx, ownerID, key)
		assert.ErrorIs(t, err, ErrTransientStore)
		assert.Equal(t, domain.StoreRetryAttempts, txm.calls)
	})
}
