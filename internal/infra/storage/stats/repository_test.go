package stats

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func TestGetMostFrequentSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("orders by total desc then earliest time", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		// 09:00 x5 против 10:00 x7: запрос обязан сортировать по сумме,
		// при равенстве - по более раннему (hour, minute)
		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY total DESC, hour ASC, minute ASC")).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"hour", "minute", "total"}).AddRow(10, 0, 7))

		slot, err := repo.GetMostFrequentSlot(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 10, slot.Hour)
		assert.Equal(t, 0, slot.Minute)
		assert.Equal(t, 7, slot.Total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("aggregates over appointment_stats with limit 1", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT hour, minute, SUM(booking_count) AS total FROM appointment_stats WHERE owner_user_id = $1 GROUP BY hour, minute ORDER BY total DESC, hour ASC, minute ASC LIMIT 1",
		)).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"hour", "minute", "total"}).AddRow(9, 0, 5))

		_, err := repo.GetMostFrequentSlot(ctx, 1)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no stats", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("SELECT hour, minute").
			WithArgs(int64(42)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetMostFrequentSlot(ctx, 42)
		assert.ErrorIs(t, err, ErrNoStats)
	})
}

func TestGetTopBookers(t *testing.T) {
	ctx := context.Background()

	t.Run("orders by total desc then booker id asc", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY total DESC, booker_user_id ASC")).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"booker_user_id", "total"}).
				AddRow(int64(201), 4).
				AddRow(int64(205), 4).
				AddRow(int64(203), 2))

		bookers, err := repo.GetTopBookers(ctx, 1, 3)
		require.NoError(t, err)
		require.Len(t, bookers, 3)
		assert.Equal(t, int64(201), bookers[0].BookerUserID)
		assert.Equal(t, int64(205), bookers[1].BookerUserID)
		assert.Equal(t, int64(203), bookers[2].BookerUserID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("limits the ranking", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("LIMIT 3")).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"booker_user_id", "total"}))

		bookers, err := repo.GetTopBookers(ctx, 1, 3)
		require.NoError(t, err)
		assert.Empty(t, bookers)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIncrementBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("upserts the counter", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec(regexp.QuoteMeta(
			"ON CONFLICT (owner_user_id, booker_user_id, hour, minute) DO UPDATE SET booking_count = appointment_stats.booking_count + 1",
		)).
			WithArgs(int64(1), int64(201), 10, 0, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.IncrementBooking(ctx, 1, 201, 10, 0)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
