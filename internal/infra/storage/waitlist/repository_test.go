package waitlist

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
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

func TestRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("renumbers the tail after removal", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM waitlist_entries")).
			WithArgs(int64(5), int64(202)).
			WillReturnRows(sqlmock.NewRows([]string{"position"}).AddRow(1))

		// Все, кто стоял позади позиции 1, сдвигаются на единицу вперёд
		mock.ExpectExec(regexp.QuoteMeta("UPDATE waitlist_entries SET position = position - 1 WHERE timeslot_id = $1 AND position > $2")).
			WithArgs(int64(5), 1).
			WillReturnResult(sqlmock.NewResult(0, 2))

		removed, err := repo.Remove(ctx, 5, 202)
		require.NoError(t, err)
		assert.True(t, removed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent viewer skips the renumbering", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM waitlist_entries")).
			WithArgs(int64(5), int64(999)).
			WillReturnError(sql.ErrNoRows)

		removed, err := repo.Remove(ctx, 5, 999)
		require.NoError(t, err)
		assert.False(t, removed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAppend(t *testing.T) {
	ctx := context.Background()

	t.Run("takes the next position from the slot queue", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("COALESCE(MAX(position) + 1, 0)")).
			WithArgs(int64(5), int64(202), int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "position", "requested_at"}).
				AddRow(int64(31), 2, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)))

		entry, err := repo.Append(ctx, 5, 202)
		require.NoError(t, err)
		assert.Equal(t, 2, entry.Position)
		assert.Equal(t, int64(202), entry.ViewerUserID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate viewer", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO waitlist_entries")).
			WithArgs(int64(5), int64(202), int64(5)).
			WillReturnError(&pq.Error{Code: pgUniqueViolation})

		_, err := repo.Append(ctx, 5, 202)
		assert.ErrorIs(t, err, ErrDuplicateEntry)
	})
}

func TestPeekHead(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the lowest position", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY position ASC LIMIT 1")).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "timeslot_id", "viewer_user_id", "position", "requested_at"}).
				AddRow(int64(30), int64(5), int64(201), 0, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)))

		entry, err := repo.PeekHead(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(201), entry.ViewerUserID)
		assert.Equal(t, 0, entry.Position)
	})

	t.Run("empty queue", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, timeslot_id")).
			WithArgs(int64(5)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.PeekHead(ctx, 5)
		assert.ErrorIs(t, err, ErrEmptyWaitlist)
	})
}
