package waitlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL для нарушения уникальности
const pgUniqueViolation = "23505"

// Repository репозиторий очередей ожидания
// Единственный владелец записей waitlist_entries; на слот ссылается только по ID
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория очередей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListBySlot возвращает очередь слота в порядке позиций (FIFO)
func (r *Repository) ListBySlot(ctx context.Context, timeslotID int64) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "timeslot_id", "viewer_user_id", "position", "requested_at").
		From("waitlist_entries").
		Where(squirrel.Eq{"timeslot_id": timeslotID}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySlot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.WaitlistEntry, 0)
	for rows.Next() {
		var entry domain.WaitlistEntry
		if err := rows.Scan(&entry.ID, &entry.TimeslotID, &entry.ViewerUserID, &entry.Position, &entry.RequestedAt); err != nil {
			return nil, fmt.Errorf("%w: ListBySlot - scan entry: %v", ErrScanRow, err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySlot - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// Append ставит зрителя в хвост очереди слота
// Позиция - строго возрастающий порядок прибытия: MAX(position)+1, либо 0 для пустой очереди
func (r *Repository) Append(ctx context.Context, timeslotID, viewerID int64) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("waitlist_entries").
		Columns("timeslot_id", "viewer_user_id", "position").
		Select(
			psqlbuilder.Select(
				"?", "?",
				"COALESCE(MAX(position) + 1, 0)",
			).
				From("waitlist_entries").
				Where(squirrel.Eq{"timeslot_id": timeslotID}),
		).
		Suffix("RETURNING id, position, requested_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	// Подставляем значения вставки в плейсхолдеры подзапроса
	insertArgs := append([]interface{}{timeslotID, viewerID}, args...)

	entry := &domain.WaitlistEntry{TimeslotID: timeslotID, ViewerUserID: viewerID}
	err = executor.QueryRowContext(ctx, query, insertArgs...).Scan(&entry.ID, &entry.Position, &entry.RequestedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicateEntry
		}
		return nil, fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	return entry, nil
}

// Remove удаляет зрителя из очереди слота и перенумеровывает хвост,
// сохраняя позиции непрерывными от нуля
// Возвращает false, если зрителя в очереди не было (не ошибка)
func (r *Repository) Remove(ctx context.Context, timeslotID, viewerID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Удаляем с возвратом позиции удалённой записи
	query, args, err := psqlbuilder.Delete("waitlist_entries").
		Where(squirrel.Eq{"timeslot_id": timeslotID, "viewer_user_id": viewerID}).
		Suffix("RETURNING position").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Remove - build delete query: %v", ErrBuildQuery, err)
	}

	var removedPosition int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&removedPosition)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: Remove - execute delete: %v", ErrExecQuery, err)
	}

	// Сдвигаем всех, кто стоял позади удалённой записи
	query, args, err = psqlbuilder.Update("waitlist_entries").
		Set("position", squirrel.Expr("position - 1")).
		Where(squirrel.Eq{"timeslot_id": timeslotID}).
		Where(squirrel.Gt{"position": removedPosition}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Remove - build renumber query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return false, fmt.Errorf("%w: Remove - execute renumber: %v", ErrExecQuery, err)
	}

	return true, nil
}

// PeekHead возвращает голову очереди слота (позиция 0)
func (r *Repository) PeekHead(ctx context.Context, timeslotID int64) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "timeslot_id", "viewer_user_id", "position", "requested_at").
		From("waitlist_entries").
		Where(squirrel.Eq{"timeslot_id": timeslotID}).
		OrderBy("position ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: PeekHead - build select query: %v", ErrBuildQuery, err)
	}

	var entry domain.WaitlistEntry
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&entry.ID, &entry.TimeslotID, &entry.ViewerUserID, &entry.Position, &entry.RequestedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmptyWaitlist
	}
	if err != nil {
		return nil, fmt.Errorf("%w: PeekHead - scan entry: %v", ErrScanRow, err)
	}

	return &entry, nil
}

// Exists проверяет, стоит ли зритель в очереди слота
func (r *Repository) Exists(ctx context.Context, timeslotID, viewerID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("waitlist_entries").
		Where(squirrel.Eq{"timeslot_id": timeslotID, "viewer_user_id": viewerID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: Exists - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}

// Size возвращает длину очереди слота
func (r *Repository) Size(ctx context.Context, timeslotID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("waitlist_entries").
		Where(squirrel.Eq{"timeslot_id": timeslotID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Size - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: Size - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}
