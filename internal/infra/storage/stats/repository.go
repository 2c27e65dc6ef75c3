package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// Repository репозиторий счётчиков статистики бронирований
// Счётчик только растёт: отмена бронирования его не уменьшает
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория статистики
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// IncrementBooking увеличивает счётчик (owner, booker, hour, minute) на единицу,
// создавая строку при первом бронировании
func (r *Repository) IncrementBooking(ctx context.Context, ownerID, bookerID int64, hour, minute int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointment_stats").
		Columns("owner_user_id", "booker_user_id", "hour", "minute", "booking_count").
		Values(ownerID, bookerID, hour, minute, 1).
		Suffix("ON CONFLICT (owner_user_id, booker_user_id, hour, minute) DO UPDATE SET booking_count = appointment_stats.booking_count + 1").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: IncrementBooking - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: IncrementBooking - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetMostFrequentSlot возвращает время с наибольшей суммой бронирований у владельца
// Равенство сумм разрешается в пользу более раннего (hour, minute)
func (r *Repository) GetMostFrequentSlot(ctx context.Context, ownerID int64) (*domain.FrequentSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("hour", "minute", "SUM(booking_count) AS total").
		From("appointment_stats").
		Where(squirrel.Eq{"owner_user_id": ownerID}).
		GroupBy("hour", "minute").
		OrderBy("total DESC", "hour ASC", "minute ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetMostFrequentSlot - build select query: %v", ErrBuildQuery, err)
	}

	var slot domain.FrequentSlot
	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.Hour, &slot.Minute, &slot.Total)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoStats
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetMostFrequentSlot - scan row: %v", ErrScanRow, err)
	}

	return &slot, nil
}

// GetTopBookers возвращает рейтинг бронирующих у владельца: по убыванию суммы,
// при равенстве - по возрастанию ID бронирующего
func (r *Repository) GetTopBookers(ctx context.Context, ownerID int64, limit int) ([]*domain.BookerTotal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("booker_user_id", "SUM(booking_count) AS total").
		From("appointment_stats").
		Where(squirrel.Eq{"owner_user_id": ownerID}).
		GroupBy("booker_user_id").
		OrderBy("total DESC", "booker_user_id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTopBookers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTopBookers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookers := make([]*domain.BookerTotal, 0, limit)
	for rows.Next() {
		var b domain.BookerTotal
		if err := rows.Scan(&b.BookerUserID, &b.Total); err != nil {
			return nil, fmt.Errorf("%w: GetTopBookers - scan row: %v", ErrScanRow, err)
		}
		bookers = append(bookers, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTopBookers - rows error: %v", ErrScanRow, err)
	}

	return bookers, nil
}
