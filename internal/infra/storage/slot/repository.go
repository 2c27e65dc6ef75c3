package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// slotColumns колонки слота вместе с производным счётчиком очереди ожидания
var slotColumns = []string{
	"ts.id",
	"ts.schedule_id",
	"ts.hour",
	"ts.minute",
	"ts.available",
	"ts.booked_by_user_id",
	"(SELECT COUNT(*) FROM waitlist_entries wq WHERE wq.timeslot_id = ts.id) AS waitlist_count",
	"ts.created_at",
	"ts.updated_at",
}

// Repository репозиторий расписаний и слотов
// Единственный владелец записей schedules и timeslots
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// EnsureDay идемпотентно материализует день расписания владельца
// При первом обращении создает запись дня и полную сетку слотов
// (все закрыты: available=false, без бронирований)
func (r *Repository) EnsureDay(ctx context.Context, ownerID int64, date time.Time) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	day, err := r.getDay(ctx, executor, ownerID, date)
	if err == nil {
		return day, nil
	}
	if !errors.Is(err, ErrScheduleNotFound) {
		return nil, err
	}

	// Дня ещё нет - создаем вместе с сеткой
	query, args, err := psqlbuilder.Insert("schedules").
		Columns("owner_id", "schedule_date").
		Values(ownerID, domain.DateOnly(date)).
		Suffix("ON CONFLICT (owner_id, schedule_date) DO UPDATE SET owner_id = EXCLUDED.owner_id").
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: EnsureDay - build insert query: %v", ErrBuildQuery, err)
	}

	day = &domain.Schedule{OwnerID: ownerID, Date: domain.DateOnly(date)}
	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&day.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: EnsureDay - execute insert: %v", ErrExecQuery, err)
	}
	day.CreatedAt = createdAt.Time

	if err := r.seedGrid(ctx, executor, day.ID); err != nil {
		return nil, err
	}

	return day, nil
}

// seedGrid вставляет полную дневную сетку слотов для дня расписания
// Конфликт по (schedule_id, hour, minute) игнорируется - повторный вызов безопасен
func (r *Repository) seedGrid(ctx context.Context, executor DBExecutor, scheduleID int64) error {
	builder := psqlbuilder.Insert("timeslots").
		Columns("schedule_id", "hour", "minute", "available")

	for _, gt := range domain.GridTimes() {
		builder = builder.Values(scheduleID, gt.Hour, gt.Minute, false)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (schedule_id, hour, minute) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: seedGrid - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: seedGrid - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) getDay(ctx context.Context, executor DBExecutor, ownerID int64, date time.Time) (*domain.Schedule, error) {
	query, args, err := psqlbuilder.Select("id", "owner_id", "schedule_date", "created_at").
		From("schedules").
		Where(squirrel.Eq{"owner_id": ownerID, "schedule_date": domain.DateOnly(date)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getDay - build select query: %v", ErrBuildQuery, err)
	}

	var day domain.Schedule
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&day.ID, &day.OwnerID, &day.Date, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getDay - scan schedule: %v", ErrScanRow, err)
	}
	day.CreatedAt = createdAt.Time

	return &day, nil
}

// GetDays возвращает дни расписания владельца в диапазоне дат (включительно), по возрастанию
func (r *Repository) GetDays(ctx context.Context, ownerID int64, from, to time.Time) ([]*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "owner_id", "schedule_date", "created_at").
		From("schedules").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.GtOrEq{"schedule_date": domain.DateOnly(from)}).
		Where(squirrel.LtOrEq{"schedule_date": domain.DateOnly(to)}).
		OrderBy("schedule_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]*domain.Schedule, 0)
	for rows.Next() {
		var day domain.Schedule
		var createdAt sql.NullTime
		if err := rows.Scan(&day.ID, &day.OwnerID, &day.Date, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: GetDays - scan schedule: %v", ErrScanRow, err)
		}
		day.CreatedAt = createdAt.Time
		days = append(days, &day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetDays - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

// GetLastDay возвращает самый поздний день расписания владельца
func (r *Repository) GetLastDay(ctx context.Context, ownerID int64) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "owner_id", "schedule_date", "created_at").
		From("schedules").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("schedule_date DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLastDay - build select query: %v", ErrBuildQuery, err)
	}

	var day domain.Schedule
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&day.ID, &day.OwnerID, &day.Date, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLastDay - scan schedule: %v", ErrScanRow, err)
	}
	day.CreatedAt = createdAt.Time

	return &day, nil
}

// DeleteDaysBefore удаляет прошедшие дни расписания владельца
// Слоты и записи очередей уходят каскадом; возвращает число удалённых дней
func (r *Repository) DeleteDaysBefore(ctx context.Context, ownerID int64, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedules").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Lt{"schedule_date": domain.DateOnly(before)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteDaysBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteDaysBefore - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteDaysBefore - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// GetOwnerIDs возвращает всех владельцев, у которых есть хотя бы один день расписания
// Используется ночным обслуживанием окна расписаний
func (r *Repository) GetOwnerIDs(ctx context.Context) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT owner_id").
		From("schedules").
		OrderBy("owner_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOwnerIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOwnerIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ownerIDs := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetOwnerIDs - scan owner_id: %v", ErrScanRow, err)
		}
		ownerIDs = append(ownerIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOwnerIDs - rows error: %v", ErrScanRow, err)
	}

	return ownerIDs, nil
}

// GetSlotsByScheduleIDs возвращает слоты дней расписания, сгруппированные по дню
// Каждый слот несёт производный waitlist_count
func (r *Repository) GetSlotsByScheduleIDs(ctx context.Context, scheduleIDs []int64) (map[int64][]*domain.Timeslot, error) {
	if len(scheduleIDs) == 0 {
		return map[int64][]*domain.Timeslot{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("timeslots ts").
		Where(squirrel.Eq{"ts.schedule_id": scheduleIDs}).
		OrderBy("ts.schedule_id ASC", "ts.hour ASC", "ts.minute ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotsByScheduleIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotsByScheduleIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	grouped := make(map[int64][]*domain.Timeslot, len(scheduleIDs))
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		grouped[slot.ScheduleID] = append(grouped[slot.ScheduleID], slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSlotsByScheduleIDs - rows error: %v", ErrScanRow, err)
	}

	return grouped, nil
}

// GetSlotByKey возвращает слот по ключу (владелец, дата, час, минута)
// Внутри транзакции добавляет FOR UPDATE OF ts - блокировка строки слота
// на время вычисления перехода
func (r *Repository) GetSlotByKey(ctx context.Context, key domain.SlotKey) (*domain.Timeslot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("timeslots ts").
		Join("schedules s ON s.id = ts.schedule_id").
		Where(squirrel.Eq{
			"s.owner_id":      key.OwnerID,
			"s.schedule_date": domain.DateOnly(key.Date),
			"ts.hour":         key.Hour,
			"ts.minute":       key.Minute,
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF ts")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotByKey - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotByKey - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("%w: GetSlotByKey - rows error: %v", ErrScanRow, err)
		}
		return nil, ErrSlotNotFound
	}

	return scanSlot(rows)
}

// SetAvailability переключает флаг available слота
func (r *Repository) SetAvailability(ctx context.Context, slotID int64, available bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("timeslots").
		Set("available", available).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetAvailability - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetAvailability - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetAvailability - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// SetOccupant устанавливает или снимает бронирующего слота
// Слот в обоих случаях остаётся available=true: занятие идёт из состояния OPEN,
// снятие возвращает слот в OPEN
func (r *Repository) SetOccupant(ctx context.Context, slotID int64, occupant *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("timeslots").
		Set("booked_by_user_id", occupant).
		Set("available", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetOccupant - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetOccupant - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetOccupant - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// GetViewerBookings возвращает бронирования, которые зритель держит в чужих
// расписаниях: сначала новые даты, внутри дня по времени
func (r *Repository) GetViewerBookings(ctx context.Context, viewerID int64) ([]*domain.ViewerBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("s.owner_id", "s.schedule_date", "ts.hour", "ts.minute").
		From("timeslots ts").
		Join("schedules s ON s.id = ts.schedule_id").
		Where(squirrel.Eq{"ts.booked_by_user_id": viewerID}).
		OrderBy("s.schedule_date DESC", "ts.hour ASC", "ts.minute ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetViewerBookings - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetViewerBookings - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.ViewerBooking, 0)
	for rows.Next() {
		var b domain.ViewerBooking
		if err := rows.Scan(&b.OwnerID, &b.Date, &b.Hour, &b.Minute); err != nil {
			return nil, fmt.Errorf("%w: GetViewerBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetViewerBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// scanSlot сканирует одну строку слота (с waitlist_count)
func scanSlot(rows *sql.Rows) (*domain.Timeslot, error) {
	var slot domain.Timeslot
	var bookedBy sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&slot.ID,
		&slot.ScheduleID,
		&slot.Hour,
		&slot.Minute,
		&slot.Available,
		&bookedBy,
		&slot.WaitlistCount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: scanSlot - scan row: %v", ErrScanRow, err)
	}

	if bookedBy.Valid {
		slot.BookedByUserID = &bookedBy.Int64
	}
	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}
