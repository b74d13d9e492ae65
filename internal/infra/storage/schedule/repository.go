package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
)

const (
	tableName           = "resource_schedules"
	uniqueViolationCode = "23505"
)

var columns = []string{
	"id",
	"resource_id",
	"weekday",
	"start_time",
	"end_time",
	"is_day_off",
	"created_at",
	"updated_at",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repository репозиторий рабочих окон мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает расписание мастера
func (r *Repository) Create(ctx context.Context, schedule *domain.ResourceSchedule) (*domain.ResourceSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("resource_id", "weekday", "start_time", "end_time", "is_day_off").
		Values(
			schedule.ResourceID,
			weekdayValue(schedule.Weekday),
			schedule.StartTime,
			schedule.EndTime,
			schedule.IsDayOff,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&schedule.ID, &createdAt, &updatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
		return nil, fmt.Errorf("%w: Create - resource %d", ErrDuplicateSchedule, schedule.ResourceID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return schedule, nil
}

// GetByResourceAndWeekday получает расписание мастера на конкретный день недели
// weekday == nil - расписание на все дни
func (r *Repository) GetByResourceAndWeekday(ctx context.Context, resourceID int64, weekday *time.Weekday) (*domain.ResourceSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"weekday": weekdayValue(weekday)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByResourceAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	schedule, err := scanSchedule(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByResourceAndWeekday - scan schedule: %v", ErrScanRow, err)
	}

	return schedule, nil
}

// GetWithHierarchy получает расписание с учетом приоритетов:
// 1. Расписание на конкретный день недели
// 2. Расписание на все дни
//
// Если не найдено ни на одном уровне, возвращает ErrScheduleNotFound
func (r *Repository) GetWithHierarchy(ctx context.Context, resourceID int64, weekday time.Weekday) (*domain.ResourceSchedule, error) {
	schedule, err := r.GetByResourceAndWeekday(ctx, resourceID, &weekday)
	if err == nil {
		return schedule, nil
	}
	if !errors.Is(err, ErrScheduleNotFound) {
		return nil, fmt.Errorf("%w: GetWithHierarchy - level 1 (weekday): %v", ErrExecQuery, err)
	}

	schedule, err = r.GetByResourceAndWeekday(ctx, resourceID, nil)
	if err == nil {
		return schedule, nil
	}
	if !errors.Is(err, ErrScheduleNotFound) {
		return nil, fmt.Errorf("%w: GetWithHierarchy - level 2 (all days): %v", ErrExecQuery, err)
	}

	return nil, ErrScheduleNotFound
}

// GetAllByResource получает все расписания мастера, общее первым
func (r *Repository) GetAllByResource(ctx context.Context, resourceID int64) ([]*domain.ResourceSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"resource_id": resourceID}).
		OrderBy("weekday ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByResource - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByResource - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.ResourceSchedule, 0)
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByResource - scan row: %v", ErrScanRow, err)
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByResource - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}

// Update обновляет окно и флаг выходного
func (r *Repository) Update(ctx context.Context, id int64, schedule *domain.ResourceSchedule) (*domain.ResourceSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("start_time", schedule.StartTime).
		Set("end_time", schedule.EndTime).
		Set("is_day_off", schedule.IsDayOff).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	schedule.ID = id
	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return schedule, nil
}

// DeleteByResourceAndWeekday удаляет расписание мастера на день (nil - общее)
func (r *Repository) DeleteByResourceAndWeekday(ctx context.Context, resourceID int64, weekday *time.Weekday) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"weekday": weekdayValue(weekday)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByResourceAndWeekday - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByResourceAndWeekday - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByResourceAndWeekday - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

// weekdayValue nil для squirrel.Eq превращается в IS NULL
func weekdayValue(weekday *time.Weekday) interface{} {
	if weekday == nil {
		return nil
	}
	return int64(*weekday)
}

func scanSchedule(row rowScanner) (*domain.ResourceSchedule, error) {
	var schedule domain.ResourceSchedule
	var weekday sql.NullInt16
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&schedule.ID,
		&schedule.ResourceID,
		&weekday,
		&schedule.StartTime,
		&schedule.EndTime,
		&schedule.IsDayOff,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if weekday.Valid {
		wd := time.Weekday(weekday.Int16)
		schedule.Weekday = &wd
	}
	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return &schedule, nil
}
