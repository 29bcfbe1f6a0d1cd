package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/VTC-PlanningService/internal/domain"
	"github.com/m04kA/VTC-PlanningService/pkg/dbmetrics"
	"github.com/m04kA/VTC-PlanningService/pkg/psqlbuilder"
	"github.com/m04kA/VTC-PlanningService/pkg/types"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникального индекса
const uniqueViolation = "23505"

var scheduleColumns = []string{
	"id",
	"driver_id",
	"schedule_date",
	"availability_status",
	"work_start",
	"work_end",
	"breaks",
	"bookings",
	"daily_goals",
	"actual_results",
	"platform_sync",
	"reminders",
	"version",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с расписаниями дней
// Одна строка таблицы day_schedules = один DaySchedule, уникальность по (driver_id, schedule_date)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись расписания дня
// Версия новой записи всегда 1
// При нарушении уникальности (driver_id, schedule_date) возвращает ErrDuplicateSchedule
func (r *Repository) Create(ctx context.Context, s *domain.DaySchedule) (*domain.DaySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	row, err := toRow(s)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert("day_schedules").
		Columns(
			"driver_id",
			"schedule_date",
			"availability_status",
			"work_start",
			"work_end",
			"breaks",
			"bookings",
			"daily_goals",
			"actual_results",
			"platform_sync",
			"reminders",
			"version",
		).
		Values(
			s.DriverID,
			domain.DateOnly(s.Date),
			string(s.AvailabilityStatus),
			row.workStart,
			row.workEnd,
			row.breaks,
			row.bookings,
			row.dailyGoals,
			row.actualResults,
			row.platformSync,
			row.reminders,
			1,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateSchedule
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.Version = 1
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByDriverAndDate получает расписание водителя на конкретную дату
// Внутри транзакции добавляет FOR UPDATE для блокировки строки
// (атомарность read-modify-write по ключу (driver_id, date) на путях записи)
func (r *Repository) GetByDriverAndDate(ctx context.Context, driverID int64, date time.Time) (*domain.DaySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(scheduleColumns...).
		From("day_schedules").
		Where(squirrel.Eq{
			"driver_id":     driverID,
			"schedule_date": domain.DateOnly(date),
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDriverAndDate - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSchedule(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("GetByDriverAndDate: %w", err)
	}

	return s, nil
}

// GetByDriverAndDateRange получает сохраненные расписания за период [start, end]
// Результат упорядочен по дате, пропуски не заполняются - этим занимается
// сборка календаря на уровне домена
func (r *Repository) GetByDriverAndDateRange(ctx context.Context, driverID int64, start, end time.Time) ([]*domain.DaySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("day_schedules").
		Where(squirrel.Eq{"driver_id": driverID}).
		Where(squirrel.GtOrEq{"schedule_date": domain.DateOnly(start)}).
		Where(squirrel.LtOrEq{"schedule_date": domain.DateOnly(end)}).
		OrderBy("schedule_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDriverAndDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDriverAndDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.DaySchedule, 0)
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("GetByDriverAndDateRange: %w", err)
		}
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDriverAndDateRange - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}

// Update сохраняет измененное расписание с optimistic locking
// Обновляет строку только если version в БД совпадает с версией прочитанной записи;
// иначе возвращает ErrVersionConflict и вызывающая сторона повторяет операцию
func (r *Repository) Update(ctx context.Context, s *domain.DaySchedule) (*domain.DaySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	row, err := toRow(s)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Update("day_schedules").
		Set("availability_status", string(s.AvailabilityStatus)).
		Set("work_start", row.workStart).
		Set("work_end", row.workEnd).
		Set("breaks", row.breaks).
		Set("bookings", row.bookings).
		Set("daily_goals", row.dailyGoals).
		Set("actual_results", row.actualResults).
		Set("platform_sync", row.platformSync).
		Set("reminders", row.reminders).
		Set("version", s.Version+1).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":      s.ID,
			"version": s.Version,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return nil, ErrVersionConflict
	}

	s.Version++
	return s, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// jsonRow сериализованные JSONB поля для записи
type jsonRow struct {
	workStart     sql.NullString
	workEnd       sql.NullString
	breaks        []byte
	bookings      []byte
	dailyGoals    []byte
	actualResults []byte
	platformSync  []byte
	reminders     []byte
}

// toRow сериализует вложенные коллекции DaySchedule в JSONB
func toRow(s *domain.DaySchedule) (*jsonRow, error) {
	row := &jsonRow{}

	if s.WorkWindow != nil {
		row.workStart = sql.NullString{String: s.WorkWindow.Start.String(), Valid: true}
		row.workEnd = sql.NullString{String: s.WorkWindow.End.String(), Valid: true}
	}

	fields := []struct {
		name string
		src  interface{}
		dst  *[]byte
	}{
		{"breaks", s.Breaks, &row.breaks},
		{"bookings", s.Bookings, &row.bookings},
		{"daily_goals", s.DailyGoals, &row.dailyGoals},
		{"actual_results", s.ActualResults, &row.actualResults},
		{"platform_sync", s.PlatformSync, &row.platformSync},
		{"reminders", s.Reminders, &row.reminders},
	}

	for _, f := range fields {
		data, err := json.Marshal(f.src)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMarshal, f.name, err)
		}
		*f.dst = data
	}

	return row, nil
}

// scanSchedule сканирует строку таблицы в domain.DaySchedule
func scanSchedule(scanner rowScanner) (*domain.DaySchedule, error) {
	var s domain.DaySchedule
	var status string
	var workStart, workEnd sql.NullString
	var breaks, bookings, dailyGoals, actualResults, platformSync, reminders []byte
	var createdAt, updatedAt sql.NullTime

	err := scanner.Scan(
		&s.ID,
		&s.DriverID,
		&s.Date,
		&status,
		&workStart,
		&workEnd,
		&breaks,
		&bookings,
		&dailyGoals,
		&actualResults,
		&platformSync,
		&reminders,
		&s.Version,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrScanRow, err)
	}

	s.AvailabilityStatus = domain.AvailabilityStatus(status)
	s.Date = domain.DateOnly(s.Date)
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	if workStart.Valid && workEnd.Valid {
		s.WorkWindow = &domain.Interval{
			Start: types.TimeString(workStart.String),
			End:   types.TimeString(workEnd.String),
		}
	}

	fields := []struct {
		name string
		data []byte
		dst  interface{}
	}{
		{"breaks", breaks, &s.Breaks},
		{"bookings", bookings, &s.Bookings},
		{"daily_goals", dailyGoals, &s.DailyGoals},
		{"actual_results", actualResults, &s.ActualResults},
		{"platform_sync", platformSync, &s.PlatformSync},
		{"reminders", reminders, &s.Reminders},
	}

	for _, f := range fields {
		if len(f.data) == 0 {
			continue
		}
		if err := json.Unmarshal(f.data, f.dst); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnmarshal, f.name, err)
		}
	}

	if s.Breaks == nil {
		s.Breaks = []domain.Break{}
	}
	if s.Bookings == nil {
		s.Bookings = []domain.Booking{}
	}
	if s.PlatformSync == nil {
		s.PlatformSync = map[string]domain.PlatformSyncState{}
	}
	if s.Reminders == nil {
		s.Reminders = []domain.Reminder{}
	}

	return &s, nil
}
