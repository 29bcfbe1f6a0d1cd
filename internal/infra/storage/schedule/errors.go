package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда запись расписания не найдена
	ErrScheduleNotFound = errors.New("schedule.repository: day schedule not found")

	// ErrDuplicateSchedule возвращается при попытке создать вторую запись для (driver_id, date)
	ErrDuplicateSchedule = errors.New("schedule.repository: schedule already exists for driver and date")

	// ErrVersionConflict возвращается, когда запись была изменена конкурентно
	// Вызывающая сторона должна перечитать запись и повторить мутацию
	ErrVersionConflict = errors.New("schedule.repository: version conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")

	// ErrMarshal возвращается при ошибке сериализации JSONB полей
	ErrMarshal = errors.New("schedule.repository: failed to marshal jsonb field")

	// ErrUnmarshal возвращается при ошибке десериализации JSONB полей
	ErrUnmarshal = errors.New("schedule.repository: failed to unmarshal jsonb field")
)
