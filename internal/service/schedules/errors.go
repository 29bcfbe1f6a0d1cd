package schedules

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда для даты нет сохраненного расписания
	// Мутации, требующие существующей записи (удаление бронирования), не создают день лениво
	ErrScheduleNotFound = errors.New("day schedule not found")

	// ErrBookingIndexOutOfRange возвращается при удалении бронирования по несуществующей позиции
	ErrBookingIndexOutOfRange = errors.New("booking index out of range")

	// ErrConcurrentUpdate возвращается, когда расписание было изменено конкурентно
	ErrConcurrentUpdate = errors.New("schedule was modified concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
