package add_booking

import "errors"

var (
	// ErrInvalidInterval возвращается при некорректном интервале бронирования
	ErrInvalidInterval = errors.New("invalid booking interval")

	// ErrSlotConflict возвращается, когда интервал пересекается с существующим бронированием
	ErrSlotConflict = errors.New("booking interval conflicts with an existing booking")

	// ErrConcurrentUpdate возвращается, когда расписание было изменено конкурентно
	// Вызывающая сторона может повторить запрос
	ErrConcurrentUpdate = errors.New("schedule was modified concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
