package set_availability

import "errors"

var (
	// ErrInvalidStatus возвращается при неизвестном статусе доступности
	ErrInvalidStatus = errors.New("invalid availability status")

	// ErrInvalidInterval возвращается при некорректном рабочем окне или перерывах
	ErrInvalidInterval = errors.New("invalid work window or breaks")

	// ErrConcurrentUpdate возвращается, когда расписание было изменено конкурентно
	ErrConcurrentUpdate = errors.New("schedule was modified concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
