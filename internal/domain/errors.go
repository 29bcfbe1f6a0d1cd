package domain

import "errors"

var (
	// ErrInvalidInterval возвращается при некорректном временном интервале:
	// start >= end, битый формат времени, перерыв вне рабочего окна или пересекающиеся перерывы
	ErrInvalidInterval = errors.New("domain: invalid time interval")

	// ErrSlotConflict возвращается, когда новое бронирование пересекается с существующим
	ErrSlotConflict = errors.New("domain: booking interval conflicts with an existing booking")

	// ErrIndexOutOfRange возвращается при удалении бронирования по несуществующей позиции
	ErrIndexOutOfRange = errors.New("domain: booking index out of range")

	// ErrNoAvailableWindow помечает день без рабочего окна
	// Read-пути не возвращают эту ошибку наружу, а деградируют к нулевым значениям
	ErrNoAvailableWindow = errors.New("domain: day has no work window")
)
