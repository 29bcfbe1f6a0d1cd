package ridesservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("ridesservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("ridesservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что RidesService недоступен и пересчет результатов
	// должен опираться только на данные, присланные вызывающей стороной
	ErrServiceDegraded = errors.New("ridesservice unavailable: graceful degradation applied")
)
