package add_booking

import (
	"time"

	"github.com/m04kA/VTC-PlanningService/pkg/types"
)

// Request модель запроса на добавление бронирования
type Request struct {
	DriverID          int64            // ID водителя
	Date              time.Time        // Дата (без времени)
	Start             types.TimeString // Начало интервала "HH:MM"
	End               types.TimeString // Конец интервала "HH:MM"
	Platform          string           // Внешняя платформа-источник заказа
	EstimatedEarnings float64          // Ожидаемый заработок, >= 0
	ExternalRef       *string          // Непрозрачная ссылка на внешнюю поездку (опционально)
}

// Response модель ответа с созданным бронированием и производными показателями дня
type Response struct {
	DriverID          int64
	Date              time.Time
	BookingIndex      int // Позиция бронирования в расписании дня
	Start             types.TimeString
	End               types.TimeString
	Platform          string
	EstimatedEarnings float64
	ExternalRef       *string

	TotalBookedHours float64 // Суммарные забронированные часы дня после вставки
	AvailableHours   float64 // Остаток доступных часов (может быть отрицательным)
}
