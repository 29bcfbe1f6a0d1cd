package domain

import "github.com/m04kA/VTC-PlanningService/pkg/types"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Дефолтное рабочее окно для синтезированных дней
// Используется, когда для даты нет сохраненной записи
const (
	DefaultWorkStart = types.TimeString("08:00")
	DefaultWorkEnd   = types.TimeString("20:00")
)

// AllStatuses список всех допустимых статусов доступности
// Используется для валидации входных данных
var AllStatuses = []AvailabilityStatus{
	StatusAvailable,
	StatusBusy,
	StatusOff,
	StatusMaintenance,
}
