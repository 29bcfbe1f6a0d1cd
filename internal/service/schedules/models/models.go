package models

import (
	"time"

	"github.com/m04kA/VTC-PlanningService/pkg/types"
)

// Request модели

// RemoveBookingRequest запрос на удаление бронирования по позиции
type RemoveBookingRequest struct {
	DriverID int64
	Date     time.Time
	Index    int
}

// SetGoalsRequest запрос на установку плановых целей дня
type SetGoalsRequest struct {
	DriverID       int64
	Date           time.Time
	TargetRides    int
	TargetEarnings float64
	TargetHours    float64
	PreferredZones []string
}

// TogglePlatformSyncRequest запрос на переключение флага синхронизации платформы
type TogglePlatformSyncRequest struct {
	DriverID int64
	Date     time.Time
	Platform string
	IsOnline bool
}

// AddReminderRequest запрос на добавление напоминания
type AddReminderRequest struct {
	DriverID int64
	Date     time.Time
	Time     types.TimeString
	Message  string
}

// CompletionInput статус завершения бронирования, присланный вызывающей стороной
// Index - позиция бронирования в расписании дня
type CompletionInput struct {
	Index          int
	ActualEarnings *float64
	Rating         *float64
}

// RecomputeResultsRequest запрос на пересчет фактических результатов дня
// Если Completions пуст и UseRidesService=true, завершенные поездки
// запрашиваются из RidesService по externalRef бронирований
type RecomputeResultsRequest struct {
	DriverID        int64
	Date            time.Time
	Completions     []CompletionInput
	UseRidesService bool
}

// Response модели

// MutationResponse общий ответ мутаций с производными показателями дня
type MutationResponse struct {
	DriverID         int64   `json:"driverId"`
	Date             string  `json:"date"`
	TotalBookedHours float64 `json:"totalBookedHours"`
	AvailableHours   float64 `json:"availableHours"`
}

// ResultsResponse ответ пересчета фактических результатов
type ResultsResponse struct {
	DriverID      int64   `json:"driverId"`
	Date          string  `json:"date"`
	TotalRides    int     `json:"totalRides"`
	TotalEarnings float64 `json:"totalEarnings"`
	TotalHours    float64 `json:"totalHours"`
	AverageRating float64 `json:"averageRating"`
}

// PlatformSyncResponse ответ переключения синхронизации
type PlatformSyncResponse struct {
	DriverID int64  `json:"driverId"`
	Date     string `json:"date"`
	Platform string `json:"platform"`
	IsOnline bool   `json:"isOnline"`
	LastSync string `json:"lastSync"` // ISO 8601
}
