package models

import (
	"time"

	"github.com/m04kA/VTC-PlanningService/internal/domain"
)

// Request модели

// GetCalendarRequest запрос на сборку календаря за период
// Если Start/End нулевые, период вычисляется из Week/Month и текущей даты
type GetCalendarRequest struct {
	DriverID int64
	Start    time.Time
	End      time.Time
}

// Response модели

// IntervalResponse интервал времени "HH:MM"-"HH:MM"
type IntervalResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// BreakResponse перерыв внутри рабочего окна
type BreakResponse struct {
	Interval IntervalResponse `json:"interval"`
	Reason   string           `json:"reason"`
}

// BookingResponse бронирование в расписании дня
type BookingResponse struct {
	Interval          IntervalResponse `json:"interval"`
	ExternalRef       *string          `json:"externalRef,omitempty"`
	Platform          string           `json:"platform"`
	EstimatedEarnings float64          `json:"estimatedEarnings"`
	DurationHours     float64          `json:"durationHours"`
}

// GoalsResponse плановые цели дня
type GoalsResponse struct {
	TargetRides    int      `json:"targetRides"`
	TargetEarnings float64  `json:"targetEarnings"`
	TargetHours    float64  `json:"targetHours"`
	PreferredZones []string `json:"preferredZones,omitempty"`
}

// ResultsResponse фактические результаты дня
type ResultsResponse struct {
	TotalRides    int     `json:"totalRides"`
	TotalEarnings float64 `json:"totalEarnings"`
	TotalHours    float64 `json:"totalHours"`
	AverageRating float64 `json:"averageRating"`
}

// PlatformSyncResponse состояние синхронизации с внешней платформой
type PlatformSyncResponse struct {
	IsOnline bool    `json:"isOnline"`
	LastSync *string `json:"lastSync,omitempty"` // ISO 8601
}

// ReminderResponse напоминание
type ReminderResponse struct {
	Time        string `json:"time"`
	Message     string `json:"message"`
	IsCompleted bool   `json:"isCompleted"`
}

// DayScheduleResponse расписание одного дня
// IsStored=false означает синтезированный дефолтный день (не сохранён в БД)
type DayScheduleResponse struct {
	DriverID           int64                           `json:"driverId"`
	Date               string                          `json:"date"` // "2026-09-01"
	AvailabilityStatus string                          `json:"availabilityStatus"`
	WorkWindow         *IntervalResponse               `json:"workWindow,omitempty"`
	Breaks             []BreakResponse                 `json:"breaks"`
	Bookings           []BookingResponse               `json:"bookings"`
	DailyGoals         GoalsResponse                   `json:"dailyGoals"`
	ActualResults      ResultsResponse                 `json:"actualResults"`
	PlatformSync       map[string]PlatformSyncResponse `json:"platformSync"`
	Reminders          []ReminderResponse              `json:"reminders"`

	// Производные показатели дня
	TotalAvailableHours float64 `json:"totalAvailableHours"`
	TotalBookedHours    float64 `json:"totalBookedHours"`
	AvailableHours      float64 `json:"availableHours"`

	IsStored bool `json:"isStored"`
}

// CalendarResponse календарь за период: по одному дню на каждую дату, без пропусков
type CalendarResponse struct {
	DriverID  int64                 `json:"driverId"`
	StartDate string                `json:"startDate"`
	EndDate   string                `json:"endDate"`
	Days      []DayScheduleResponse `json:"days"`
}

// SummaryResponse агрегированные показатели за период
type SummaryResponse struct {
	DriverID            int64          `json:"driverId"`
	StartDate           string         `json:"startDate"`
	EndDate             string         `json:"endDate"`
	DaysByStatus        map[string]int `json:"daysByStatus"`
	TotalAvailableHours float64        `json:"totalAvailableHours"`
	TotalBookedHours    float64        `json:"totalBookedHours"`
	TotalTargetRides    int            `json:"totalTargetRides"`
	TotalTargetEarnings float64        `json:"totalTargetEarnings"`
	TotalTargetHours    float64        `json:"totalTargetHours"`
	TotalActualRides    int            `json:"totalActualRides"`
	TotalActualEarnings float64        `json:"totalActualEarnings"`
	UtilizationRate     int            `json:"utilizationRate"`
}

// Методы конвертации

// FromDomainInterval конвертирует domain интервал в DTO
func FromDomainInterval(i domain.Interval) IntervalResponse {
	return IntervalResponse{Start: i.Start.String(), End: i.End.String()}
}

// FromDomainSchedule конвертирует domain модель дня в DTO
func FromDomainSchedule(s *domain.DaySchedule) *DayScheduleResponse {
	if s == nil {
		return nil
	}

	resp := &DayScheduleResponse{
		DriverID:           s.DriverID,
		Date:               s.Date.Format(domain.DateFormat),
		AvailabilityStatus: string(s.AvailabilityStatus),
		Breaks:             make([]BreakResponse, 0, len(s.Breaks)),
		Bookings:           make([]BookingResponse, 0, len(s.Bookings)),
		DailyGoals: GoalsResponse{
			TargetRides:    s.DailyGoals.TargetRides,
			TargetEarnings: s.DailyGoals.TargetEarnings,
			TargetHours:    s.DailyGoals.TargetHours,
			PreferredZones: s.DailyGoals.PreferredZones,
		},
		ActualResults: ResultsResponse{
			TotalRides:    s.ActualResults.TotalRides,
			TotalEarnings: s.ActualResults.TotalEarnings,
			TotalHours:    s.ActualResults.TotalHours,
			AverageRating: s.ActualResults.AverageRating,
		},
		PlatformSync:        make(map[string]PlatformSyncResponse, len(s.PlatformSync)),
		Reminders:           make([]ReminderResponse, 0, len(s.Reminders)),
		TotalAvailableHours: s.TotalAvailableHours(),
		TotalBookedHours:    s.TotalBookedHours(),
		AvailableHours:      s.AvailableHours(),
		IsStored:            s.IsStored(),
	}

	if s.WorkWindow != nil {
		window := FromDomainInterval(*s.WorkWindow)
		resp.WorkWindow = &window
	}

	for _, b := range s.Breaks {
		resp.Breaks = append(resp.Breaks, BreakResponse{
			Interval: FromDomainInterval(b.Interval),
			Reason:   b.Reason,
		})
	}

	for _, b := range s.Bookings {
		resp.Bookings = append(resp.Bookings, BookingResponse{
			Interval:          FromDomainInterval(b.Interval),
			ExternalRef:       b.ExternalRef,
			Platform:          b.Platform,
			EstimatedEarnings: b.EstimatedEarnings,
			DurationHours:     b.Interval.DurationHours(),
		})
	}

	for platform, state := range s.PlatformSync {
		dto := PlatformSyncResponse{IsOnline: state.IsOnline}
		if state.LastSync != nil {
			ts := state.LastSync.Format(time.RFC3339)
			dto.LastSync = &ts
		}
		resp.PlatformSync[platform] = dto
	}

	for _, r := range s.Reminders {
		resp.Reminders = append(resp.Reminders, ReminderResponse{
			Time:        r.Time.String(),
			Message:     r.Message,
			IsCompleted: r.IsCompleted,
		})
	}

	return resp
}

// FromDomainCalendar конвертирует собранный период в DTO
func FromDomainCalendar(driverID int64, start, end time.Time, schedules []*domain.DaySchedule) *CalendarResponse {
	resp := &CalendarResponse{
		DriverID:  driverID,
		StartDate: start.Format(domain.DateFormat),
		EndDate:   end.Format(domain.DateFormat),
		Days:      make([]DayScheduleResponse, 0, len(schedules)),
	}

	for _, s := range schedules {
		if day := FromDomainSchedule(s); day != nil {
			resp.Days = append(resp.Days, *day)
		}
	}

	return resp
}

// FromDomainSummary конвертирует domain сводку в DTO
func FromDomainSummary(driverID int64, start, end time.Time, summary domain.RangeSummary) *SummaryResponse {
	resp := &SummaryResponse{
		DriverID:            driverID,
		StartDate:           start.Format(domain.DateFormat),
		EndDate:             end.Format(domain.DateFormat),
		DaysByStatus:        make(map[string]int, len(summary.DaysByStatus)),
		TotalAvailableHours: summary.TotalAvailableHours,
		TotalBookedHours:    summary.TotalBookedHours,
		TotalTargetRides:    summary.TotalTargetRides,
		TotalTargetEarnings: summary.TotalTargetEarnings,
		TotalTargetHours:    summary.TotalTargetHours,
		TotalActualRides:    summary.TotalActualRides,
		TotalActualEarnings: summary.TotalActualEarnings,
		UtilizationRate:     summary.UtilizationRate,
	}

	for status, count := range summary.DaysByStatus {
		resp.DaysByStatus[string(status)] = count
	}

	return resp
}
