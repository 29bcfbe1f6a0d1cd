package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeRange(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	// День 1: 12 часов окна, 3 часа бронирований, цели и результаты
	day1 := NewDefaultDaySchedule(42, date)
	day1.AvailabilityStatus = StatusBusy
	_, err := day1.AddBooking(mustInterval(t, "09:00", "12:00"), "uber", 60, nil)
	require.NoError(t, err)
	day1.SetDailyGoals(DailyGoals{TargetRides: 10, TargetEarnings: 200, TargetHours: 8})
	day1.ActualResults = ActualResults{TotalRides: 4, TotalEarnings: 90}

	// День 2: выходной без окна
	day2 := NewDefaultDaySchedule(42, date.AddDate(0, 0, 1))
	require.NoError(t, day2.SetAvailability(StatusOff, nil, nil))

	// День 3: дефолтный, без бронирований
	day3 := NewDefaultDaySchedule(42, date.AddDate(0, 0, 2))

	summary := SummarizeRange([]*DaySchedule{day1, day2, day3})

	assert.Equal(t, 1, summary.DaysByStatus[StatusBusy])
	assert.Equal(t, 1, summary.DaysByStatus[StatusOff])
	assert.Equal(t, 1, summary.DaysByStatus[StatusAvailable])
	assert.InDelta(t, 24.0, summary.TotalAvailableHours, 1e-9)
	assert.InDelta(t, 3.0, summary.TotalBookedHours, 1e-9)
	assert.Equal(t, 10, summary.TotalTargetRides)
	assert.InDelta(t, 200.0, summary.TotalTargetEarnings, 1e-9)
	assert.InDelta(t, 8.0, summary.TotalTargetHours, 1e-9)
	assert.Equal(t, 4, summary.TotalActualRides)
	assert.InDelta(t, 90.0, summary.TotalActualEarnings, 1e-9)

	// 3 / 24 = 12.5% -> округляется до 13
	assert.Equal(t, 13, summary.UtilizationRate)
}

func TestSummarizeRange_NoAvailableHours(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	day := NewDefaultDaySchedule(42, date)
	require.NoError(t, day.SetAvailability(StatusOff, nil, nil))

	summary := SummarizeRange([]*DaySchedule{day})

	// Без доступных часов утилизация всегда ноль
	assert.Zero(t, summary.UtilizationRate)
}

func TestSummarizeRange_Empty(t *testing.T) {
	summary := SummarizeRange(nil)

	assert.Empty(t, summary.DaysByStatus)
	assert.Zero(t, summary.TotalAvailableHours)
	assert.Zero(t, summary.UtilizationRate)

	// nil элементы пропускаются
	summary = SummarizeRange([]*DaySchedule{nil, nil})
	assert.Empty(t, summary.DaysByStatus)
}

func TestSummarizeRange_FullUtilization(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	window := mustInterval(t, "09:00", "12:00")

	day := NewDefaultDaySchedule(42, date)
	require.NoError(t, day.SetAvailability(StatusAvailable, &window, nil))
	_, err := day.AddBooking(mustInterval(t, "09:00", "12:00"), "uber", 60, nil)
	require.NoError(t, err)

	summary := SummarizeRange([]*DaySchedule{day})
	assert.Equal(t, 100, summary.UtilizationRate)
}
