package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/VTC-PlanningService/pkg/ptr"
	"github.com/m04kA/VTC-PlanningService/pkg/types"
)

var testDate = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func newTestDay(t *testing.T) *DaySchedule {
	t.Helper()
	return NewDefaultDaySchedule(42, testDate)
}

func TestNewDefaultDaySchedule(t *testing.T) {
	day := newTestDay(t)

	assert.Equal(t, int64(42), day.DriverID)
	assert.Equal(t, testDate, day.Date)
	assert.Equal(t, StatusAvailable, day.AvailabilityStatus)
	require.NotNil(t, day.WorkWindow)
	assert.Equal(t, DefaultWorkStart, day.WorkWindow.Start)
	assert.Equal(t, DefaultWorkEnd, day.WorkWindow.End)
	assert.Empty(t, day.Bookings)
	assert.False(t, day.IsStored())
	assert.InDelta(t, 12.0, day.TotalAvailableHours(), 1e-9)
}

func TestDaySchedule_SetAvailability(t *testing.T) {
	t.Run("window with break", func(t *testing.T) {
		day := newTestDay(t)
		window := mustInterval(t, "08:00", "20:00")
		lunch := Break{Interval: mustInterval(t, "12:00", "13:00"), Reason: "lunch"}

		err := day.SetAvailability(StatusAvailable, &window, []Break{lunch})
		require.NoError(t, err)

		// 12 часов окна минус 1 час перерыва
		assert.InDelta(t, 11.0, day.TotalAvailableHours(), 1e-9)
	})

	t.Run("no window means zero available hours", func(t *testing.T) {
		day := newTestDay(t)

		err := day.SetAvailability(StatusOff, nil, nil)
		require.NoError(t, err)

		assert.Nil(t, day.WorkWindow)
		assert.Zero(t, day.TotalAvailableHours())
	})

	t.Run("breaks require a window", func(t *testing.T) {
		day := newTestDay(t)
		lunch := Break{Interval: mustInterval(t, "12:00", "13:00")}

		err := day.SetAvailability(StatusAvailable, nil, []Break{lunch})
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("break outside window rejected", func(t *testing.T) {
		day := newTestDay(t)
		window := mustInterval(t, "09:00", "18:00")
		early := Break{Interval: mustInterval(t, "08:00", "09:30")}

		err := day.SetAvailability(StatusAvailable, &window, []Break{early})
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("overlapping breaks rejected", func(t *testing.T) {
		day := newTestDay(t)
		window := mustInterval(t, "08:00", "20:00")
		breaks := []Break{
			{Interval: mustInterval(t, "12:00", "13:00")},
			{Interval: mustInterval(t, "12:30", "13:30")},
		}

		err := day.SetAvailability(StatusAvailable, &window, breaks)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("breaks sorted by start", func(t *testing.T) {
		day := newTestDay(t)
		window := mustInterval(t, "08:00", "20:00")
		breaks := []Break{
			{Interval: mustInterval(t, "16:00", "16:30")},
			{Interval: mustInterval(t, "12:00", "13:00")},
		}

		err := day.SetAvailability(StatusAvailable, &window, breaks)
		require.NoError(t, err)
		require.Len(t, day.Breaks, 2)
		assert.Equal(t, types.TimeString("12:00"), day.Breaks[0].Interval.Start)
		assert.Equal(t, types.TimeString("16:00"), day.Breaks[1].Interval.Start)
	})

	t.Run("shrinking window keeps existing bookings", func(t *testing.T) {
		day := newTestDay(t)
		_, err := day.AddBooking(mustInterval(t, "09:00", "12:00"), "uber", 50, nil)
		require.NoError(t, err)

		narrow := mustInterval(t, "10:00", "11:00")
		err = day.SetAvailability(StatusAvailable, &narrow, nil)
		require.NoError(t, err)

		// Бронирование не отменяется, остаток уходит в минус
		require.Len(t, day.Bookings, 1)
		assert.InDelta(t, -2.0, day.AvailableHours(), 1e-9)
	})
}

func TestDaySchedule_AddBooking(t *testing.T) {
	day := newTestDay(t)
	window := mustInterval(t, "08:00", "20:00")
	lunch := Break{Interval: mustInterval(t, "12:00", "13:00"), Reason: "lunch"}
	require.NoError(t, day.SetAvailability(StatusAvailable, &window, []Break{lunch}))

	first, err := day.AddBooking(mustInterval(t, "09:00", "10:00"), "uber", 25, nil)
	require.NoError(t, err)
	assert.Equal(t, "uber", first.Platform)

	// Пересечение с первым бронированием
	_, err = day.AddBooking(mustInterval(t, "09:30", "10:30"), "bolt", 30, nil)
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Len(t, day.Bookings, 1)

	// Совпадающая граница допустима
	_, err = day.AddBooking(mustInterval(t, "10:00", "11:00"), "bolt", 30, ptr.Ptr("ride-77"))
	require.NoError(t, err)

	assert.InDelta(t, 2.0, day.TotalBookedHours(), 1e-9)
	assert.InDelta(t, 9.0, day.AvailableHours(), 1e-9)
}

func TestDaySchedule_AddBooking_StatusDoesNotGate(t *testing.T) {
	day := newTestDay(t)
	window := mustInterval(t, "08:00", "20:00")
	require.NoError(t, day.SetAvailability(StatusOff, &window, nil))

	// Статус является информационным и не блокирует вставку
	_, err := day.AddBooking(mustInterval(t, "09:00", "10:00"), "uber", 25, nil)
	assert.NoError(t, err)
}

func TestDaySchedule_RemoveBooking(t *testing.T) {
	day := newTestDay(t)
	_, err := day.AddBooking(mustInterval(t, "09:00", "10:00"), "uber", 25, nil)
	require.NoError(t, err)
	_, err = day.AddBooking(mustInterval(t, "11:00", "12:00"), "bolt", 30, nil)
	require.NoError(t, err)

	require.NoError(t, day.RemoveBooking(0))
	require.Len(t, day.Bookings, 1)
	assert.Equal(t, "bolt", day.Bookings[0].Platform)

	assert.ErrorIs(t, day.RemoveBooking(1), ErrIndexOutOfRange)
	assert.ErrorIs(t, day.RemoveBooking(-1), ErrIndexOutOfRange)
}

func TestDaySchedule_RecomputeActualResults(t *testing.T) {
	day := newTestDay(t)
	_, err := day.AddBooking(mustInterval(t, "09:00", "10:00"), "uber", 25, nil)
	require.NoError(t, err)
	_, err = day.AddBooking(mustInterval(t, "11:00", "12:30"), "bolt", 40, nil)
	require.NoError(t, err)

	completed := []CompletedBooking{
		{Booking: day.Bookings[0], ActualEarnings: ptr.Ptr(30.0), Rating: ptr.Ptr(5.0)},
		{Booking: day.Bookings[1], Rating: ptr.Ptr(4.0)}, // фактический заработок не пришел
	}

	day.RecomputeActualResults(completed)

	assert.Equal(t, 2, day.ActualResults.TotalRides)
	// 30 фактических + 40 ожидаемых
	assert.InDelta(t, 70.0, day.ActualResults.TotalEarnings, 1e-9)
	assert.InDelta(t, 2.5, day.ActualResults.TotalHours, 1e-9)
	assert.InDelta(t, 4.5, day.ActualResults.AverageRating, 1e-9)

	// Пересчет идемпотентен и полностью перезаписывает кэш
	day.RecomputeActualResults(nil)
	assert.Zero(t, day.ActualResults.TotalRides)
	assert.Zero(t, day.ActualResults.TotalEarnings)
	assert.Zero(t, day.ActualResults.AverageRating)
}

func TestDaySchedule_SetPlatformSync(t *testing.T) {
	day := newTestDay(t)
	now := time.Date(2026, 9, 7, 15, 4, 0, 0, time.UTC)

	day.SetPlatformSync("uber", true, now)

	state, ok := day.PlatformSync["uber"]
	require.True(t, ok)
	assert.True(t, state.IsOnline)
	require.NotNil(t, state.LastSync)
	assert.Equal(t, now, *state.LastSync)

	later := now.Add(time.Hour)
	day.SetPlatformSync("uber", false, later)
	assert.False(t, day.PlatformSync["uber"].IsOnline)
	assert.Equal(t, later, *day.PlatformSync["uber"].LastSync)
}

func TestDaySchedule_AddReminder(t *testing.T) {
	day := newTestDay(t)

	day.AddReminder(Reminder{Time: "14:30", Message: "заправиться"})
	day.AddReminder(Reminder{Time: "18:00", Message: "сдать смену"})

	require.Len(t, day.Reminders, 2)
	assert.Equal(t, "заправиться", day.Reminders[0].Message)
	assert.False(t, day.Reminders[0].IsCompleted)
}

func TestAvailabilityStatus_IsValid(t *testing.T) {
	for _, status := range AllStatuses {
		assert.True(t, status.IsValid(), status)
	}
	assert.False(t, AvailabilityStatus("vacation").IsValid())
	assert.False(t, AvailabilityStatus("").IsValid())
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2026, 9, 7, 15, 30, 45, 123, time.UTC)
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), DateOnly(ts))
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 9, 7, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(morning, evening))
	assert.False(t, SameDay(evening, nextDay))
}
