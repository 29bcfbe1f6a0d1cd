package planning

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/VTC-PlanningService/internal/domain"
	scheduleRepo "github.com/m04kA/VTC-PlanningService/internal/infra/storage/schedule"
	"github.com/m04kA/VTC-PlanningService/internal/service/planning/models"
)

var testDate = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

type repoStub struct {
	day      *domain.DaySchedule
	days     []*domain.DaySchedule
	getErr   error
	rangeErr error
}

func (r *repoStub) GetByDriverAndDate(ctx context.Context, driverID int64, date time.Time) (*domain.DaySchedule, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	if r.day == nil {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return r.day, nil
}

func (r *repoStub) GetByDriverAndDateRange(ctx context.Context, driverID int64, start, end time.Time) ([]*domain.DaySchedule, error) {
	if r.rangeErr != nil {
		return nil, r.rangeErr
	}
	return r.days, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testWindow(t *testing.T) domain.Interval {
	t.Helper()
	window, err := domain.NewInterval("08:00", "20:00")
	require.NoError(t, err)
	return window
}

func TestGetDay_Stored(t *testing.T) {
	day := domain.NewDefaultDaySchedule(42, testDate)
	day.ID = 7
	day.AvailabilityStatus = domain.StatusBusy

	svc := NewService(&repoStub{day: day}, testWindow(t), nopLogger{})

	resp, err := svc.GetDay(context.Background(), 42, testDate)
	require.NoError(t, err)

	assert.True(t, resp.IsStored)
	assert.Equal(t, "busy", resp.AvailabilityStatus)
	assert.Equal(t, "2026-09-07", resp.Date)
}

func TestGetDay_SynthesizesDefault(t *testing.T) {
	svc := NewService(&repoStub{}, testWindow(t), nopLogger{})

	resp, err := svc.GetDay(context.Background(), 42, testDate)
	require.NoError(t, err)

	assert.False(t, resp.IsStored)
	assert.Equal(t, "available", resp.AvailabilityStatus)
	require.NotNil(t, resp.WorkWindow)
	assert.Equal(t, "08:00", resp.WorkWindow.Start)
	assert.Equal(t, "20:00", resp.WorkWindow.End)
	assert.InDelta(t, 12.0, resp.TotalAvailableHours, 1e-9)
	assert.Empty(t, resp.Bookings)
}

func TestGetDay_InvalidDriver(t *testing.T) {
	svc := NewService(&repoStub{}, testWindow(t), nopLogger{})

	_, err := svc.GetDay(context.Background(), 0, testDate)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetCalendar_GapFree(t *testing.T) {
	stored := domain.NewDefaultDaySchedule(42, testDate.AddDate(0, 0, 2))
	stored.ID = 7
	stored.AvailabilityStatus = domain.StatusBusy

	svc := NewService(&repoStub{days: []*domain.DaySchedule{stored}}, testWindow(t), nopLogger{})

	resp, err := svc.GetCalendar(context.Background(), &models.GetCalendarRequest{
		DriverID: 42,
		Start:    testDate,
		End:      testDate.AddDate(0, 0, 6),
	})
	require.NoError(t, err)

	require.Len(t, resp.Days, 7)
	assert.Equal(t, "2026-09-07", resp.StartDate)
	assert.Equal(t, "2026-09-13", resp.EndDate)

	// Единственный сохраненный день на своем месте, остальные дефолтные
	assert.True(t, resp.Days[2].IsStored)
	assert.Equal(t, "busy", resp.Days[2].AvailabilityStatus)
	assert.False(t, resp.Days[0].IsStored)
	assert.False(t, resp.Days[6].IsStored)
}

func TestGetCalendar_DefaultsToCurrentWeek(t *testing.T) {
	svc := NewService(&repoStub{}, testWindow(t), nopLogger{})
	svc.timeProvider = fixedTime{now: time.Date(2026, 9, 2, 15, 0, 0, 0, time.UTC)} // среда

	resp, err := svc.GetCalendar(context.Background(), &models.GetCalendarRequest{DriverID: 42})
	require.NoError(t, err)

	assert.Equal(t, "2026-08-31", resp.StartDate)
	assert.Equal(t, "2026-09-06", resp.EndDate)
	assert.Len(t, resp.Days, 7)
}

func TestGetCalendar_InvalidRanges(t *testing.T) {
	svc := NewService(&repoStub{}, testWindow(t), nopLogger{})

	// Односторонний период
	_, err := svc.GetCalendar(context.Background(), &models.GetCalendarRequest{
		DriverID: 42,
		Start:    testDate,
	})
	assert.ErrorIs(t, err, ErrInvalidRange)

	// Конец раньше начала
	_, err = svc.GetCalendar(context.Background(), &models.GetCalendarRequest{
		DriverID: 42,
		Start:    testDate,
		End:      testDate.AddDate(0, 0, -1),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestGetSummary(t *testing.T) {
	stored := domain.NewDefaultDaySchedule(42, testDate)
	stored.ID = 7
	_, err := stored.AddBooking(domain.Interval{Start: "09:00", End: "12:00"}, "uber", 60, nil)
	require.NoError(t, err)
	stored.SetDailyGoals(domain.DailyGoals{TargetRides: 5, TargetEarnings: 150})

	svc := NewService(&repoStub{days: []*domain.DaySchedule{stored}}, testWindow(t), nopLogger{})

	resp, err := svc.GetSummary(context.Background(), &models.GetCalendarRequest{
		DriverID: 42,
		Start:    testDate,
		End:      testDate.AddDate(0, 0, 1),
	})
	require.NoError(t, err)

	// Два дня по 12 часов, 3 часа занято: 3/24 = 12.5% -> 13
	assert.Equal(t, 2, resp.DaysByStatus["available"])
	assert.InDelta(t, 24.0, resp.TotalAvailableHours, 1e-9)
	assert.InDelta(t, 3.0, resp.TotalBookedHours, 1e-9)
	assert.Equal(t, 5, resp.TotalTargetRides)
	assert.Equal(t, 13, resp.UtilizationRate)
}
