package schedules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/VTC-PlanningService/internal/domain"
	scheduleRepo "github.com/m04kA/VTC-PlanningService/internal/infra/storage/schedule"
	"github.com/m04kA/VTC-PlanningService/internal/integrations/ridesservice"
	"github.com/m04kA/VTC-PlanningService/internal/service/schedules/models"
	"github.com/m04kA/VTC-PlanningService/pkg/ptr"
)

var testDate = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

type repoStub struct {
	day       *domain.DaySchedule
	createErr error
	updateErr error

	created *domain.DaySchedule
	updated *domain.DaySchedule
}

func (r *repoStub) GetByDriverAndDate(ctx context.Context, driverID int64, date time.Time) (*domain.DaySchedule, error) {
	if r.day == nil {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return r.day, nil
}

func (r *repoStub) Create(ctx context.Context, s *domain.DaySchedule) (*domain.DaySchedule, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	s.ID = 1
	s.Version = 1
	r.created = s
	return s, nil
}

func (r *repoStub) Update(ctx context.Context, s *domain.DaySchedule) (*domain.DaySchedule, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	s.Version++
	r.updated = s
	return s, nil
}

type ridesStub struct {
	rides []ridesservice.Ride
	err   error
}

func (r *ridesStub) GetRidesForDayWithGracefulDegradation(ctx context.Context, driverID int64, date time.Time) ([]ridesservice.Ride, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.rides, nil
}

type txStub struct{}

func (txStub) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(t *testing.T, repo *repoStub, rides *ridesStub) *Service {
	t.Helper()
	window, err := domain.NewInterval("08:00", "20:00")
	require.NoError(t, err)
	if rides == nil {
		rides = &ridesStub{}
	}
	return NewService(repo, rides, txStub{}, window, nopLogger{})
}

func storedDayWithBookings(t *testing.T) *domain.DaySchedule {
	t.Helper()
	day := domain.NewDefaultDaySchedule(42, testDate)
	day.ID = 7
	day.Version = 2
	_, err := day.AddBooking(domain.Interval{Start: "09:00", End: "10:00"}, "uber", 25, ptr.Ptr("ride-1"))
	require.NoError(t, err)
	_, err = day.AddBooking(domain.Interval{Start: "11:00", End: "12:30"}, "bolt", 40, nil)
	require.NoError(t, err)
	return day
}

func TestRemoveBooking(t *testing.T) {
	repo := &repoStub{day: storedDayWithBookings(t)}
	svc := newTestService(t, repo, nil)

	resp, err := svc.RemoveBooking(context.Background(), &models.RemoveBookingRequest{
		DriverID: 42,
		Date:     testDate,
		Index:    0,
	})
	require.NoError(t, err)

	require.NotNil(t, repo.updated)
	require.Len(t, repo.updated.Bookings, 1)
	assert.Equal(t, "bolt", repo.updated.Bookings[0].Platform)
	assert.InDelta(t, 1.5, resp.TotalBookedHours, 1e-9)
}

func TestRemoveBooking_NoSchedule(t *testing.T) {
	svc := newTestService(t, &repoStub{}, nil)

	// Удаление не создает запись лениво
	_, err := svc.RemoveBooking(context.Background(), &models.RemoveBookingRequest{
		DriverID: 42,
		Date:     testDate,
		Index:    0,
	})
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestRemoveBooking_IndexOutOfRange(t *testing.T) {
	repo := &repoStub{day: storedDayWithBookings(t)}
	svc := newTestService(t, repo, nil)

	_, err := svc.RemoveBooking(context.Background(), &models.RemoveBookingRequest{
		DriverID: 42,
		Date:     testDate,
		Index:    5,
	})
	assert.ErrorIs(t, err, ErrBookingIndexOutOfRange)
	assert.Nil(t, repo.updated)
}

func TestSetGoals_CreatesDayLazily(t *testing.T) {
	repo := &repoStub{}
	svc := newTestService(t, repo, nil)

	_, err := svc.SetGoals(context.Background(), &models.SetGoalsRequest{
		DriverID:       42,
		Date:           testDate,
		TargetRides:    10,
		TargetEarnings: 200,
		TargetHours:    8,
		PreferredZones: []string{"center"},
	})
	require.NoError(t, err)

	require.NotNil(t, repo.created)
	assert.Equal(t, 10, repo.created.DailyGoals.TargetRides)
	assert.Equal(t, []string{"center"}, repo.created.DailyGoals.PreferredZones)
}

func TestSetGoals_NegativeTargets(t *testing.T) {
	svc := newTestService(t, &repoStub{}, nil)

	_, err := svc.SetGoals(context.Background(), &models.SetGoalsRequest{
		DriverID:    42,
		Date:        testDate,
		TargetRides: -1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTogglePlatformSync(t *testing.T) {
	repo := &repoStub{day: storedDayWithBookings(t)}
	svc := newTestService(t, repo, nil)

	resp, err := svc.TogglePlatformSync(context.Background(), &models.TogglePlatformSyncRequest{
		DriverID: 42,
		Date:     testDate,
		Platform: "uber",
		IsOnline: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "uber", resp.Platform)
	assert.True(t, resp.IsOnline)
	assert.NotEmpty(t, resp.LastSync)

	require.NotNil(t, repo.updated)
	state := repo.updated.PlatformSync["uber"]
	assert.True(t, state.IsOnline)
	require.NotNil(t, state.LastSync)
}

func TestTogglePlatformSync_EmptyPlatform(t *testing.T) {
	svc := newTestService(t, &repoStub{}, nil)

	_, err := svc.TogglePlatformSync(context.Background(), &models.TogglePlatformSyncRequest{
		DriverID: 42,
		Date:     testDate,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddReminder(t *testing.T) {
	repo := &repoStub{}
	svc := newTestService(t, repo, nil)

	_, err := svc.AddReminder(context.Background(), &models.AddReminderRequest{
		DriverID: 42,
		Date:     testDate,
		Time:     "14:30",
		Message:  "заправиться",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.created)
	require.Len(t, repo.created.Reminders, 1)
	assert.Equal(t, "заправиться", repo.created.Reminders[0].Message)
}

func TestAddReminder_Invalid(t *testing.T) {
	svc := newTestService(t, &repoStub{}, nil)

	_, err := svc.AddReminder(context.Background(), &models.AddReminderRequest{
		DriverID: 42,
		Date:     testDate,
		Time:     "25:00",
		Message:  "x",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddReminder(context.Background(), &models.AddReminderRequest{
		DriverID: 42,
		Date:     testDate,
		Time:     "14:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecomputeResults_FromCompletions(t *testing.T) {
	repo := &repoStub{day: storedDayWithBookings(t)}
	svc := newTestService(t, repo, nil)

	resp, err := svc.RecomputeResults(context.Background(), &models.RecomputeResultsRequest{
		DriverID: 42,
		Date:     testDate,
		Completions: []models.CompletionInput{
			{Index: 0, ActualEarnings: ptr.Ptr(30.0), Rating: ptr.Ptr(5.0)},
			{Index: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.TotalRides)
	// 30 фактических + 40 ожидаемых
	assert.InDelta(t, 70.0, resp.TotalEarnings, 1e-9)
	assert.InDelta(t, 2.5, resp.TotalHours, 1e-9)
	assert.InDelta(t, 5.0, resp.AverageRating, 1e-9)
}

func TestRecomputeResults_WithRidesService(t *testing.T) {
	repo := &repoStub{day: storedDayWithBookings(t)}
	rides := &ridesStub{rides: []ridesservice.Ride{
		{Ref: "ride-1", Status: ridesservice.RideStatusCompleted, Earnings: ptr.Ptr(28.0), Rating: ptr.Ptr(4.0)},
		{Ref: "ride-unknown", Status: ridesservice.RideStatusCompleted},
		{Ref: "ride-2", Status: ridesservice.RideStatusCancelled},
	}}
	svc := newTestService(t, repo, rides)

	resp, err := svc.RecomputeResults(context.Background(), &models.RecomputeResultsRequest{
		DriverID:        42,
		Date:            testDate,
		UseRidesService: true,
	})
	require.NoError(t, err)

	// Завершенной считается только поездка, сопоставленная по externalRef
	assert.Equal(t, 1, resp.TotalRides)
	assert.InDelta(t, 28.0, resp.TotalEarnings, 1e-9)
	assert.InDelta(t, 4.0, resp.AverageRating, 1e-9)
}

func TestRecomputeResults_RidesServiceDegraded(t *testing.T) {
	repo := &repoStub{day: storedDayWithBookings(t)}
	rides := &ridesStub{err: ridesservice.ErrServiceDegraded}
	svc := newTestService(t, repo, rides)

	// При деградации пересчет идет только по присланным статусам
	resp, err := svc.RecomputeResults(context.Background(), &models.RecomputeResultsRequest{
		DriverID:        42,
		Date:            testDate,
		UseRidesService: true,
		Completions: []models.CompletionInput{
			{Index: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TotalRides)
}

func TestRecomputeResults_InvalidIndex(t *testing.T) {
	repo := &repoStub{day: storedDayWithBookings(t)}
	svc := newTestService(t, repo, nil)

	_, err := svc.RecomputeResults(context.Background(), &models.RecomputeResultsRequest{
		DriverID: 42,
		Date:     testDate,
		Completions: []models.CompletionInput{
			{Index: 9},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RecomputeResults(context.Background(), &models.RecomputeResultsRequest{
		DriverID: 42,
		Date:     testDate,
		Completions: []models.CompletionInput{
			{Index: 0},
			{Index: 0},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecomputeResults_NoSchedule(t *testing.T) {
	svc := newTestService(t, &repoStub{}, nil)

	_, err := svc.RecomputeResults(context.Background(), &models.RecomputeResultsRequest{
		DriverID: 42,
		Date:     testDate,
	})
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestMutations_ConcurrentUpdate(t *testing.T) {
	repo := &repoStub{day: storedDayWithBookings(t), updateErr: scheduleRepo.ErrVersionConflict}
	svc := newTestService(t, repo, nil)

	_, err := svc.RemoveBooking(context.Background(), &models.RemoveBookingRequest{
		DriverID: 42,
		Date:     testDate,
		Index:    0,
	})
	assert.ErrorIs(t, err, ErrConcurrentUpdate)
}
