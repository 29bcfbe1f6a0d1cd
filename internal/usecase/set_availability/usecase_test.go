package set_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/VTC-PlanningService/internal/domain"
	scheduleRepo "github.com/m04kA/VTC-PlanningService/internal/infra/storage/schedule"
	"github.com/m04kA/VTC-PlanningService/pkg/ptr"
	"github.com/m04kA/VTC-PlanningService/pkg/types"
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

type txStub struct{}

func (txStub) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func windowRequest(start, end string) *Request {
	return &Request{
		DriverID:        42,
		Date:            testDate,
		Status:          "available",
		WorkWindowStart: ptr.Ptr(types.TimeString(start)),
		WorkWindowEnd:   ptr.Ptr(types.TimeString(end)),
	}
}

func TestExecute_SetWindowWithBreaks(t *testing.T) {
	repo := &repoStub{}
	uc := NewUseCase(repo, txStub{}, nopLogger{})

	req := windowRequest("08:00", "20:00")
	req.Breaks = []BreakInput{
		{Start: "12:00", End: "13:00", Reason: "lunch"},
	}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, repo.created)
	assert.Equal(t, domain.StatusAvailable, resp.Status)
	assert.InDelta(t, 11.0, resp.TotalAvailableHours, 1e-9)
	assert.InDelta(t, 11.0, resp.AvailableHours, 1e-9)
}

func TestExecute_ClearWindow(t *testing.T) {
	day := domain.NewDefaultDaySchedule(42, testDate)
	day.ID = 7

	repo := &repoStub{day: day}
	uc := NewUseCase(repo, txStub{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		DriverID: 42,
		Date:     testDate,
		Status:   "off",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.updated)
	assert.Equal(t, domain.StatusOff, resp.Status)
	assert.Zero(t, resp.TotalAvailableHours)
}

func TestExecute_InvalidStatus(t *testing.T) {
	uc := NewUseCase(&repoStub{}, txStub{}, nopLogger{})

	req := windowRequest("08:00", "20:00")
	req.Status = "vacation"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestExecute_HalfSpecifiedWindow(t *testing.T) {
	uc := NewUseCase(&repoStub{}, txStub{}, nopLogger{})

	req := windowRequest("08:00", "20:00")
	req.WorkWindowEnd = nil

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_InvalidWindow(t *testing.T) {
	uc := NewUseCase(&repoStub{}, txStub{}, nopLogger{})

	_, err := uc.Execute(context.Background(), windowRequest("20:00", "08:00"))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestExecute_BreakOutsideWindow(t *testing.T) {
	uc := NewUseCase(&repoStub{}, txStub{}, nopLogger{})

	req := windowRequest("09:00", "18:00")
	req.Breaks = []BreakInput{
		{Start: "08:00", End: "09:30"},
	}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestExecute_OverlappingBreaks(t *testing.T) {
	uc := NewUseCase(&repoStub{}, txStub{}, nopLogger{})

	req := windowRequest("08:00", "20:00")
	req.Breaks = []BreakInput{
		{Start: "12:00", End: "13:00"},
		{Start: "12:30", End: "13:30"},
	}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestExecute_KeepsBookingsOnShrink(t *testing.T) {
	day := domain.NewDefaultDaySchedule(42, testDate)
	day.ID = 7
	_, err := day.AddBooking(domain.Interval{Start: "09:00", End: "12:00"}, "uber", 60, nil)
	require.NoError(t, err)

	repo := &repoStub{day: day}
	uc := NewUseCase(repo, txStub{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), windowRequest("10:00", "11:00"))
	require.NoError(t, err)

	// Бронирования не отменяются, остаток может быть отрицательным
	assert.InDelta(t, 3.0, resp.TotalBookedHours, 1e-9)
	assert.InDelta(t, -2.0, resp.AvailableHours, 1e-9)
}

func TestExecute_VersionConflict(t *testing.T) {
	day := domain.NewDefaultDaySchedule(42, testDate)
	day.ID = 7

	repo := &repoStub{day: day, updateErr: scheduleRepo.ErrVersionConflict}
	uc := NewUseCase(repo, txStub{}, nopLogger{})

	_, err := uc.Execute(context.Background(), windowRequest("08:00", "20:00"))
	assert.ErrorIs(t, err, ErrConcurrentUpdate)
}
