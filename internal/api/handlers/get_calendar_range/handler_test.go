package get_calendar_range

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/VTC-PlanningService/internal/api/middleware"
	"github.com/m04kA/VTC-PlanningService/internal/service/planning"
	planningModels "github.com/m04kA/VTC-PlanningService/internal/service/planning/models"
)

type serviceStub struct {
	resp *planningModels.CalendarResponse
	err  error

	gotReq *planningModels.GetCalendarRequest
}

func (s *serviceStub) GetCalendar(ctx context.Context, req *planningModels.GetCalendarRequest) (*planningModels.CalendarResponse, error) {
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestRouter(svc *serviceStub) *mux.Router {
	h := NewHandler(svc, nopLogger{})
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/drivers/{driverId}/calendar", h.Handle).Methods(http.MethodGet)
	return r
}

func doRequest(t *testing.T, router *mux.Router, driverHeader string, query string) *httptest.ResponseRecorder {
	t.Helper()

	target := "/api/v1/drivers/42/calendar"
	if query != "" {
		target += "?" + query
	}

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if driverHeader != "" {
		req.Header.Set("X-Driver-ID", driverHeader)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func stubCalendar() *planningModels.CalendarResponse {
	return &planningModels.CalendarResponse{
		DriverID:  42,
		StartDate: "2026-09-07",
		EndDate:   "2026-09-13",
		Days:      make([]planningModels.DayScheduleResponse, 7),
	}
}

func TestHandle_ExplicitRange(t *testing.T) {
	svc := &serviceStub{resp: stubCalendar()}
	router := newTestRouter(svc)

	rec := doRequest(t, router, "42", "startDate=2026-09-07&endDate=2026-09-13")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotReq)
	assert.Equal(t, int64(42), svc.gotReq.DriverID)
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), svc.gotReq.Start)
	assert.Equal(t, time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC), svc.gotReq.End)
	assert.Contains(t, rec.Body.String(), `"startDate":"2026-09-07"`)
}

func TestHandle_WeekShorthand(t *testing.T) {
	svc := &serviceStub{resp: stubCalendar()}
	router := newTestRouter(svc)

	// Среда 2026-09-02 -> неделя с понедельника 2026-08-31 по воскресенье 2026-09-06
	rec := doRequest(t, router, "42", "week=2026-09-02")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotReq)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), svc.gotReq.Start)
	assert.Equal(t, time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC), svc.gotReq.End)
}

func TestHandle_MonthShorthand(t *testing.T) {
	svc := &serviceStub{resp: stubCalendar()}
	router := newTestRouter(svc)

	rec := doRequest(t, router, "42", "month=2026-09")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotReq)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), svc.gotReq.Start)
	assert.Equal(t, time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC), svc.gotReq.End)
}

func TestHandle_NoParamsPassesZeroRange(t *testing.T) {
	svc := &serviceStub{resp: stubCalendar()}
	router := newTestRouter(svc)

	rec := doRequest(t, router, "42", "")

	// Нулевой период: сервис сам подставит текущую неделю
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotReq)
	assert.True(t, svc.gotReq.Start.IsZero())
	assert.True(t, svc.gotReq.End.IsZero())
}

func TestHandle_InvalidWeekParam(t *testing.T) {
	svc := &serviceStub{resp: stubCalendar()}
	router := newTestRouter(svc)

	rec := doRequest(t, router, "42", "week=not-a-date")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.gotReq)
}

func TestHandle_MissingAuthHeader(t *testing.T) {
	svc := &serviceStub{resp: stubCalendar()}
	router := newTestRouter(svc)

	rec := doRequest(t, router, "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, svc.gotReq)
}

func TestHandle_ForeignDriver(t *testing.T) {
	svc := &serviceStub{resp: stubCalendar()}
	router := newTestRouter(svc)

	rec := doRequest(t, router, "99", "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, svc.gotReq)
}

func TestHandle_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "invalid range",
			serviceErr: planning.ErrInvalidRange,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid input",
			serviceErr: planning.ErrInvalidInput,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "internal error",
			serviceErr: errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceStub{err: tt.serviceErr}
			router := newTestRouter(svc)

			rec := doRequest(t, router, "42", "startDate=2026-09-07&endDate=2026-09-13")

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
