package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/attendance"
	attendanceerrors "go-hrms/internal/attendance/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	clockInFn     func(ctx context.Context, employeeID string, req attendance.ClockInRequest) (attendance.TimeRecordResponse, error)
	breakInFn     func(ctx context.Context, employeeID string) (attendance.TimeRecordResponse, error)
	breakOutFn    func(ctx context.Context, employeeID string) (attendance.TimeRecordResponse, error)
	clockOutFn    func(ctx context.Context, employeeID string) (attendance.TimeRecordResponse, error)
	getLogsFn     func(ctx context.Context, employeeID string, q attendance.PeriodQuery) (attendance.LogsResponse, error)
	todayStatusFn func(ctx context.Context) (attendance.TodayStatusResponse, error)
	detailsFn     func(ctx context.Context, employeeID string, q attendance.PeriodQuery) (attendance.AttendanceDetailsResponse, error)
}

func (f *fakeService) ClockIn(ctx context.Context, employeeID string, req attendance.ClockInRequest) (attendance.TimeRecordResponse, error) {
	return f.clockInFn(ctx, employeeID, req)
}
func (f *fakeService) BreakIn(ctx context.Context, employeeID string) (attendance.TimeRecordResponse, error) {
	return f.breakInFn(ctx, employeeID)
}
func (f *fakeService) BreakOut(ctx context.Context, employeeID string) (attendance.TimeRecordResponse, error) {
	return f.breakOutFn(ctx, employeeID)
}
func (f *fakeService) ClockOut(ctx context.Context, employeeID string) (attendance.TimeRecordResponse, error) {
	return f.clockOutFn(ctx, employeeID)
}
func (f *fakeService) GetLogs(ctx context.Context, employeeID string, q attendance.PeriodQuery) (attendance.LogsResponse, error) {
	return f.getLogsFn(ctx, employeeID, q)
}
func (f *fakeService) TodayStatus(ctx context.Context) (attendance.TodayStatusResponse, error) {
	return f.todayStatusFn(ctx)
}
func (f *fakeService) EmployeeAttendanceDetails(ctx context.Context, employeeID string, q attendance.PeriodQuery) (attendance.AttendanceDetailsResponse, error) {
	return f.detailsFn(ctx, employeeID, q)
}

func TestHandler_ClockIn(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeService{
		clockInFn: func(ctx context.Context, eid string, req attendance.ClockInRequest) (attendance.TimeRecordResponse, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, attendance.LocationWorkFromHome, req.WorkLocation)
			return attendance.TimeRecordResponse{ID: uuid.New().String(), EmployeeID: eid}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/clock-in", strings.NewReader(`{"work_location":"work_from_home"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.ClockIn(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "\"success\":true")
}

func TestHandler_ClockIn_EmptyBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		clockInFn: func(ctx context.Context, eid string, req attendance.ClockInRequest) (attendance.TimeRecordResponse, error) {
			assert.Empty(t, req.WorkLocation)
			return attendance.TimeRecordResponse{ID: uuid.New().String()}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/clock-in", nil)
	h.ClockIn(c)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHandler_ClockOut_Conflict(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		clockOutFn: func(ctx context.Context, eid string) (attendance.TimeRecordResponse, error) {
			return attendance.TimeRecordResponse{}, attendanceerrors.ErrNoActiveSession
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/clock-out", nil)
	h.ClockOut(c)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CONFLICT")
}

func TestHandler_GetLogs_AdminOverride(t *testing.T) {
	gin.SetMode(gin.TestMode)
	target := uuid.New().String()

	svc := &fakeService{
		getLogsFn: func(ctx context.Context, eid string, q attendance.PeriodQuery) (attendance.LogsResponse, error) {
			assert.Equal(t, target, eid)
			assert.Equal(t, "2025-06-01", q.StartDate)
			return attendance.LogsResponse{DailyStats: map[string]attendance.DailyStat{}}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.New().String())
	c.Set("role", "ADMIN")
	c.Request = httptest.NewRequest(http.MethodGet, "/attendance/logs?employeeId="+target+"&startDate=2025-06-01", nil)
	h.GetLogs(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_GetLogs_NonAdminIgnoresOverride(t *testing.T) {
	gin.SetMode(gin.TestMode)
	self := uuid.New().String()

	svc := &fakeService{
		getLogsFn: func(ctx context.Context, eid string, q attendance.PeriodQuery) (attendance.LogsResponse, error) {
			assert.Equal(t, self, eid)
			return attendance.LogsResponse{}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", self)
	c.Set("role", "EMPLOYEE")
	c.Request = httptest.NewRequest(http.MethodGet, "/attendance/logs?employeeId="+uuid.New().String(), nil)
	h.GetLogs(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_TodayStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		todayStatusFn: func(ctx context.Context) (attendance.TodayStatusResponse, error) {
			return attendance.TodayStatusResponse{
				Entries: []attendance.RosterEntry{{Status: attendance.StatusAbsent}},
				Counts:  attendance.TodayCounts{Absent: 1},
			}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/attendance/today-status", nil)
	h.TodayStatus(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"counts\"")
	assert.Contains(t, w.Body.String(), "\"absent\":1")
}
