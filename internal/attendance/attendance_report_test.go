package attendance

import (
	"context"
	"testing"
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/employee"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestService_TodayStatus(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	now := day.Add(14 * time.Hour)

	empA := employee.Employee{ID: uuid.New(), FullName: "Ana", Email: "ana@acme.test"}
	empB := employee.Employee{ID: uuid.New(), FullName: "Ben", Email: "ben@acme.test"}
	empC := employee.Employee{ID: uuid.New(), FullName: "Cleo", Email: "cleo@acme.test"}

	breakStart := day.Add(13*time.Hour + 40*time.Minute)
	records := []TimeRecord{
		{
			ID:         uuid.New(),
			EmployeeID: empA.ID,
			WorkDate:   day,
			ClockIn:    day.Add(9 * time.Hour),
			Status:     StatusPresent,
		},
		{
			ID:         uuid.New(),
			EmployeeID: empB.ID,
			WorkDate:   day,
			ClockIn:    day.Add(9 * time.Hour),
			Status:     StatusOnBreak,
			Breaks:     []Break{{ID: uuid.New(), BreakIn: breakStart}},
		},
		{
			// Orphaned record, its employee is no longer on the roster.
			ID:         uuid.New(),
			EmployeeID: uuid.New(),
			WorkDate:   day,
			ClockIn:    day.Add(10 * time.Hour),
			Status:     StatusPresent,
		},
	}

	repo := &fakeRepo{
		findAllByDateFn: func(ctx context.Context, d time.Time) ([]TimeRecord, error) {
			return records, nil
		},
	}
	dir := &fakeDirectory{
		findAllActiveFn: func(ctx context.Context, department string) ([]employee.Employee, error) {
			return []employee.Employee{empA, empB, empC}, nil
		},
	}

	svc := &service{repo: repo, employees: dir, cfg: testConfig(), logger: zap.NewNop(), now: func() time.Time { return now }}

	resp, err := svc.TodayStatus(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Counts.Present)
	assert.Equal(t, 1, resp.Counts.Absent)
	assert.Equal(t, 1, resp.Counts.OnBreak)
	assert.Equal(t, 1, resp.Counts.InvalidRecords)
	require.Len(t, resp.Entries, 4)

	var onBreak *RosterEntry
	for i := range resp.Entries {
		if resp.Entries[i].IsOnBreak {
			onBreak = &resp.Entries[i]
		}
	}
	require.NotNil(t, onBreak)
	assert.Equal(t, StatusOnBreak, onBreak.Status)
	require.NotNil(t, onBreak.CurrentBreakDurationMinutes)
	assert.Equal(t, int64(20), *onBreak.CurrentBreakDurationMinutes)

	last := resp.Entries[len(resp.Entries)-1]
	assert.Equal(t, "invalid_reference", last.Status)
	assert.Equal(t, "associated employee not found", last.Error)
}

func TestService_GetLogs_Summary(t *testing.T) {
	day1 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	empID := uuid.New()

	records := []TimeRecord{
		{
			ID: uuid.New(), EmployeeID: empID, WorkDate: day2,
			ClockIn: day2.Add(9 * time.Hour), Status: StatusLoggedOut,
			GrossHours: 9, EffectiveHours: 9, OvertimeHours: 1,
		},
		{
			ID: uuid.New(), EmployeeID: empID, WorkDate: day1,
			ClockIn: day1.Add(9*time.Hour + 20*time.Minute), Status: StatusLoggedOut,
			GrossHours: 7.5, EffectiveHours: 7, IsLateArrival: true,
		},
	}

	repo := &fakeRepo{
		findByEmployeeFn: func(ctx context.Context, employeeID string) ([]TimeRecord, error) {
			return records, nil
		},
	}
	svc := &service{repo: repo, cfg: testConfig(), logger: zap.NewNop(), now: time.Now}

	resp, err := svc.GetLogs(context.Background(), empID.String(), PeriodQuery{})
	require.NoError(t, err)

	assert.Len(t, resp.Sessions, 2)
	assert.Len(t, resp.DailyStats, 2)
	assert.Equal(t, 2, resp.Summary.TotalDays)
	assert.Equal(t, 1, resp.Summary.TotalLateArrivals)
	assert.Equal(t, 0, resp.Summary.TotalEarlyDepartures)
	assert.Equal(t, 1.0, resp.Summary.TotalOvertime)
	assert.Equal(t, 16.0, resp.Summary.TotalEffectiveHours)
	assert.Equal(t, 8.0, resp.Summary.AvgEffectiveHours)
	assert.Equal(t, 0.5, resp.Summary.ComplianceRate)

	stat, ok := resp.DailyStats[day1.Format("2006-01-02")]
	require.True(t, ok)
	assert.True(t, stat.IsLateArrival)
	assert.Equal(t, 7.0, stat.EffectiveHours)
}

func TestService_GetLogs_InvalidRange(t *testing.T) {
	svc := &service{repo: &fakeRepo{}, cfg: testConfig(), logger: zap.NewNop(), now: time.Now}

	_, err := svc.GetLogs(context.Background(), uuid.New().String(), PeriodQuery{
		StartDate: "2025-06-10",
		EndDate:   "2025-06-01",
	})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateRange)

	_, err = svc.GetLogs(context.Background(), uuid.New().String(), PeriodQuery{
		StartDate: "10-06-2025",
	})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateFormat)
}

func TestService_EmployeeAttendanceDetails(t *testing.T) {
	// 2025-06-02 .. 2025-06-06 is a Monday-to-Friday week.
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	emp := employee.Employee{ID: uuid.New(), FullName: "Ana", Email: "ana@acme.test"}

	records := []TimeRecord{
		{EmployeeID: emp.ID, WorkDate: start, ClockIn: start.Add(9 * time.Hour), Status: StatusLoggedOut, EffectiveHours: 8},
		{EmployeeID: emp.ID, WorkDate: start.AddDate(0, 0, 1), ClockIn: start.Add(9 * time.Hour), Status: StatusLoggedOut, EffectiveHours: 9, OvertimeHours: 1},
		{EmployeeID: emp.ID, WorkDate: start.AddDate(0, 0, 2), ClockIn: start.Add(9 * time.Hour), Status: StatusHalfDay, EffectiveHours: 3, IsEarlyDeparture: true},
	}

	repo := &fakeRepo{
		findByEmployeeBetweenFn: func(ctx context.Context, employeeID string, s, e time.Time) ([]TimeRecord, error) {
			return records, nil
		},
	}
	dir := &fakeDirectory{
		findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
			return &emp, nil
		},
	}
	svc := &service{repo: repo, employees: dir, cfg: testConfig(), logger: zap.NewNop(), now: time.Now}

	resp, err := svc.EmployeeAttendanceDetails(context.Background(), emp.ID.String(), PeriodQuery{
		StartDate: "2025-06-02",
		EndDate:   "2025-06-06",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.Period.WorkingDays)
	assert.Equal(t, 2, resp.Statistics.PresentDays)
	assert.Equal(t, 1, resp.Statistics.HalfDays)
	assert.Equal(t, 2, resp.Statistics.AbsentDays)
	assert.Equal(t, 0.5, resp.Statistics.AttendanceRate)
	assert.Equal(t, 20.0, resp.Statistics.TotalEffectiveHours)
	assert.Equal(t, 1.0, resp.Statistics.TotalOvertime)
	assert.Equal(t, 10.0, resp.Statistics.AvgDailyHours)
	assert.Equal(t, 1, resp.Statistics.EarlyDepartures)
	assert.Len(t, resp.RecentRecords, 3)
	assert.Equal(t, "Ana", resp.Employee.Name)

	assert.Equal(t, "2025-06-02", resp.Period.Start)
	assert.Equal(t, "2025-06-06", resp.Period.End)
}

func TestService_EmployeeAttendanceDetails_WeekendOnlyRange(t *testing.T) {
	// 2025-06-07 .. 2025-06-08 is a Saturday and a Sunday.
	emp := employee.Employee{ID: uuid.New(), FullName: "Ana", Email: "ana@acme.test"}

	repo := &fakeRepo{
		findByEmployeeBetweenFn: func(ctx context.Context, employeeID string, s, e time.Time) ([]TimeRecord, error) {
			return nil, nil
		},
	}
	dir := &fakeDirectory{
		findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
			return &emp, nil
		},
	}
	svc := &service{repo: repo, employees: dir, cfg: testConfig(), logger: zap.NewNop(), now: time.Now}

	resp, err := svc.EmployeeAttendanceDetails(context.Background(), emp.ID.String(), PeriodQuery{
		StartDate: "2025-06-07",
		EndDate:   "2025-06-08",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Period.WorkingDays)
	assert.Equal(t, 0.0, resp.Statistics.AttendanceRate)
	assert.Equal(t, 0, resp.Statistics.AbsentDays)
	assert.Empty(t, resp.RecentRecords)
}
