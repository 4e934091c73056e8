package attendance

import (
	"context"
	"errors"
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/employee"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TodayStatus joins the active roster against today's time records.
// Records whose employee reference does not resolve are reported as
// invalid_reference entries, never silently dropped.
func (s *service) TodayStatus(ctx context.Context) (TodayStatusResponse, error) {
	now := s.now()
	today := s.cfg.StartOfDay(now)

	roster, err := s.employees.FindAllActive(ctx, "")
	if err != nil {
		s.logger.Error("today status roster fetch failed", zap.Error(err))
		return TodayStatusResponse{}, err
	}

	records, err := s.repo.FindAllByDate(ctx, today)
	if err != nil {
		s.logger.Error("today status records fetch failed", zap.Error(err))
		return TodayStatusResponse{}, err
	}

	rosterByID := make(map[string]employee.Employee, len(roster))
	for _, emp := range roster {
		rosterByID[emp.ID.String()] = emp
	}

	var (
		present []RosterEntry
		invalid []RosterEntry
	)
	presentIDs := make(map[string]struct{})
	onBreakCount := 0

	for _, rec := range records {
		if rec.EmployeeID == uuid.Nil {
			invalid = append(invalid, invalidEntry(rec, "employee reference is empty"))
			continue
		}

		empID := rec.EmployeeID.String()
		emp, ok := rosterByID[empID]
		if !ok {
			invalid = append(invalid, invalidEntry(rec, "associated employee not found"))
			continue
		}

		entry := recordEntry(rec, emp, now)
		if entry.IsOnBreak {
			onBreakCount++
		}
		presentIDs[empID] = struct{}{}
		present = append(present, entry)
	}

	var absent []RosterEntry
	for _, emp := range roster {
		if _, ok := presentIDs[emp.ID.String()]; ok {
			continue
		}
		absent = append(absent, RosterEntry{
			Employee: rosterEmployee(emp),
			Status:   StatusAbsent,
		})
	}

	entries := make([]RosterEntry, 0, len(present)+len(absent)+len(invalid))
	entries = append(entries, present...)
	entries = append(entries, absent...)
	entries = append(entries, invalid...)

	return TodayStatusResponse{
		Entries: entries,
		Counts: TodayCounts{
			Present:        len(present),
			Absent:         len(absent),
			OnBreak:        onBreakCount,
			InvalidRecords: len(invalid),
		},
	}, nil
}

func rosterEmployee(emp employee.Employee) *RosterEmployee {
	out := &RosterEmployee{
		ID:       emp.ID.String(),
		Name:     emp.FullName,
		Email:    emp.Email,
		Position: emp.Position,
	}
	if emp.Department != nil {
		out.Department = emp.Department.Name
	}
	return out
}

func recordEntry(rec TimeRecord, emp employee.Employee, now time.Time) RosterEntry {
	entry := RosterEntry{
		Employee:         rosterEmployee(emp),
		AttendanceID:     rec.ID.String(),
		Status:           rec.Status,
		IsLateArrival:    rec.IsLateArrival,
		IsEarlyDeparture: rec.IsEarlyDeparture,
		EffectiveHours:   rec.EffectiveHours,
	}
	loc := rec.WorkLocation
	entry.WorkLocation = &loc

	in := rec.ClockIn.Format(time.RFC3339)
	entry.ClockIn = &in
	if rec.ClockOut != nil {
		out := rec.ClockOut.Format(time.RFC3339)
		entry.ClockOut = &out
	}

	if open := rec.OpenBreak(); open != nil {
		entry.IsOnBreak = true
		entry.Status = StatusOnBreak
		minutes := int64(now.Sub(open.BreakIn).Minutes())
		entry.CurrentBreakDurationMinutes = &minutes
	}
	return entry
}

func invalidEntry(rec TimeRecord, reason string) RosterEntry {
	entry := RosterEntry{
		AttendanceID:     rec.ID.String(),
		Status:           "invalid_reference",
		IsLateArrival:    rec.IsLateArrival,
		IsEarlyDeparture: rec.IsEarlyDeparture,
		EffectiveHours:   rec.EffectiveHours,
		Error:            reason,
	}
	loc := rec.WorkLocation
	entry.WorkLocation = &loc
	in := rec.ClockIn.Format(time.RFC3339)
	entry.ClockIn = &in
	if rec.ClockOut != nil {
		out := rec.ClockOut.Format(time.RFC3339)
		entry.ClockOut = &out
	}
	return entry
}

// GetLogs folds an employee's records into per-day stats plus an overall
// summary with the compliance rate.
func (s *service) GetLogs(ctx context.Context, employeeID string, q PeriodQuery) (LogsResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return LogsResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	records, err := s.recordsForPeriod(ctx, employeeID, q)
	if err != nil {
		return LogsResponse{}, err
	}

	sessions := make([]TimeRecordResponse, len(records))
	dailyStats := make(map[string]DailyStat, len(records))
	lateArrivals := 0
	earlyDepartures := 0

	for i, rec := range records {
		sessions[i] = mapToResponse(rec)

		key := rec.WorkDate.Format("2006-01-02")
		stat := dailyStats[key]
		stat.EffectiveHours = round2(stat.EffectiveHours + rec.EffectiveHours)
		stat.GrossHours = round2(stat.GrossHours + rec.GrossHours)
		stat.OvertimeHours = round2(stat.OvertimeHours + rec.OvertimeHours)
		stat.IsLateArrival = rec.IsLateArrival
		stat.IsEarlyDeparture = rec.IsEarlyDeparture
		stat.Status = rec.Status
		dailyStats[key] = stat

		if rec.IsLateArrival {
			lateArrivals++
		}
		if rec.IsEarlyDeparture {
			earlyDepartures++
		}
	}

	summary := LogSummary{
		TotalDays:            len(dailyStats),
		TotalLateArrivals:    lateArrivals,
		TotalEarlyDepartures: earlyDepartures,
	}
	for _, stat := range dailyStats {
		summary.TotalOvertime += stat.OvertimeHours
		summary.TotalEffectiveHours += stat.EffectiveHours
	}
	summary.TotalOvertime = round2(summary.TotalOvertime)
	summary.TotalEffectiveHours = round2(summary.TotalEffectiveHours)
	if summary.TotalDays > 0 {
		summary.AvgEffectiveHours = round2(summary.TotalEffectiveHours / float64(summary.TotalDays))
		summary.ComplianceRate = round2(1 - float64(lateArrivals+earlyDepartures)/float64(summary.TotalDays))
	}

	return LogsResponse{
		Sessions:   sessions,
		DailyStats: dailyStats,
		Summary:    summary,
	}, nil
}

// EmployeeAttendanceDetails computes per-employee summary statistics over
// a date range. Working days exclude weekends only; absentDays is left
// unclamped when records fall outside the working-day calculation.
func (s *service) EmployeeAttendanceDetails(ctx context.Context, employeeID string, q PeriodQuery) (AttendanceDetailsResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceDetailsResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceDetailsResponse{}, attendanceerrors.ErrEmployeeNotFound
		}
		return AttendanceDetailsResponse{}, err
	}

	records, err := s.recordsForPeriod(ctx, employeeID, q)
	if err != nil {
		return AttendanceDetailsResponse{}, err
	}

	now := s.now()
	periodStart := now
	if q.StartDate != "" {
		periodStart, _ = parseDate(q.StartDate)
	} else if len(records) > 0 {
		periodStart = records[len(records)-1].WorkDate
	}
	periodEnd := now
	if q.EndDate != "" {
		periodEnd, _ = parseDate(q.EndDate)
	}

	workingDays := workingDaysBetween(periodStart, periodEnd)

	stats := PeriodStatistics{}
	totalEffective := 0.0
	totalOvertime := 0.0
	for _, rec := range records {
		switch rec.Status {
		case StatusPresent, StatusLoggedOut:
			stats.PresentDays++
		case StatusHalfDay:
			stats.HalfDays++
		}
		totalEffective += rec.EffectiveHours
		totalOvertime += rec.OvertimeHours
		if rec.IsLateArrival {
			stats.LateArrivals++
		}
		if rec.IsEarlyDeparture {
			stats.EarlyDepartures++
		}
	}

	stats.AbsentDays = workingDays - stats.PresentDays - stats.HalfDays
	if workingDays > 0 {
		stats.AttendanceRate = round2((float64(stats.PresentDays) + 0.5*float64(stats.HalfDays)) / float64(workingDays))
	}
	stats.TotalEffectiveHours = round2(totalEffective)
	stats.TotalOvertime = round2(totalOvertime)
	if stats.PresentDays > 0 {
		stats.AvgDailyHours = round2(totalEffective / float64(stats.PresentDays))
	}

	recent := records
	if len(recent) > 10 {
		recent = recent[:10]
	}
	recentRecords := make([]TimeRecordResponse, len(recent))
	for i, rec := range recent {
		recentRecords[i] = mapToResponse(rec)
	}

	return AttendanceDetailsResponse{
		Employee: *rosterEmployee(*emp),
		Period: PeriodInfo{
			Start:       periodStart.Format("2006-01-02"),
			End:         periodEnd.Format("2006-01-02"),
			WorkingDays: workingDays,
		},
		Statistics:    stats,
		RecentRecords: recentRecords,
	}, nil
}

// recordsForPeriod validates the optional date range and fetches the
// employee's records, newest first.
func (s *service) recordsForPeriod(ctx context.Context, employeeID string, q PeriodQuery) ([]TimeRecord, error) {
	if q.StartDate == "" && q.EndDate == "" {
		return s.repo.FindByEmployee(ctx, employeeID)
	}

	start := time.Time{}
	end := s.cfg.StartOfDay(s.now())
	var err error

	if q.StartDate != "" {
		start, err = parseDate(q.StartDate)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDateFormat
		}
	}
	if q.EndDate != "" {
		end, err = parseDate(q.EndDate)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDateFormat
		}
	}
	if !start.IsZero() && start.After(end) {
		return nil, attendanceerrors.ErrInvalidDateRange
	}

	return s.repo.FindByEmployeeBetween(ctx, employeeID, start, end)
}
