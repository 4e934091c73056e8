package attendance

type ClockInRequest struct {
	WorkLocation string `json:"work_location"`
}

type BreakResponse struct {
	BreakIn  string  `json:"break_in"`
	BreakOut *string `json:"break_out,omitempty"`
}

type TimeRecordResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	Date             string          `json:"date"`
	ClockIn          string          `json:"clock_in"`
	ClockOut         *string         `json:"clock_out,omitempty"`
	WorkLocation     string          `json:"work_location"`
	Status           string          `json:"status"`
	Breaks           []BreakResponse `json:"breaks"`
	GrossHours       float64         `json:"gross_hours"`
	EffectiveHours   float64         `json:"effective_hours"`
	OvertimeHours    float64         `json:"overtime_hours"`
	TotalBreakMs     int64           `json:"total_break_ms"`
	IsOnTime         bool            `json:"is_on_time"`
	IsLateArrival    bool            `json:"is_late_arrival"`
	IsEarlyDeparture bool            `json:"is_early_departure"`
}

type PeriodQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

type DailyStat struct {
	EffectiveHours   float64 `json:"effectiveHours"`
	GrossHours       float64 `json:"grossHours"`
	OvertimeHours    float64 `json:"overtimeHours"`
	IsLateArrival    bool    `json:"isLateArrival"`
	IsEarlyDeparture bool    `json:"isEarlyDeparture"`
	Status           string  `json:"status"`
}

type LogSummary struct {
	TotalDays            int     `json:"totalDays"`
	TotalLateArrivals    int     `json:"totalLateArrivals"`
	TotalEarlyDepartures int     `json:"totalEarlyDepartures"`
	TotalOvertime        float64 `json:"totalOvertime"`
	TotalEffectiveHours  float64 `json:"totalEffectiveHours"`
	AvgEffectiveHours    float64 `json:"avgEffectiveHours"`
	ComplianceRate       float64 `json:"complianceRate"`
}

type LogsResponse struct {
	Sessions   []TimeRecordResponse `json:"sessions"`
	DailyStats map[string]DailyStat `json:"dailyStats"`
	Summary    LogSummary           `json:"summary"`
}

type RosterEmployee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
}

// RosterEntry is the read model for the daily roster: one employee joined
// with at most one time record, annotated with live break state.
type RosterEntry struct {
	Employee                    *RosterEmployee `json:"employee"`
	AttendanceID                string          `json:"attendance_id,omitempty"`
	Status                      string          `json:"status"`
	ClockIn                     *string         `json:"clock_in"`
	ClockOut                    *string         `json:"clock_out"`
	IsLateArrival               bool            `json:"is_late_arrival"`
	IsEarlyDeparture            bool            `json:"is_early_departure"`
	EffectiveHours              float64         `json:"effective_hours"`
	WorkLocation                *string         `json:"work_location"`
	IsOnBreak                   bool            `json:"is_on_break"`
	CurrentBreakDurationMinutes *int64          `json:"current_break_duration_minutes"`
	Error                       string          `json:"error,omitempty"`
}

type TodayCounts struct {
	Present        int `json:"present"`
	Absent         int `json:"absent"`
	OnBreak        int `json:"onBreak"`
	InvalidRecords int `json:"invalidRecords"`
}

type TodayStatusResponse struct {
	Entries []RosterEntry
	Counts  TodayCounts
}

type PeriodInfo struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	WorkingDays int    `json:"workingDays"`
}

type PeriodStatistics struct {
	PresentDays         int     `json:"presentDays"`
	HalfDays            int     `json:"halfDays"`
	AbsentDays          int     `json:"absentDays"`
	AttendanceRate      float64 `json:"attendanceRate"`
	TotalEffectiveHours float64 `json:"totalEffectiveHours"`
	TotalOvertime       float64 `json:"totalOvertime"`
	AvgDailyHours       float64 `json:"avgDailyHours"`
	LateArrivals        int     `json:"lateArrivals"`
	EarlyDepartures     int     `json:"earlyDepartures"`
}

type AttendanceDetailsResponse struct {
	Employee      RosterEmployee       `json:"employee"`
	Period        PeriodInfo           `json:"period"`
	Statistics    PeriodStatistics     `json:"statistics"`
	RecentRecords []TimeRecordResponse `json:"recentRecords"`
}
