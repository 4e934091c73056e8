package events

import "time"

const AttendanceClockedOutTopic = "hrms.attendance.clocked_out"

// AttendanceClockedOutEvent is emitted once a time record becomes
// terminal for the day, carrying the finalized derived figures.
type AttendanceClockedOutEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	RecordID       string    `json:"record_id"`
	EmployeeID     string    `json:"employee_id"`
	WorkDate       string    `json:"work_date"`
	Status         string    `json:"status"`
	EffectiveHours float64   `json:"effective_hours"`
	OvertimeHours  float64   `json:"overtime_hours"`
	OccurredAt     time.Time `json:"occurred_at"`
}
