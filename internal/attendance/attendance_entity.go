package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPresent   = "present"
	StatusOnBreak   = "onBreak"
	StatusHalfDay   = "half-day"
	StatusLoggedOut = "loggedOut"
	// StatusAbsent is a roster-view status only, never persisted on a record.
	StatusAbsent = "absent"
)

const (
	LocationOffice       = "office"
	LocationWorkFromHome = "work_from_home"
)

// TimeRecord is one attendance session per employee per calendar day.
// work_date is normalized to midnight; the unique index rejects a second
// clock-in for the same day at the storage layer.
type TimeRecord struct {
	ID               uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID       uuid.UUID      `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_day"`
	WorkDate         time.Time      `gorm:"column:work_date;type:date;not null;uniqueIndex:uq_attendance_employee_day"`
	ClockIn          time.Time      `gorm:"column:clock_in;type:timestamptz;not null"`
	ClockOut         *time.Time     `gorm:"column:clock_out;type:timestamptz"`
	WorkLocation     string         `gorm:"column:work_location;type:varchar(20);not null;default:office"`
	Status           string         `gorm:"column:status;type:varchar(20);not null;default:present"`
	GrossHours       float64        `gorm:"column:gross_hours;not null;default:0"`
	EffectiveHours   float64        `gorm:"column:effective_hours;not null;default:0"`
	OvertimeHours    float64        `gorm:"column:overtime_hours;not null;default:0"`
	TotalBreakMs     int64          `gorm:"column:total_break_ms;not null;default:0"`
	IsOnTime         bool           `gorm:"column:is_on_time;not null;default:true"`
	IsLateArrival    bool           `gorm:"column:is_late_arrival;not null;default:false"`
	IsEarlyDeparture bool           `gorm:"column:is_early_departure;not null;default:false"`
	Breaks           []Break        `gorm:"foreignKey:RecordID;references:ID"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (TimeRecord) TableName() string {
	return "attendances"
}

// Break is one pause inside a session. An open break has a NULL break_out;
// at most one break per record may be open at a time.
type Break struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	RecordID  uuid.UUID  `gorm:"column:record_id;type:uuid;not null;index"`
	BreakIn   time.Time  `gorm:"column:break_in;type:timestamptz;not null"`
	BreakOut  *time.Time `gorm:"column:break_out;type:timestamptz"`
	CreatedAt time.Time  `gorm:"column:created_at"`
}

func (Break) TableName() string {
	return "attendance_breaks"
}

// OpenBreak returns the trailing open break, if any. Breaks are kept in
// chronological order, so only the last entry can be open.
func (r *TimeRecord) OpenBreak() *Break {
	if len(r.Breaks) == 0 {
		return nil
	}
	last := &r.Breaks[len(r.Breaks)-1]
	if last.BreakOut == nil {
		return last
	}
	return nil
}

func (r *TimeRecord) IsFinalized() bool {
	return r.ClockOut != nil
}

func IsValidWorkLocation(v string) bool {
	return v == LocationOffice || v == LocationWorkFromHome
}
