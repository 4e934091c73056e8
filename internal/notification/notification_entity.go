package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeInfo     = "INFO"
	TypeWarning  = "WARNING"
	TypeAnnounce = "ANNOUNCEMENT"
)

// EmployeeID is nil for broadcast notifications visible to everyone.
type Notification struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID *uuid.UUID `gorm:"type:uuid;index"`
	Title      string     `gorm:"type:varchar(255);not null"`
	Message    string     `gorm:"type:text;not null"`
	Type       string     `gorm:"type:varchar(20);not null;default:'INFO'"`
	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt  time.Time  `gorm:"index"`
}
