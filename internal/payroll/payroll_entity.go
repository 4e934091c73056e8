package payroll

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusDraft    = "DRAFT"
	StatusApproved = "APPROVED"
	StatusPaid     = "PAID"
	StatusCanceled = "CANCELLED"
)

type Payroll struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID        `gorm:"type:uuid;not null;index:idx_employee_period,unique"`
	Employee   *PayrollEmployee `gorm:"foreignKey:EmployeeID;references:ID"`

	PeriodStart time.Time `gorm:"type:date;not null;index:idx_employee_period,unique"`
	PeriodEnd   time.Time `gorm:"type:date;not null;index:idx_employee_period,unique"`

	// Money columns are stored in cents to avoid floating point error.
	// OvertimeHundredths is overtime in hundredths of an hour.
	BaseSalary         int64 `gorm:"type:bigint;not null;default:0"`
	Allowance          int64 `gorm:"type:bigint;not null;default:0"`
	OvertimeHundredths int64 `gorm:"type:bigint;not null;default:0"`
	OvertimeRate       int64 `gorm:"type:bigint;not null;default:0"`
	OvertimeAmount     int64 `gorm:"type:bigint;not null;default:0"`
	Deduction          int64 `gorm:"type:bigint;not null;default:0"`
	NetSalary          int64 `gorm:"type:bigint;not null;default:0"`

	Status     string     `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	PaidAt     *time.Time `gorm:"index"`
	ApprovedAt *time.Time `gorm:"index"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

type PayrollEmployee struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (PayrollEmployee) TableName() string {
	return "employees"
}
