package employee

import (
	"time"

	"go-hrms/internal/department"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusTerminated = "terminated"
)

type Employee struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DepartmentID     *uuid.UUID `gorm:"type:uuid"`
	EmployeeNumber   string     `gorm:"size:32;uniqueIndex:uq_employee_number"`
	FullName         string     `gorm:"size:255;not null"`
	Email            string     `gorm:"size:255;uniqueIndex:uq_employee_email"`
	Phone            string     `gorm:"size:32"`
	Position         string     `gorm:"size:128"`
	HireDate         time.Time
	EmploymentStatus string `gorm:"size:16;default:active;index"`

	Department *department.Department `gorm:"foreignKey:DepartmentID"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func IsValidEmploymentStatus(v string) bool {
	switch v {
	case StatusActive, StatusInactive, StatusTerminated:
		return true
	default:
		return false
	}
}
