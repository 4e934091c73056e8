package project

import (
	"time"

	"go-hrms/internal/employee"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive    = "ACTIVE"
	StatusOnHold    = "ON_HOLD"
	StatusCompleted = "COMPLETED"
)

const (
	TaskStatusNotStarted = "NOT_STARTED"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusCompleted  = "COMPLETED"
	TaskStatusOnHold     = "ON_HOLD"
)

// Project groups a leader and a set of member employees. Membership
// decides who may log daily tasks against the project.
type Project struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string              `gorm:"column:name;type:varchar(150);not null"`
	LeaderID  uuid.UUID           `gorm:"column:leader_id;type:uuid;not null"`
	Leader    *employee.Employee  `gorm:"foreignKey:LeaderID;references:ID"`
	Members   []employee.Employee `gorm:"many2many:project_members"`
	Status    string              `gorm:"column:status;type:varchar(20);not null;default:ACTIVE"`
	CreatedAt time.Time           `gorm:"column:created_at"`
	UpdatedAt time.Time           `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt      `gorm:"column:deleted_at;index"`
}

func (Project) TableName() string {
	return "projects"
}

// Task is one work log per employee per project per day; the unique
// index enforces the one-per-day rule at the storage layer.
type Task struct {
	ID          uuid.UUID          `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectID   uuid.UUID          `gorm:"column:project_id;type:uuid;not null;uniqueIndex:uq_task_employee_project_day"`
	Project     *Project           `gorm:"foreignKey:ProjectID;references:ID"`
	EmployeeID  uuid.UUID          `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_task_employee_project_day"`
	Employee    *employee.Employee `gorm:"foreignKey:EmployeeID;references:ID"`
	TaskDate    time.Time          `gorm:"column:task_date;type:date;not null;uniqueIndex:uq_task_employee_project_day"`
	Description string             `gorm:"column:description;type:text;not null"`
	Status      string             `gorm:"column:status;type:varchar(20);not null;default:NOT_STARTED"`
	Comments    string             `gorm:"column:comments;type:text"`
	CreatedAt   time.Time          `gorm:"column:created_at"`
	UpdatedAt   time.Time          `gorm:"column:updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

func IsValidProjectStatus(v string) bool {
	switch v {
	case StatusActive, StatusOnHold, StatusCompleted:
		return true
	default:
		return false
	}
}

func IsValidTaskStatus(v string) bool {
	switch v {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusCompleted, TaskStatusOnHold:
		return true
	default:
		return false
	}
}
