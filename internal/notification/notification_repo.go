package notification

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindForEmployee(ctx context.Context, employeeID string, since *time.Time) ([]Notification, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// FindForEmployee returns broadcasts plus rows addressed to the employee,
// newest first. A nil since returns the full history.
func (r *repository) FindForEmployee(ctx context.Context, employeeID string, since *time.Time) ([]Notification, error) {
	db := r.db.WithContext(ctx).
		Where("employee_id IS NULL OR employee_id = ?", employeeID)

	if since != nil {
		db = db.Where("created_at > ?", *since)
	}

	var notifications []Notification
	err := db.Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}
