package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rec *TimeRecord) error
	FindByEmployeeAndDate(ctx context.Context, employeeID string, day time.Time) (*TimeRecord, error)
	FindAllByDate(ctx context.Context, day time.Time) ([]TimeRecord, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]TimeRecord, error)
	FindByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]TimeRecord, error)
	Update(ctx context.Context, rec *TimeRecord) error
	AddBreak(ctx context.Context, b *Break) error
	UpdateBreak(ctx context.Context, b *Break) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.GormWithTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, rec *TimeRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, day time.Time) (*TimeRecord, error) {
	var rec TimeRecord
	err := r.db.WithContext(ctx).
		Preload("Breaks", func(db *gorm.DB) *gorm.DB {
			return db.Order("break_in ASC")
		}).
		Where("employee_id = ?", employeeID).
		Where("work_date = ?", day.Format("2006-01-02")).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) FindAllByDate(ctx context.Context, day time.Time) ([]TimeRecord, error) {
	var recs []TimeRecord
	err := r.db.WithContext(ctx).
		Preload("Breaks", func(db *gorm.DB) *gorm.DB {
			return db.Order("break_in ASC")
		}).
		Where("work_date = ?", day.Format("2006-01-02")).
		Find(&recs).Error
	return recs, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]TimeRecord, error) {
	var recs []TimeRecord
	err := r.db.WithContext(ctx).
		Preload("Breaks", func(db *gorm.DB) *gorm.DB {
			return db.Order("break_in ASC")
		}).
		Where("employee_id = ?", employeeID).
		Order("work_date DESC, clock_in DESC").
		Find(&recs).Error
	return recs, err
}

func (r *repository) FindByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]TimeRecord, error) {
	var recs []TimeRecord
	err := r.db.WithContext(ctx).
		Preload("Breaks", func(db *gorm.DB) *gorm.DB {
			return db.Order("break_in ASC")
		}).
		Where("employee_id = ?", employeeID).
		Where("work_date >= ?", start.Format("2006-01-02")).
		Where("work_date <= ?", end.Format("2006-01-02")).
		Order("work_date DESC, clock_in DESC").
		Find(&recs).Error
	return recs, err
}

func (r *repository) Update(ctx context.Context, rec *TimeRecord) error {
	// Breaks are written through AddBreak/UpdateBreak, never via Save.
	return r.db.WithContext(ctx).Omit("Breaks").Save(rec).Error
}

func (r *repository) AddBreak(ctx context.Context, b *Break) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) UpdateBreak(ctx context.Context, b *Break) error {
	return r.db.WithContext(ctx).Save(b).Error
}
