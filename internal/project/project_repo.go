package project

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/employee"
	"go-hrms/internal/shared/connection"

	"gorm.io/gorm"
)

// TaskFilter narrows task listings; zero-value fields are ignored.
type TaskFilter struct {
	EmployeeID string
	ProjectID  string
	Status     string
	Day        *time.Time
}

//go:generate mockgen -source=project_repo.go -destination=mock/project_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateProject(ctx context.Context, p *Project) error
	FindAllProjects(ctx context.Context) ([]Project, error)
	FindProjectByID(ctx context.Context, id string) (*Project, error)
	FindProjectsByEmployee(ctx context.Context, employeeID string) ([]Project, error)
	UpdateProject(ctx context.Context, p *Project) error
	ReplaceMembers(ctx context.Context, p *Project, members []employee.Employee) error
	DeleteProject(ctx context.Context, id string) error
	CountEmployees(ctx context.Context, ids []string) (int64, error)
	IsProjectMember(ctx context.Context, projectID, employeeID string) (bool, error)
	CreateTask(ctx context.Context, t *Task) error
	FindTaskByID(ctx context.Context, id string) (*Task, error)
	FindTaskForDay(ctx context.Context, employeeID, projectID string, day time.Time) (*Task, error)
	FindTasks(ctx context.Context, f TaskFilter) ([]Task, error)
	UpdateTask(ctx context.Context, t *Task) error
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

func (r *repository) CreateProject(ctx context.Context, p *Project) error {
	return r.db.WithContext(ctx).Omit("Leader", "Members.*").Create(p).Error
}

func (r *repository) FindAllProjects(ctx context.Context) ([]Project, error) {
	var ps []Project
	err := r.db.WithContext(ctx).
		Preload("Leader").
		Preload("Members").
		Order("created_at DESC").
		Find(&ps).Error
	return ps, err
}

func (r *repository) FindProjectByID(ctx context.Context, id string) (*Project, error) {
	var p Project
	err := r.db.WithContext(ctx).
		Preload("Leader").
		Preload("Members").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindProjectsByEmployee(ctx context.Context, employeeID string) ([]Project, error) {
	var ps []Project
	err := r.db.WithContext(ctx).
		Preload("Leader").
		Preload("Members").
		Where(
			"leader_id = ? OR id IN (SELECT project_id FROM project_members WHERE employee_id = ?)",
			employeeID, employeeID,
		).
		Order("created_at DESC").
		Find(&ps).Error
	return ps, err
}

func (r *repository) UpdateProject(ctx context.Context, p *Project) error {
	return r.db.WithContext(ctx).Omit("Leader", "Members").Save(p).Error
}

func (r *repository) ReplaceMembers(ctx context.Context, p *Project, members []employee.Employee) error {
	return r.db.WithContext(ctx).Model(p).Omit("Members.*").Association("Members").Replace(members)
}

func (r *repository) DeleteProject(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Project{}, "id = ?", id).Error
}

func (r *repository) CountEmployees(ctx context.Context, ids []string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id IN ?", ids).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count, err
}

func (r *repository) IsProjectMember(ctx context.Context, projectID, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("projects").
		Where("id = ?", projectID).
		Where("deleted_at IS NULL").
		Where(
			"leader_id = ? OR id IN (SELECT project_id FROM project_members WHERE employee_id = ?)",
			employeeID, employeeID,
		).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateTask(ctx context.Context, t *Task) error {
	return r.db.WithContext(ctx).Omit("Project", "Employee").Create(t).Error
}

func (r *repository) FindTaskByID(ctx context.Context, id string) (*Task, error) {
	var t Task
	err := r.db.WithContext(ctx).
		Preload("Project").
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindTaskForDay(ctx context.Context, employeeID, projectID string, day time.Time) (*Task, error) {
	var t Task
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("project_id = ?", projectID).
		Where("task_date = ?", day.Format("2006-01-02")).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindTasks(ctx context.Context, f TaskFilter) ([]Task, error) {
	db := r.db.WithContext(ctx).Preload("Project")
	if f.EmployeeID != "" {
		db = db.Where("employee_id = ?", f.EmployeeID)
	}
	if f.ProjectID != "" {
		db = db.Where("project_id = ?", f.ProjectID)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.Day != nil {
		db = db.Where("task_date = ?", f.Day.Format("2006-01-02"))
	}

	var tasks []Task
	err := db.Order("task_date DESC").Find(&tasks).Error
	return tasks, err
}

func (r *repository) UpdateTask(ctx context.Context, t *Task) error {
	return r.db.WithContext(ctx).Omit("Project", "Employee").Save(t).Error
}
