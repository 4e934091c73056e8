package project

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-hrms/internal/employee"
	projecterrors "go-hrms/internal/project/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=project_service.go -destination=mock/project_service_mock.go -package=mock
type Service interface {
	CreateProject(ctx context.Context, req CreateProjectRequest) (ProjectResponse, error)
	GetAllProjects(ctx context.Context) ([]ProjectResponse, error)
	GetMyProjects(ctx context.Context, employeeID string) ([]ProjectResponse, error)
	UpdateProject(ctx context.Context, id string, req UpdateProjectRequest) (ProjectResponse, error)
	DeleteProject(ctx context.Context, id string) error
	LogTask(ctx context.Context, employeeID string, req CreateTaskRequest) (TaskResponse, error)
	UpdateTask(ctx context.Context, employeeID, taskID string, req UpdateTaskRequest) (TaskResponse, error)
	GetMyTasks(ctx context.Context, employeeID string, q TaskListQuery) ([]TaskResponse, error)
	GetProjectTasks(ctx context.Context, projectID string, q TaskListQuery) ([]TaskResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("project.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("project.service")
	}
	return &service{db: db, repo: repo, logger: l, now: time.Now}
}

func (s *service) CreateProject(ctx context.Context, req CreateProjectRequest) (ProjectResponse, error) {
	leaderUUID, err := uuid.Parse(req.LeaderID)
	if err != nil {
		return ProjectResponse{}, projecterrors.ErrInvalidEmployeeID
	}
	members, err := parseMembers(req.MemberIDs)
	if err != nil {
		return ProjectResponse{}, err
	}

	status := req.Status
	if status == "" {
		status = StatusActive
	}
	if !IsValidProjectStatus(status) {
		return ProjectResponse{}, projecterrors.ErrInvalidProjectStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProjectResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := s.checkEmployeesExist(ctx, qtx, []string{req.LeaderID}, projecterrors.ErrLeaderNotFound); err != nil {
		return ProjectResponse{}, err
	}
	if len(req.MemberIDs) > 0 {
		if err := s.checkEmployeesExist(ctx, qtx, req.MemberIDs, projecterrors.ErrMemberNotFound); err != nil {
			return ProjectResponse{}, err
		}
	}

	p := &Project{
		ID:       uuid.New(),
		Name:     req.Name,
		LeaderID: leaderUUID,
		Members:  members,
		Status:   status,
	}
	if err := qtx.CreateProject(ctx, p); err != nil {
		s.logger.Error("create project persist failed", zap.Error(err))
		return ProjectResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ProjectResponse{}, err
	}

	s.logger.Info("create project success",
		zap.String("project_id", p.ID.String()),
		zap.String("leader_id", req.LeaderID),
		zap.Int("members", len(members)),
	)
	return s.fetchProject(ctx, p.ID.String())
}

func (s *service) GetAllProjects(ctx context.Context) ([]ProjectResponse, error) {
	ps, err := s.repo.FindAllProjects(ctx)
	if err != nil {
		return nil, err
	}
	return mapToProjectListResponse(ps), nil
}

func (s *service) GetMyProjects(ctx context.Context, employeeID string) ([]ProjectResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, projecterrors.ErrInvalidEmployeeID
	}
	ps, err := s.repo.FindProjectsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToProjectListResponse(ps), nil
}

func (s *service) UpdateProject(ctx context.Context, id string, req UpdateProjectRequest) (ProjectResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ProjectResponse{}, projecterrors.ErrInvalidProjectID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProjectResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindProjectByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProjectResponse{}, projecterrors.ErrProjectNotFound
		}
		return ProjectResponse{}, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Status != nil {
		if !IsValidProjectStatus(*req.Status) {
			return ProjectResponse{}, projecterrors.ErrInvalidProjectStatus
		}
		p.Status = *req.Status
	}
	if req.LeaderID != nil {
		leaderUUID, err := uuid.Parse(*req.LeaderID)
		if err != nil {
			return ProjectResponse{}, projecterrors.ErrInvalidEmployeeID
		}
		if err := s.checkEmployeesExist(ctx, qtx, []string{*req.LeaderID}, projecterrors.ErrLeaderNotFound); err != nil {
			return ProjectResponse{}, err
		}
		p.LeaderID = leaderUUID
	}

	if err := qtx.UpdateProject(ctx, p); err != nil {
		return ProjectResponse{}, err
	}

	if req.MemberIDs != nil {
		members, err := parseMembers(*req.MemberIDs)
		if err != nil {
			return ProjectResponse{}, err
		}
		if len(*req.MemberIDs) > 0 {
			if err := s.checkEmployeesExist(ctx, qtx, *req.MemberIDs, projecterrors.ErrMemberNotFound); err != nil {
				return ProjectResponse{}, err
			}
		}
		if err := qtx.ReplaceMembers(ctx, p, members); err != nil {
			return ProjectResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return ProjectResponse{}, err
	}

	s.logger.Info("update project success", zap.String("project_id", id))
	return s.fetchProject(ctx, id)
}

func (s *service) DeleteProject(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return projecterrors.ErrInvalidProjectID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindProjectByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return projecterrors.ErrProjectNotFound
		}
		return err
	}
	if err := qtx.DeleteProject(ctx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete project success", zap.String("project_id", id))
	return nil
}

// LogTask creates the employee's work log for today on one project. One
// log per employee per project per day; later edits go through UpdateTask.
func (s *service) LogTask(ctx context.Context, employeeID string, req CreateTaskRequest) (TaskResponse, error) {
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return TaskResponse{}, projecterrors.ErrInvalidEmployeeID
	}
	projectUUID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return TaskResponse{}, projecterrors.ErrInvalidProjectID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	member, err := qtx.IsProjectMember(ctx, req.ProjectID, employeeID)
	if err != nil {
		return TaskResponse{}, err
	}
	if !member {
		s.logger.Warn("task log rejected, not a project member",
			zap.String("employee_id", employeeID),
			zap.String("project_id", req.ProjectID),
		)
		return TaskResponse{}, projecterrors.ErrNotProjectMember
	}

	today := dayOf(s.now())
	if _, err := qtx.FindTaskForDay(ctx, employeeID, req.ProjectID, today); err == nil {
		return TaskResponse{}, projecterrors.ErrTaskAlreadyLogged
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return TaskResponse{}, err
	}

	task := &Task{
		ID:          uuid.New(),
		ProjectID:   projectUUID,
		EmployeeID:  empUUID,
		TaskDate:    today,
		Description: req.Description,
		Status:      TaskStatusNotStarted,
	}
	if err := qtx.CreateTask(ctx, task); err != nil {
		return TaskResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TaskResponse{}, err
	}

	s.logger.Info("task logged",
		zap.String("task_id", task.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("project_id", req.ProjectID),
	)
	return mapToTaskResponse(*task), nil
}

// UpdateTask edits the caller's own task, and only while it is today's.
func (s *service) UpdateTask(ctx context.Context, employeeID, taskID string, req UpdateTaskRequest) (TaskResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return TaskResponse{}, projecterrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	task, err := qtx.FindTaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskResponse{}, projecterrors.ErrTaskNotFound
		}
		return TaskResponse{}, err
	}
	// Someone else's task reads as absent rather than forbidden.
	if task.EmployeeID.String() != employeeID {
		return TaskResponse{}, projecterrors.ErrTaskNotFound
	}
	if task.TaskDate.Format("2006-01-02") != dayOf(s.now()).Format("2006-01-02") {
		return TaskResponse{}, projecterrors.ErrTaskNotToday
	}

	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		if !IsValidTaskStatus(*req.Status) {
			return TaskResponse{}, projecterrors.ErrInvalidTaskStatus
		}
		task.Status = *req.Status
	}
	if req.Comments != nil {
		task.Comments = *req.Comments
	}

	if err := qtx.UpdateTask(ctx, task); err != nil {
		return TaskResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TaskResponse{}, err
	}

	s.logger.Info("task updated",
		zap.String("task_id", taskID),
		zap.String("status", task.Status),
	)
	return mapToTaskResponse(*task), nil
}

func (s *service) GetMyTasks(ctx context.Context, employeeID string, q TaskListQuery) ([]TaskResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, projecterrors.ErrInvalidEmployeeID
	}
	filter, err := buildTaskFilter(q)
	if err != nil {
		return nil, err
	}
	filter.EmployeeID = employeeID

	tasks, err := s.repo.FindTasks(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapToTaskListResponse(tasks), nil
}

func (s *service) GetProjectTasks(ctx context.Context, projectID string, q TaskListQuery) ([]TaskResponse, error) {
	if _, err := uuid.Parse(projectID); err != nil {
		return nil, projecterrors.ErrInvalidProjectID
	}
	filter, err := buildTaskFilter(q)
	if err != nil {
		return nil, err
	}
	filter.ProjectID = projectID

	tasks, err := s.repo.FindTasks(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapToTaskListResponse(tasks), nil
}

func (s *service) checkEmployeesExist(ctx context.Context, repo Repository, ids []string, missing error) error {
	count, err := repo.CountEmployees(ctx, ids)
	if err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return missing
	}
	return nil
}

func (s *service) fetchProject(ctx context.Context, id string) (ProjectResponse, error) {
	p, err := s.repo.FindProjectByID(ctx, id)
	if err != nil {
		return ProjectResponse{}, err
	}
	return mapToProjectResponse(*p), nil
}

func parseMembers(ids []string) ([]employee.Employee, error) {
	members := make([]employee.Employee, 0, len(ids))
	for _, id := range ids {
		memberUUID, err := uuid.Parse(id)
		if err != nil {
			return nil, projecterrors.ErrInvalidEmployeeID
		}
		members = append(members, employee.Employee{ID: memberUUID})
	}
	return members, nil
}

func buildTaskFilter(q TaskListQuery) (TaskFilter, error) {
	filter := TaskFilter{Status: q.Status, ProjectID: q.ProjectID}
	if q.Date != "" {
		day, err := time.Parse("2006-01-02", q.Date)
		if err != nil {
			return TaskFilter{}, projecterrors.ErrInvalidDateFormat
		}
		filter.Day = &day
	}
	return filter, nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func mapToProjectResponse(p Project) ProjectResponse {
	resp := ProjectResponse{
		ID:      p.ID.String(),
		Name:    p.Name,
		Status:  p.Status,
		Members: make([]MemberInfo, len(p.Members)),
	}
	if p.Leader != nil {
		resp.Leader = &MemberInfo{
			ID:    p.Leader.ID.String(),
			Name:  p.Leader.FullName,
			Email: p.Leader.Email,
		}
	}
	for i, m := range p.Members {
		resp.Members[i] = MemberInfo{ID: m.ID.String(), Name: m.FullName, Email: m.Email}
	}
	return resp
}

func mapToProjectListResponse(ps []Project) []ProjectResponse {
	resp := make([]ProjectResponse, len(ps))
	for i, p := range ps {
		resp[i] = mapToProjectResponse(p)
	}
	return resp
}

func mapToTaskResponse(t Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID.String(),
		ProjectID:   t.ProjectID.String(),
		EmployeeID:  t.EmployeeID.String(),
		Date:        t.TaskDate.Format("2006-01-02"),
		Description: t.Description,
		Status:      t.Status,
		Comments:    t.Comments,
	}
	if t.Project != nil {
		resp.ProjectName = t.Project.Name
	}
	return resp
}

func mapToTaskListResponse(tasks []Task) []TaskResponse {
	resp := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = mapToTaskResponse(t)
	}
	return resp
}
