package rbac

import (
	"sync"

	"go-hrms/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadPolicy() error
	Enforce(req domain.EnforceRequest) (bool, error)

	ListPermissions() ([]domain.PermissionResponse, error)
	GetRolePermissions(role string) (domain.RolePermissionsResponse, error)
	UpdateRolePermissions(role string, permIDs []string) error
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	logger   *zap.Logger
	mu       sync.Mutex
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

func (s *service) LoadPolicy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadPolicyUnlocked()
}

func (s *service) loadPolicyUnlocked() error {
	s.enforcer.ClearPolicy()

	employeeRoles, err := s.repo.GetEmployeeRoles()
	if err != nil {
		return err
	}
	s.logger.Debug("rbac load policy", zap.Int("employee_roles", len(employeeRoles)))

	for _, er := range employeeRoles {
		if _, err := s.enforcer.AddGroupingPolicy(er.EmployeeID, er.Role); err != nil {
			return err
		}
	}

	rolePerms, err := s.repo.GetRolePermissions()
	if err != nil {
		return err
	}
	s.logger.Debug("rbac load policy", zap.Int("role_permissions", len(rolePerms)))

	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.Role, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	return nil
}

// Enforce reloads the policy before evaluating so role or permission
// changes take effect without a restart.
func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadPolicyUnlocked(); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(req.EmployeeID, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("employee_id", req.EmployeeID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)

	return allowed, nil
}

func (s *service) ListPermissions() ([]domain.PermissionResponse, error) {
	rows, err := s.repo.ListPermissions()
	if err != nil {
		return nil, err
	}
	return mapPermissions(rows), nil
}

func (s *service) GetRolePermissions(role string) (domain.RolePermissionsResponse, error) {
	rows, err := s.repo.GetPermissionsByRole(role)
	if err != nil {
		return domain.RolePermissionsResponse{}, err
	}
	return domain.RolePermissionsResponse{
		Role:        role,
		Permissions: mapPermissions(rows),
	}, nil
}

func (s *service) UpdateRolePermissions(role string, permIDs []string) error {
	if err := s.repo.UpdateRolePermissions(role, permIDs); err != nil {
		return err
	}
	s.logger.Info("rbac role permissions updated",
		zap.String("role", role),
		zap.Int("permissions", len(permIDs)),
	)
	return nil
}

func mapPermissions(rows []PermissionRow) []domain.PermissionResponse {
	res := make([]domain.PermissionResponse, len(rows))
	for i, p := range rows {
		res[i] = domain.PermissionResponse{
			ID:       p.ID,
			Resource: p.Resource,
			Action:   p.Action,
			Label:    p.Label,
			Category: p.Category,
		}
	}
	return res
}
