package rbac_test

import (
	"testing"

	"go-hrms/internal/domain"
	"go-hrms/internal/rbac"
	"go-hrms/internal/rbac/mock"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

func newEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()
	m, err := casbinmodel.NewModelFromString(modelText)
	require.NoError(t, err)
	e, err := casbin.NewEnforcer(m)
	require.NoError(t, err)
	return e
}

func TestRBACService_Enforce(t *testing.T) {
	ctrl := gomock.NewController(t)

	adminID := "11111111-1111-1111-1111-111111111111"
	employeeID := "22222222-2222-2222-2222-222222222222"

	repo := mock.NewMockRepository(ctrl)
	repo.EXPECT().GetEmployeeRoles().Return([]rbac.EmployeeRoleRow{
		{EmployeeID: adminID, Role: "ADMIN"},
		{EmployeeID: employeeID, Role: "EMPLOYEE"},
	}, nil).AnyTimes()
	repo.EXPECT().GetRolePermissions().Return([]rbac.RolePermissionRow{
		{Role: "ADMIN", Resource: "payroll", Action: "approve"},
		{Role: "EMPLOYEE", Resource: "attendance", Action: "read"},
	}, nil).AnyTimes()

	svc := rbac.NewService(repo, newEnforcer(t), zap.NewNop())

	allowed, err := svc.Enforce(domain.EnforceRequest{
		EmployeeID: adminID,
		Resource:   "payroll",
		Action:     "approve",
	})
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Enforce(domain.EnforceRequest{
		EmployeeID: employeeID,
		Resource:   "payroll",
		Action:     "approve",
	})
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = svc.Enforce(domain.EnforceRequest{
		EmployeeID: employeeID,
		Resource:   "attendance",
		Action:     "read",
	})
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRBACService_Enforce_PicksUpPolicyChanges(t *testing.T) {
	ctrl := gomock.NewController(t)

	employeeID := "22222222-2222-2222-2222-222222222222"

	repo := mock.NewMockRepository(ctrl)
	repo.EXPECT().GetEmployeeRoles().Return([]rbac.EmployeeRoleRow{
		{EmployeeID: employeeID, Role: "EMPLOYEE"},
	}, nil).AnyTimes()

	// First evaluation sees no permissions, the second sees the grant.
	first := repo.EXPECT().GetRolePermissions().Return(nil, nil)
	repo.EXPECT().GetRolePermissions().Return([]rbac.RolePermissionRow{
		{Role: "EMPLOYEE", Resource: "leave", Action: "create"},
	}, nil).After(first)

	svc := rbac.NewService(repo, newEnforcer(t), zap.NewNop())

	req := domain.EnforceRequest{EmployeeID: employeeID, Resource: "leave", Action: "create"}

	allowed, err := svc.Enforce(req)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = svc.Enforce(req)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRBACService_GetRolePermissions(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mock.NewMockRepository(ctrl)
	repo.EXPECT().GetPermissionsByRole("ADMIN").Return([]rbac.PermissionRow{
		{ID: "p1", Resource: "payroll", Action: "approve", Label: "Approve payroll", Category: "Payroll"},
	}, nil)

	svc := rbac.NewService(repo, newEnforcer(t), zap.NewNop())

	resp, err := svc.GetRolePermissions("ADMIN")
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", resp.Role)
	require.Len(t, resp.Permissions, 1)
	assert.Equal(t, "payroll", resp.Permissions[0].Resource)
}

func TestRBACService_UpdateRolePermissions(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mock.NewMockRepository(ctrl)
	repo.EXPECT().UpdateRolePermissions("EMPLOYEE", []string{"p1", "p2"}).Return(nil)

	svc := rbac.NewService(repo, newEnforcer(t), zap.NewNop())

	require.NoError(t, svc.UpdateRolePermissions("EMPLOYEE", []string{"p1", "p2"}))
}
