package department_test

import (
	"context"
	"database/sql"
	"testing"

	"go-hrms/internal/department"
	departmenterrors "go-hrms/internal/department/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn     func(ctx context.Context, dept *department.Department) error
	findAllFn    func(ctx context.Context) ([]department.Department, error)
	findByIDFn   func(ctx context.Context, id string) (*department.Department, error)
	findByNameFn func(ctx context.Context, name string) (*department.Department, error)
	updateFn     func(ctx context.Context, dept *department.Department) error
	deleteFn     func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) department.Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, dept *department.Department) error {
	return f.createFn(ctx, dept)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]department.Department, error) {
	return f.findAllFn(ctx)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*department.Department, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByName(ctx context.Context, name string) (*department.Department, error) {
	return f.findByNameFn(ctx, name)
}
func (f *fakeRepo) Update(ctx context.Context, dept *department.Department) error {
	return f.updateFn(ctx, dept)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func newTestService(t *testing.T, repo department.Repository) (department.Service, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	svc := department.NewService(db, repo)
	return svc, mock, func() { db.Close() }
}

func TestDepartmentService_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &fakeRepo{
			findByNameFn: func(ctx context.Context, name string) (*department.Department, error) {
				return nil, gorm.ErrRecordNotFound
			},
			createFn: func(ctx context.Context, dept *department.Department) error {
				assert.Equal(t, "Engineering", dept.Name)
				assert.NotEqual(t, uuid.Nil, dept.ID)
				return nil
			},
		}
		svc, mock, closeDB := newTestService(t, repo)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.Create(context.Background(), department.CreateDepartmentRequest{
			Name:        "Engineering",
			Description: "builds the product",
		})
		require.NoError(t, err)
		assert.Equal(t, "Engineering", resp.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		repo := &fakeRepo{
			findByNameFn: func(ctx context.Context, name string) (*department.Department, error) {
				return &department.Department{ID: uuid.New(), Name: name}, nil
			},
		}
		svc, mock, closeDB := newTestService(t, repo)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.Create(context.Background(), department.CreateDepartmentRequest{Name: "Engineering"})
		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNameUsed)
	})
}

func TestDepartmentService_Update(t *testing.T) {
	deptID := uuid.New()

	t.Run("success", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*department.Department, error) {
				return &department.Department{ID: deptID, Name: "Engineering"}, nil
			},
			updateFn: func(ctx context.Context, dept *department.Department) error {
				assert.Equal(t, "Platform", dept.Name)
				return nil
			},
		}
		svc, mock, closeDB := newTestService(t, repo)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.Update(context.Background(), deptID.String(), department.UpdateDepartmentRequest{Name: "Platform"})
		require.NoError(t, err)
		assert.Equal(t, "Platform", resp.Name)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc, _, closeDB := newTestService(t, &fakeRepo{})
		defer closeDB()

		_, err := svc.Update(context.Background(), "nope", department.UpdateDepartmentRequest{Name: "Platform"})
		assert.ErrorIs(t, err, departmenterrors.ErrInvalidDepartmentID)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*department.Department, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc, mock, closeDB := newTestService(t, repo)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.Update(context.Background(), deptID.String(), department.UpdateDepartmentRequest{Name: "Platform"})
		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}

func TestDepartmentService_Delete(t *testing.T) {
	deptID := uuid.New()

	t.Run("success", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*department.Department, error) {
				return &department.Department{ID: deptID}, nil
			},
			deleteFn: func(ctx context.Context, id string) error {
				assert.Equal(t, deptID.String(), id)
				return nil
			},
		}
		svc, mock, closeDB := newTestService(t, repo)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectCommit()
		require.NoError(t, svc.Delete(context.Background(), deptID.String()))
	})

	t.Run("not found", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*department.Department, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc, mock, closeDB := newTestService(t, repo)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectRollback()
		assert.ErrorIs(t, svc.Delete(context.Background(), deptID.String()), departmenterrors.ErrDepartmentNotFound)
	})
}
