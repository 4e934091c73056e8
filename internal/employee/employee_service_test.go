package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-hrms/internal/employee"
	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/contextutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn           func(ctx context.Context, empl *employee.Employee) error
	findAllFn          func(ctx context.Context) ([]employee.Employee, error)
	findAllActiveFn    func(ctx context.Context, department string) ([]employee.Employee, error)
	findOptionsFn      func(ctx context.Context) ([]employee.Employee, error)
	findByIDFn         func(ctx context.Context, id string) (*employee.Employee, error)
	departmentExistsFn func(ctx context.Context, departmentID string) (bool, error)
	updateFn           func(ctx context.Context, empl *employee.Employee) error
	deleteFn           func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, empl *employee.Employee) error {
	return f.createFn(ctx, empl)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return f.findAllFn(ctx)
}
func (f *fakeRepo) FindAllActive(ctx context.Context, department string) ([]employee.Employee, error) {
	return f.findAllActiveFn(ctx, department)
}
func (f *fakeRepo) FindOptions(ctx context.Context) ([]employee.Employee, error) {
	return f.findOptionsFn(ctx)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) DepartmentExists(ctx context.Context, departmentID string) (bool, error) {
	return f.departmentExistsFn(ctx, departmentID)
}
func (f *fakeRepo) Update(ctx context.Context, empl *employee.Employee) error {
	return f.updateFn(ctx, empl)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

type fakeCounter struct {
	nextValue int64
	err       error
}

func (f *fakeCounter) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	return f.nextValue, f.err
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
	err     error
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	repo      *fakeRepo
	counter   *fakeCounter
	outbox    *fakeOutbox
	redisMock redismock.ClientMock
	service   employee.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	rdb, redisMock := redismock.NewClientMock()

	repo := &fakeRepo{}
	counterRepo := &fakeCounter{nextValue: 123}
	outboxRepo := &fakeOutbox{}

	svc := employee.NewServiceWithOutbox(db, repo, counterRepo, outboxRepo, rdb)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		repo:      repo,
		counter:   counterRepo,
		outbox:    outboxRepo,
		redisMock: redisMock,
		service:   svc,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestEmployeeService_Create(t *testing.T) {
	t.Run("success - auto generate employee number", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		rid := "REQ-123-ABC"
		ctx := contextutil.WithRequestID(context.Background(), rid)
		departmentID := uuid.New().String()

		req := employee.CreateEmployeeRequest{
			FullName:     "Ana Silva",
			Email:        "ana@acme.test",
			Phone:        "0812",
			Position:     "Engineer",
			HireDate:     "2026-01-01",
			DepartmentID: departmentID,
		}

		deps.repo.departmentExistsFn = func(ctx context.Context, id string) (bool, error) {
			assert.Equal(t, departmentID, id)
			return true, nil
		}
		deps.repo.createFn = func(ctx context.Context, empl *employee.Employee) error {
			assert.Equal(t, "EMP-000123", empl.EmployeeNumber)
			assert.Equal(t, employee.StatusActive, empl.EmploymentStatus)
			return nil
		}

		expectTx(t, deps.sqlMock, true)
		deps.redisMock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)

		resp, err := deps.service.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "EMP-000123", resp.EmployeeNumber)
		assert.Equal(t, "2026-01-01", resp.HireDate)

		require.Len(t, deps.outbox.created, 1)
		event := deps.outbox.created[0]
		assert.Equal(t, events.EmployeeCreatedTopic, event.Topic)
		assert.Equal(t, rid, event.RequestID)

		var payload events.EmployeeCreatedEvent
		require.NoError(t, json.Unmarshal(event.Payload, &payload))
		assert.Equal(t, rid, payload.RequestID)
		assert.Equal(t, "ana@acme.test", payload.Email)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid hire date", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(context.Background(), employee.CreateEmployeeRequest{
			FullName: "Ana",
			Email:    "ana@acme.test",
			HireDate: "01-01-2026",
		})
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
	})

	t.Run("department not found -> rollback", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.departmentExistsFn = func(ctx context.Context, id string) (bool, error) {
			return false, nil
		}

		expectTx(t, deps.sqlMock, false)
		_, err := deps.service.Create(context.Background(), employee.CreateEmployeeRequest{
			FullName:     "Ana",
			Email:        "ana@acme.test",
			HireDate:     "2026-01-01",
			DepartmentID: uuid.New().String(),
		})
		assert.ErrorIs(t, err, employeeerrors.ErrDepartmentNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate employee number -> conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.createFn = func(ctx context.Context, empl *employee.Employee) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_number"}
		}

		expectTx(t, deps.sqlMock, false)
		_, err := deps.service.Create(context.Background(), employee.CreateEmployeeRequest{
			FullName:       "Ana",
			Email:          "ana@acme.test",
			EmployeeNumber: "EMP-000001",
			HireDate:       "2026-01-01",
		})
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNumberAlreadyExists)
	})

	t.Run("duplicate email -> conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.createFn = func(ctx context.Context, empl *employee.Employee) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"}
		}

		expectTx(t, deps.sqlMock, false)
		_, err := deps.service.Create(context.Background(), employee.CreateEmployeeRequest{
			FullName:       "Ana",
			Email:          "ana@acme.test",
			EmployeeNumber: "EMP-000002",
			HireDate:       "2026-01-01",
		})
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	t.Run("cache hit skips repository", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		cached := []employee.EmployeeResponse{
			{ID: uuid.New().String(), FullName: "Caca", EmployeeNumber: "EMP-000001"},
		}
		jsonResp, _ := json.Marshal(cached)
		deps.redisMock.ExpectGet(employee.EmployeeOptionsKey).SetVal(string(jsonResp))

		resp, err := deps.service.GetOptions(context.Background())
		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "Caca", resp[0].FullName)
	})

	t.Run("cache miss hits repository and fills cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.redisMock.ExpectGet(employee.EmployeeOptionsKey).RedisNil()

		roster := []employee.Employee{
			{ID: uuid.New(), FullName: "Deni", EmployeeNumber: "EMP-000002"},
		}
		deps.repo.findOptionsFn = func(ctx context.Context) ([]employee.Employee, error) {
			return roster, nil
		}

		expected, _ := json.Marshal([]employee.EmployeeResponse{
			{
				ID:             roster[0].ID.String(),
				EmployeeNumber: "EMP-000002",
				FullName:       "Deni",
				HireDate:       time.Time{}.Format("2006-01-02"),
			},
		})
		deps.redisMock.ExpectSet(employee.EmployeeOptionsKey, expected, 1*time.Hour).SetVal("OK")

		resp, err := deps.service.GetOptions(context.Background())
		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "Deni", resp[0].FullName)
	})

	t.Run("repository error propagates", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.redisMock.ExpectGet(employee.EmployeeOptionsKey).RedisNil()
		deps.repo.findOptionsFn = func(ctx context.Context) ([]employee.Employee, error) {
			return nil, errors.New("database connection lost")
		}

		resp, err := deps.service.GetOptions(context.Background())
		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		targetID := uuid.New()
		req := employee.UpdateEmployeeRequest{
			FullName: "Ana Updated",
			Email:    "ana.updated@acme.test",
			HireDate: "2026-01-03",
		}

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: targetID, FullName: "Ana"}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, empl *employee.Employee) error {
			assert.Equal(t, req.FullName, empl.FullName)
			assert.Equal(t, targetID, empl.ID)
			return nil
		}

		expectTx(t, deps.sqlMock, true)
		deps.redisMock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)

		resp, err := deps.service.Update(context.Background(), targetID.String(), req)
		require.NoError(t, err)
		assert.Equal(t, req.FullName, resp.FullName)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Update(context.Background(), "nope", employee.UpdateEmployeeRequest{})
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		targetID := uuid.New().String()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: uuid.MustParse(targetID)}, nil
		}
		deps.repo.deleteFn = func(ctx context.Context, id string) error {
			assert.Equal(t, targetID, id)
			return nil
		}

		expectTx(t, deps.sqlMock, true)
		deps.redisMock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)

		err := deps.service.Delete(context.Background(), targetID)
		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		}

		expectTx(t, deps.sqlMock, false)
		err := deps.service.Delete(context.Background(), uuid.New().String())
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
