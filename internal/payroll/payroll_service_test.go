package payroll

import (
	"context"
	"database/sql"
	"testing"
	"time"

	payrollerrors "go-hrms/internal/payroll/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn               func(ctx context.Context, p *Payroll) error
	findAllFn              func(ctx context.Context) ([]Payroll, error)
	findByEmployeeFn       func(ctx context.Context, employeeID string) ([]Payroll, error)
	findByIDFn             func(ctx context.Context, id string) (*Payroll, error)
	updateFn               func(ctx context.Context, p *Payroll) error
	deleteFn               func(ctx context.Context, id string) error
	employeeExistsFn       func(ctx context.Context, employeeID string) (bool, error)
	hasOverlappingPeriodFn func(ctx context.Context, employeeID string, periodStart, periodEnd time.Time, excludePayrollID *string) (bool, error)
	sumOvertimeHoursFn     func(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (float64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, p *Payroll) error {
	return f.createFn(ctx, p)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]Payroll, error) {
	return f.findAllFn(ctx)
}
func (f *fakeRepo) FindByEmployee(ctx context.Context, employeeID string) ([]Payroll, error) {
	return f.findByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Payroll, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, p *Payroll) error {
	return f.updateFn(ctx, p)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}
func (f *fakeRepo) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	return f.employeeExistsFn(ctx, employeeID)
}
func (f *fakeRepo) HasOverlappingPeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time, excludePayrollID *string) (bool, error) {
	return f.hasOverlappingPeriodFn(ctx, employeeID, periodStart, periodEnd, excludePayrollID)
}
func (f *fakeRepo) SumOvertimeHours(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (float64, error) {
	return f.sumOvertimeHoursFn(ctx, employeeID, periodStart, periodEnd)
}

func newTestService(t *testing.T, repo Repository) (Service, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	svc := NewService(db, repo, zap.NewNop())
	return svc, mock, func() { db.Close() }
}

func TestPayrollService_Generate(t *testing.T) {
	actorID := uuid.New().String()
	employeeID := uuid.New().String()

	baseReq := CreatePayrollRequest{
		EmployeeID:   employeeID,
		Period:       "2025-07",
		BaseSalary:   500000, // cents
		Allowance:    50000,
		OvertimeRate: 3000, // cents per hour
		Deduction:    20000,
	}

	t.Run("success with overtime", func(t *testing.T) {
		repo := &fakeRepo{
			employeeExistsFn: func(ctx context.Context, id string) (bool, error) { return true, nil },
			hasOverlappingPeriodFn: func(ctx context.Context, id string, start, end time.Time, exclude *string) (bool, error) {
				assert.Equal(t, "2025-07-01", start.Format("2006-01-02"))
				assert.Equal(t, "2025-07-31", end.Format("2006-01-02"))
				return false, nil
			},
			sumOvertimeHoursFn: func(ctx context.Context, id string, start, end time.Time) (float64, error) {
				return 10.5, nil
			},
			createFn: func(ctx context.Context, p *Payroll) error {
				assert.Equal(t, StatusDraft, p.Status)
				assert.Equal(t, int64(1050), p.OvertimeHundredths)
				assert.Equal(t, int64(31500), p.OvertimeAmount)
				assert.Equal(t, int64(561500), p.NetSalary)
				return nil
			},
		}
		svc, mock, closeDB := newTestService(t, repo)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.Generate(context.Background(), actorID, baseReq)
		require.NoError(t, err)
		assert.Equal(t, "2025-07-01", resp.PeriodStart)
		assert.Equal(t, "2025-07-31", resp.PeriodEnd)
		assert.Equal(t, 10.5, resp.OvertimeHours)
		assert.Equal(t, int64(561500), resp.NetSalary)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid period", func(t *testing.T) {
		svc, _, closeDB := newTestService(t, &fakeRepo{})
		defer closeDB()

		req := baseReq
		req.Period = "July 2025"
		_, err := svc.Generate(context.Background(), actorID, req)
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriodFormat)
	})

	t.Run("negative money rejected", func(t *testing.T) {
		svc, _, closeDB := newTestService(t, &fakeRepo{})
		defer closeDB()

		req := baseReq
		req.Deduction = -1
		_, err := svc.Generate(context.Background(), actorID, req)
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidMoneyValue)
	})

	t.Run("overlapping period rejected", func(t *testing.T) {
		repo := &fakeRepo{
			employeeExistsFn: func(ctx context.Context, id string) (bool, error) { return true, nil },
			hasOverlappingPeriodFn: func(ctx context.Context, id string, start, end time.Time, exclude *string) (bool, error) {
				return true, nil
			},
		}
		svc, mock, closeDB := newTestService(t, repo)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.Generate(context.Background(), actorID, baseReq)
		assert.ErrorIs(t, err, payrollerrors.ErrPayrollOverlap)
	})

	t.Run("unknown employee rejected", func(t *testing.T) {
		repo := &fakeRepo{
			employeeExistsFn: func(ctx context.Context, id string) (bool, error) { return false, nil },
		}
		svc, mock, closeDB := newTestService(t, repo)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.Generate(context.Background(), actorID, baseReq)
		assert.ErrorIs(t, err, payrollerrors.ErrEmployeeNotFound)
	})
}

func TestPayrollService_Transitions(t *testing.T) {
	actorID := uuid.New()
	payrollID := uuid.New()

	draft := func() *Payroll {
		return &Payroll{
			ID:          payrollID,
			EmployeeID:  uuid.New(),
			PeriodStart: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			PeriodEnd:   time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
			BaseSalary:  500000,
			NetSalary:   500000,
			Status:      StatusDraft,
			CreatedBy:   actorID,
		}
	}

	t.Run("approve draft", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*Payroll, error) { return draft(), nil },
			updateFn: func(ctx context.Context, p *Payroll) error {
				assert.Equal(t, StatusApproved, p.Status)
				assert.NotNil(t, p.ApprovedBy)
				assert.NotNil(t, p.ApprovedAt)
				return nil
			},
		}
		svc, mock, closeDB := newTestService(t, repo)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.Approve(context.Background(), actorID.String(), payrollID.String())
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, resp.Status)
	})

	t.Run("pay approved", func(t *testing.T) {
		approved := draft()
		approved.Status = StatusApproved
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*Payroll, error) { return approved, nil },
			updateFn: func(ctx context.Context, p *Payroll) error {
				assert.Equal(t, StatusPaid, p.Status)
				assert.NotNil(t, p.PaidAt)
				return nil
			},
		}
		svc, mock, closeDB := newTestService(t, repo)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.MarkAsPaid(context.Background(), payrollID.String())
		require.NoError(t, err)
		assert.Equal(t, StatusPaid, resp.Status)
		assert.NotNil(t, resp.PaidAt)
	})

	t.Run("pay draft rejected", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*Payroll, error) { return draft(), nil },
		}
		svc, mock, closeDB := newTestService(t, repo)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.MarkAsPaid(context.Background(), payrollID.String())
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)
	})

	t.Run("cancel draft", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*Payroll, error) { return draft(), nil },
			updateFn: func(ctx context.Context, p *Payroll) error {
				assert.Equal(t, StatusCanceled, p.Status)
				return nil
			},
		}
		svc, mock, closeDB := newTestService(t, repo)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.Cancel(context.Background(), payrollID.String())
		require.NoError(t, err)
		assert.Equal(t, StatusCanceled, resp.Status)
	})

	t.Run("cancel approved", func(t *testing.T) {
		approved := draft()
		approved.Status = StatusApproved
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*Payroll, error) { return approved, nil },
			updateFn: func(ctx context.Context, p *Payroll) error {
				assert.Equal(t, StatusCanceled, p.Status)
				return nil
			},
		}
		svc, mock, closeDB := newTestService(t, repo)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.Cancel(context.Background(), payrollID.String())
		require.NoError(t, err)
		assert.Equal(t, StatusCanceled, resp.Status)
	})

	t.Run("cancel paid rejected", func(t *testing.T) {
		paid := draft()
		paid.Status = StatusPaid
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*Payroll, error) { return paid, nil },
		}
		svc, mock, closeDB := newTestService(t, repo)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.Cancel(context.Background(), payrollID.String())
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)
	})

	t.Run("approve paid rejected", func(t *testing.T) {
		paid := draft()
		paid.Status = StatusPaid
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*Payroll, error) { return paid, nil },
		}
		svc, mock, closeDB := newTestService(t, repo)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.Approve(context.Background(), actorID.String(), payrollID.String())
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)
	})
}

func TestPayrollService_Regenerate(t *testing.T) {
	payrollID := uuid.New()

	t.Run("draft recomputed", func(t *testing.T) {
		p := &Payroll{
			ID:           payrollID,
			EmployeeID:   uuid.New(),
			PeriodStart:  time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			PeriodEnd:    time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
			BaseSalary:   500000,
			OvertimeRate: 3000,
			Status:       StatusDraft,
		}
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*Payroll, error) { return p, nil },
			sumOvertimeHoursFn: func(ctx context.Context, id string, start, end time.Time) (float64, error) {
				return 2.0, nil
			},
			updateFn: func(ctx context.Context, updated *Payroll) error {
				assert.Equal(t, int64(200), updated.OvertimeHundredths)
				assert.Equal(t, int64(6000), updated.OvertimeAmount)
				assert.Equal(t, int64(506000), updated.NetSalary)
				return nil
			},
		}
		svc, mock, closeDB := newTestService(t, repo)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.Regenerate(context.Background(), payrollID.String())
		require.NoError(t, err)
		assert.Equal(t, 2.0, resp.OvertimeHours)
		assert.Equal(t, int64(506000), resp.NetSalary)
	})

	t.Run("non-draft rejected", func(t *testing.T) {
		approved := &Payroll{ID: payrollID, Status: StatusApproved}
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*Payroll, error) { return approved, nil },
		}
		svc, mock, closeDB := newTestService(t, repo)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.Regenerate(context.Background(), payrollID.String())
		assert.ErrorIs(t, err, payrollerrors.ErrRegenerateOnlyDraft)
	})
}

func TestPayrollService_Delete(t *testing.T) {
	payrollID := uuid.New()

	t.Run("draft deleted", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*Payroll, error) {
				return &Payroll{ID: payrollID, Status: StatusDraft}, nil
			},
			deleteFn: func(ctx context.Context, id string) error {
				assert.Equal(t, payrollID.String(), id)
				return nil
			},
		}
		svc, mock, closeDB := newTestService(t, repo)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectCommit()
		err := svc.Delete(context.Background(), payrollID.String())
		require.NoError(t, err)
	})

	t.Run("paid rejected", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*Payroll, error) {
				return &Payroll{ID: payrollID, Status: StatusPaid}, nil
			},
		}
		svc, mock, closeDB := newTestService(t, repo)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectRollback()
		err := svc.Delete(context.Background(), payrollID.String())
		assert.ErrorIs(t, err, payrollerrors.ErrDeleteOnlyDraft)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*Payroll, error) { return nil, gorm.ErrRecordNotFound },
		}
		svc, mock, closeDB := newTestService(t, repo)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectRollback()
		err := svc.Delete(context.Background(), payrollID.String())
		assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
	})
}
