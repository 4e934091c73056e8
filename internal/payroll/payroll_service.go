package payroll

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	payrollerrors "go-hrms/internal/payroll/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, actorID string, req CreatePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context) ([]PayrollResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]PayrollResponse, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	Regenerate(ctx context.Context, id string) (PayrollResponse, error)
	Approve(ctx context.Context, actorID, id string) (PayrollResponse, error)
	MarkAsPaid(ctx context.Context, id string) (PayrollResponse, error)
	Cancel(ctx context.Context, id string) (PayrollResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// Generate builds one payroll row for a YYYY-MM period. Overtime pay is
// derived from the finalized attendance records inside the period.
func (s *service) Generate(ctx context.Context, actorID string, req CreatePayrollRequest) (PayrollResponse, error) {
	s.logger.Debug("generate payroll requested",
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("period", req.Period),
	)

	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}
	periodStart, periodEnd, err := parsePeriod(req.Period)
	if err != nil {
		return PayrollResponse{}, err
	}
	if req.BaseSalary < 0 || req.Allowance < 0 || req.Deduction < 0 || req.OvertimeRate < 0 {
		return PayrollResponse{}, payrollerrors.ErrInvalidMoneyValue
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("generate payroll begin tx failed", zap.Error(err))
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return PayrollResponse{}, err
	}
	if !exists {
		return PayrollResponse{}, payrollerrors.ErrEmployeeNotFound
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, req.EmployeeID, periodStart, periodEnd, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	if overlap {
		s.logger.Warn("generate payroll overlap detected",
			zap.String("employee_id", req.EmployeeID),
			zap.String("period", req.Period),
		)
		return PayrollResponse{}, payrollerrors.ErrPayrollOverlap
	}

	overtimeHours, err := qtx.SumOvertimeHours(ctx, req.EmployeeID, periodStart, periodEnd)
	if err != nil {
		return PayrollResponse{}, err
	}

	p := &Payroll{
		ID:           uuid.New(),
		EmployeeID:   employeeUUID,
		PeriodStart:  periodStart,
		PeriodEnd:    periodEnd,
		BaseSalary:   req.BaseSalary,
		Allowance:    req.Allowance,
		OvertimeRate: req.OvertimeRate,
		Deduction:    req.Deduction,
		Status:       StatusDraft,
		CreatedBy:    createdByUUID,
	}
	applyOvertime(p, overtimeHours)

	if err := qtx.Create(ctx, p); err != nil {
		s.logger.Error("generate payroll persist failed", zap.Error(err))
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("generate payroll success",
		zap.String("payroll_id", p.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int64("net_salary", p.NetSalary),
	)
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]PayrollResponse, error) {
	payrolls, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(payrolls), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]PayrollResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, payrollerrors.ErrInvalidEmployeeID
	}
	payrolls, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(payrolls), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	return mapToResponse(*p), nil
}

// Regenerate recomputes the overtime part of a draft from the current
// attendance data.
func (s *service) Regenerate(ctx context.Context, id string) (PayrollResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	if p.Status != StatusDraft {
		return PayrollResponse{}, payrollerrors.ErrRegenerateOnlyDraft
	}

	overtimeHours, err := qtx.SumOvertimeHours(ctx, p.EmployeeID.String(), p.PeriodStart, p.PeriodEnd)
	if err != nil {
		return PayrollResponse{}, err
	}
	applyOvertime(p, overtimeHours)

	if err := qtx.Update(ctx, p); err != nil {
		return PayrollResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("regenerate payroll success",
		zap.String("payroll_id", id),
		zap.Int64("net_salary", p.NetSalary),
	)
	return mapToResponse(*p), nil
}

func (s *service) Approve(ctx context.Context, actorID, id string) (PayrollResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}

	return s.transitionStatus(ctx, id, StatusApproved, func(p *Payroll) {
		now := time.Now().UTC()
		p.ApprovedBy = &actorUUID
		p.ApprovedAt = &now
	})
}

func (s *service) MarkAsPaid(ctx context.Context, id string) (PayrollResponse, error) {
	return s.transitionStatus(ctx, id, StatusPaid, func(p *Payroll) {
		now := time.Now().UTC()
		p.PaidAt = &now
	})
}

// Cancel voids a payroll that has not been paid out yet.
func (s *service) Cancel(ctx context.Context, id string) (PayrollResponse, error) {
	return s.transitionStatus(ctx, id, StatusCanceled, func(p *Payroll) {})
}

func (s *service) transitionStatus(ctx context.Context, id, targetStatus string, apply func(*Payroll)) (PayrollResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	if !isAllowedStatusTransition(p.Status, targetStatus) {
		s.logger.Warn("transition payroll status invalid",
			zap.String("payroll_id", id),
			zap.String("from_status", p.Status),
			zap.String("to_status", targetStatus),
		)
		return PayrollResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	p.Status = targetStatus
	apply(p)

	if err := qtx.Update(ctx, p); err != nil {
		return PayrollResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("transition payroll status success",
		zap.String("payroll_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*p), nil
}

func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	switch currentStatus {
	case StatusDraft:
		return targetStatus == StatusApproved || targetStatus == StatusCanceled
	case StatusApproved:
		return targetStatus == StatusPaid || targetStatus == StatusCanceled
	default:
		return false
	}
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return payrollerrors.ErrPayrollNotFound
		}
		return err
	}
	if p.Status != StatusDraft {
		return payrollerrors.ErrDeleteOnlyDraft
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func applyOvertime(p *Payroll, overtimeHours float64) {
	p.OvertimeHundredths = int64(math.Round(overtimeHours * 100))
	p.OvertimeAmount = p.OvertimeHundredths * p.OvertimeRate / 100
	p.NetSalary = p.BaseSalary + p.Allowance + p.OvertimeAmount - p.Deduction
}

func parsePeriod(v string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", v)
	if err != nil {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidPeriodFormat
	}
	end := start.AddDate(0, 1, -1)
	return start, end, nil
}

func mapToResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:             p.ID.String(),
		EmployeeID:     p.EmployeeID.String(),
		PeriodStart:    p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:      p.PeriodEnd.Format("2006-01-02"),
		BaseSalary:     p.BaseSalary,
		Allowance:      p.Allowance,
		OvertimeHours:  float64(p.OvertimeHundredths) / 100,
		OvertimeRate:   p.OvertimeRate,
		OvertimeAmount: p.OvertimeAmount,
		Deduction:      p.Deduction,
		NetSalary:      p.NetSalary,
		Status:         p.Status,
		CreatedBy:      p.CreatedBy.String(),
	}
	if p.Employee != nil {
		resp.EmployeeName = p.Employee.FullName
	}
	if p.PaidAt != nil {
		v := p.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	if p.ApprovedBy != nil {
		v := p.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if p.ApprovedAt != nil {
		v := p.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}

func mapToListResponse(payrolls []Payroll) []PayrollResponse {
	resp := make([]PayrollResponse, len(payrolls))
	for i, p := range payrolls {
		resp[i] = mapToResponse(p)
	}
	return resp
}
