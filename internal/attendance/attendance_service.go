package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/employee"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeDirectory is the slice of the employee repository the roster
// and period views need. Satisfied by employee.Repository.
type EmployeeDirectory interface {
	FindAllActive(ctx context.Context, department string) ([]employee.Employee, error)
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (TimeRecordResponse, error)
	BreakIn(ctx context.Context, employeeID string) (TimeRecordResponse, error)
	BreakOut(ctx context.Context, employeeID string) (TimeRecordResponse, error)
	ClockOut(ctx context.Context, employeeID string) (TimeRecordResponse, error)
	GetLogs(ctx context.Context, employeeID string, q PeriodQuery) (LogsResponse, error)
	TodayStatus(ctx context.Context) (TodayStatusResponse, error)
	EmployeeAttendanceDetails(ctx context.Context, employeeID string, q PeriodQuery) (AttendanceDetailsResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees EmployeeDirectory
	outbox    kafka.OutboxRepository
	cfg       Config
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(db *sql.DB, repo Repository, employees EmployeeDirectory, cfg Config, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, employees, nil, cfg, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	employees EmployeeDirectory,
	outboxRepo kafka.OutboxRepository,
	cfg Config,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		outbox:    outboxRepo,
		cfg:       cfg,
		logger:    l,
		now:       time.Now,
	}
}

func (s *service) ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (TimeRecordResponse, error) {
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return TimeRecordResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	location := req.WorkLocation
	if location == "" {
		location = LocationOffice
	}
	if !IsValidWorkLocation(location) {
		return TimeRecordResponse{}, attendanceerrors.ErrInvalidWorkLocation
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimeRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()
	today := s.cfg.StartOfDay(now)

	existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return TimeRecordResponse{}, err
	}
	if existing != nil {
		s.logger.Warn("duplicate clock-in rejected",
			zap.String("employee_id", employeeID),
			zap.String("work_date", today.Format("2006-01-02")),
		)
		return TimeRecordResponse{}, attendanceerrors.ErrAlreadyClockedIn
	}

	isLate := now.After(s.cfg.OfficeStart(today))

	rec := &TimeRecord{
		ID:            uuid.New(),
		EmployeeID:    empUUID,
		WorkDate:      today,
		ClockIn:       now,
		WorkLocation:  location,
		Status:        StatusPresent,
		IsLateArrival: isLate,
		IsOnTime:      !isLate,
	}

	if err := qtx.Create(ctx, rec); err != nil {
		return TimeRecordResponse{}, mapCreateError(err)
	}
	if err := tx.Commit(); err != nil {
		return TimeRecordResponse{}, err
	}

	s.logger.Info("clock-in recorded",
		zap.String("employee_id", employeeID),
		zap.String("record_id", rec.ID.String()),
		zap.Bool("is_late_arrival", isLate),
	)
	return mapToResponse(*rec), nil
}

func (s *service) BreakIn(ctx context.Context, employeeID string) (TimeRecordResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return TimeRecordResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimeRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()
	today := s.cfg.StartOfDay(now)

	rec, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeRecordResponse{}, attendanceerrors.ErrClockInRequired
		}
		return TimeRecordResponse{}, err
	}
	if rec.IsFinalized() {
		return TimeRecordResponse{}, attendanceerrors.ErrRecordFinalized
	}
	if rec.Status == StatusOnBreak {
		return TimeRecordResponse{}, attendanceerrors.ErrAlreadyOnBreak
	}

	b := &Break{
		ID:       uuid.New(),
		RecordID: rec.ID,
		BreakIn:  now,
	}
	if err := qtx.AddBreak(ctx, b); err != nil {
		return TimeRecordResponse{}, err
	}

	rec.Status = StatusOnBreak
	if err := qtx.Update(ctx, rec); err != nil {
		return TimeRecordResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TimeRecordResponse{}, err
	}

	rec.Breaks = append(rec.Breaks, *b)
	s.logger.Info("break started",
		zap.String("employee_id", employeeID),
		zap.String("record_id", rec.ID.String()),
	)
	return mapToResponse(*rec), nil
}

func (s *service) BreakOut(ctx context.Context, employeeID string) (TimeRecordResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return TimeRecordResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimeRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()
	today := s.cfg.StartOfDay(now)

	rec, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeRecordResponse{}, attendanceerrors.ErrNoActiveBreak
		}
		return TimeRecordResponse{}, err
	}
	if rec.Status != StatusOnBreak {
		return TimeRecordResponse{}, attendanceerrors.ErrNoActiveBreak
	}

	open := rec.OpenBreak()
	if open == nil {
		return TimeRecordResponse{}, attendanceerrors.ErrNoActiveBreak
	}

	open.BreakOut = &now
	if err := qtx.UpdateBreak(ctx, open); err != nil {
		return TimeRecordResponse{}, err
	}

	rec.TotalBreakMs += now.Sub(open.BreakIn).Milliseconds()
	rec.Status = StatusPresent
	if err := qtx.Update(ctx, rec); err != nil {
		return TimeRecordResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TimeRecordResponse{}, err
	}

	s.logger.Info("break ended",
		zap.String("employee_id", employeeID),
		zap.String("record_id", rec.ID.String()),
		zap.Int64("total_break_ms", rec.TotalBreakMs),
	)
	return mapToResponse(*rec), nil
}

func (s *service) ClockOut(ctx context.Context, employeeID string) (TimeRecordResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return TimeRecordResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimeRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()
	today := s.cfg.StartOfDay(now)

	rec, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeRecordResponse{}, attendanceerrors.ErrNoActiveSession
		}
		return TimeRecordResponse{}, err
	}
	if rec.IsFinalized() {
		return TimeRecordResponse{}, attendanceerrors.ErrNoActiveSession
	}

	// A break left open is closed at the clock-out instant so it still
	// counts against effective hours.
	if open := rec.OpenBreak(); open != nil {
		open.BreakOut = &now
		if err := qtx.UpdateBreak(ctx, open); err != nil {
			return TimeRecordResponse{}, err
		}
		rec.TotalBreakMs += now.Sub(open.BreakIn).Milliseconds()
	}

	finalizeRecord(rec, now, s.cfg)

	if err := qtx.Update(ctx, rec); err != nil {
		return TimeRecordResponse{}, err
	}

	if s.outbox != nil {
		if err := s.enqueueClockedOut(ctx, tx, rec); err != nil {
			return TimeRecordResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return TimeRecordResponse{}, err
	}

	s.logger.Info("clock-out recorded",
		zap.String("employee_id", employeeID),
		zap.String("record_id", rec.ID.String()),
		zap.String("status", rec.Status),
		zap.Float64("effective_hours", rec.EffectiveHours),
	)
	return mapToResponse(*rec), nil
}

// finalizeRecord computes the derived fields at clock-out time. Effective
// hours are clamped at zero when break time exceeds the gross duration.
func finalizeRecord(rec *TimeRecord, now time.Time, cfg Config) {
	rec.ClockOut = &now

	grossMs := now.Sub(rec.ClockIn).Milliseconds()
	rec.GrossHours = round2(msToHours(grossMs))

	effective := msToHours(grossMs - rec.TotalBreakMs)
	if effective < 0 {
		effective = 0
	}
	rec.EffectiveHours = round2(effective)

	if rec.EffectiveHours > 8 {
		rec.OvertimeHours = round2(rec.EffectiveHours - 8)
	} else {
		rec.OvertimeHours = 0
	}

	rec.IsEarlyDeparture = now.Before(cfg.OfficeEnd(rec.WorkDate))

	if rec.EffectiveHours < 4 {
		rec.Status = StatusHalfDay
	} else {
		rec.Status = StatusLoggedOut
	}
}

func (s *service) enqueueClockedOut(ctx context.Context, tx *sql.Tx, rec *TimeRecord) error {
	rid := contextutil.GetRequestID(ctx)
	event := events.AttendanceClockedOutEvent{
		EventType:      "attendance_clocked_out",
		RequestID:      rid,
		RecordID:       rec.ID.String(),
		EmployeeID:     rec.EmployeeID.String(),
		WorkDate:       rec.WorkDate.Format("2006-01-02"),
		Status:         rec.Status,
		EffectiveHours: rec.EffectiveHours,
		OvertimeHours:  rec.OvertimeHours,
		OccurredAt:     s.now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "attendance",
		AggregateID:   rec.ID.String(),
		EventType:     event.EventType,
		Topic:         events.AttendanceClockedOutTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(rec TimeRecord) TimeRecordResponse {
	resp := TimeRecordResponse{
		ID:               rec.ID.String(),
		EmployeeID:       rec.EmployeeID.String(),
		Date:             rec.WorkDate.Format("2006-01-02"),
		ClockIn:          rec.ClockIn.Format(time.RFC3339),
		WorkLocation:     rec.WorkLocation,
		Status:           rec.Status,
		Breaks:           make([]BreakResponse, len(rec.Breaks)),
		GrossHours:       rec.GrossHours,
		EffectiveHours:   rec.EffectiveHours,
		OvertimeHours:    rec.OvertimeHours,
		TotalBreakMs:     rec.TotalBreakMs,
		IsOnTime:         rec.IsOnTime,
		IsLateArrival:    rec.IsLateArrival,
		IsEarlyDeparture: rec.IsEarlyDeparture,
	}
	if rec.ClockOut != nil {
		v := rec.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	for i, b := range rec.Breaks {
		br := BreakResponse{BreakIn: b.BreakIn.Format(time.RFC3339)}
		if b.BreakOut != nil {
			v := b.BreakOut.Format(time.RFC3339)
			br.BreakOut = &v
		}
		resp.Breaks[i] = br
	}
	return resp
}
