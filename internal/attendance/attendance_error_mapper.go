package attendance

import (
	"errors"
	"strings"

	attendanceerrors "go-hrms/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapCreateError translates the unique (employee_id, work_date) violation
// raised when two clock-ins race into the regular conflict error.
func mapCreateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return attendanceerrors.ErrAlreadyClockedIn
	}

	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return attendanceerrors.ErrAlreadyClockedIn
	}

	return err
}
