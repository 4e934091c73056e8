package attendanceerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeConflict,
		"already clocked in for today",
		http.StatusConflict,
	)
	ErrClockInRequired = apperror.New(
		apperror.CodeNotFound,
		"clock-in required before taking a break",
		http.StatusNotFound,
	)
	ErrAlreadyOnBreak = apperror.New(
		apperror.CodeConflict,
		"already on break",
		http.StatusConflict,
	)
	ErrNoActiveBreak = apperror.New(
		apperror.CodeInvalidState,
		"no active break found",
		http.StatusBadRequest,
	)
	ErrRecordFinalized = apperror.New(
		apperror.CodeInvalidState,
		"attendance record is already finalized for today",
		http.StatusBadRequest,
	)
	ErrNoActiveSession = apperror.New(
		apperror.CodeConflict,
		"already clocked out or no clock-in record for today",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"startDate must be before or equal endDate",
		http.StatusBadRequest,
	)
	ErrInvalidWorkLocation = apperror.New(
		apperror.CodeInvalidInput,
		"work_location must be office or work_from_home",
		http.StatusBadRequest,
	)
)
