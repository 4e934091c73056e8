package projecterrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrInvalidProjectID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid project id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrProjectNotFound = apperror.New(
		apperror.CodeNotFound,
		"project not found",
		http.StatusNotFound,
	)
	ErrLeaderNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"project leader not found",
		http.StatusBadRequest,
	)
	ErrMemberNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"one or more project members not found",
		http.StatusBadRequest,
	)
	ErrInvalidProjectStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be ACTIVE, ON_HOLD or COMPLETED",
		http.StatusBadRequest,
	)
	ErrNotProjectMember = apperror.New(
		apperror.CodeForbidden,
		"employee is not part of this project",
		http.StatusForbidden,
	)
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"task not found",
		http.StatusNotFound,
	)
	ErrTaskAlreadyLogged = apperror.New(
		apperror.CodeConflict,
		"a task for this project already exists today, update it instead",
		http.StatusConflict,
	)
	ErrTaskNotToday = apperror.New(
		apperror.CodeInvalidState,
		"only today's task can be updated",
		http.StatusBadRequest,
	)
	ErrInvalidTaskStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be NOT_STARTED, IN_PROGRESS, COMPLETED or ON_HOLD",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
