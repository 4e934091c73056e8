package departmenterrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound  = apperror.New(apperror.CodeNotFound, "Department not found", http.StatusNotFound)
	ErrDepartmentNameUsed  = apperror.New(apperror.CodeConflict, "Department name already in use", http.StatusConflict)
	ErrInvalidDepartmentID = apperror.New(apperror.CodeInvalidInput, "Invalid department id", http.StatusBadRequest)
)
