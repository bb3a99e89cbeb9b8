package employeeerrors

import (
	"net/http"

	"payroll-pro/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A user with the same email already exists",
		http.StatusConflict,
	)
	ErrEmployeeNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee ID number already exists",
		http.StatusConflict,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Department not found",
		http.StatusBadRequest,
	)
	ErrPositionNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Position not found",
		http.StatusBadRequest,
	)
	ErrInvalidStartDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid start_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrAllowanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Allowance not found",
		http.StatusNotFound,
	)
)
