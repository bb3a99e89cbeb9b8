package departmenterrors

import (
	"net/http"

	"payroll-pro/internal/shared/apperror"
)

var ErrDepartmentNotFound = apperror.New(
	apperror.CodeNotFound,
	"Department not found",
	http.StatusNotFound,
)
