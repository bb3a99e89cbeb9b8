package positionerrors

import (
	"net/http"

	"payroll-pro/internal/shared/apperror"
)

var ErrPositionNotFound = apperror.New(
	apperror.CodeNotFound,
	"Position not found",
	http.StatusNotFound,
)
