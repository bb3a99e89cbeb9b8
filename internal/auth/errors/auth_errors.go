package autherrors

import (
	"net/http"

	"payroll-pro/internal/shared/apperror"
)

var (
	ErrLoginIdentifierRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Provide user_id, email or role to log in",
		http.StatusBadRequest,
	)

	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid or expired session",
		http.StatusUnauthorized,
	)

	ErrSessionNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"Session not found",
		http.StatusUnauthorized,
	)

	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to generate session token",
		http.StatusInternalServerError,
	)
)
