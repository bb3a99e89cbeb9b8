package usererrors

import (
	"net/http"

	"payroll-pro/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrUserAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"User with the same email already exists",
		http.StatusConflict,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid role",
		http.StatusBadRequest,
	)

	// ErrUserInUse: akun masih dipakai data karyawan, hapus karyawannya dulu.
	ErrUserInUse = apperror.New(
		apperror.CodeConflict,
		"User is still linked to an employee",
		http.StatusConflict,
	)
)
