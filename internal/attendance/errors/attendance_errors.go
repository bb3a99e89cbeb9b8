package attendanceerrors

import (
	"net/http"

	"payroll-pro/internal/shared/apperror"
)

var (
	ErrProofRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Foto bukti kehadiran wajib diambil atau diunggah.",
		http.StatusBadRequest,
	)
	ErrEmployeeRequired = apperror.New(
		apperror.CodeInvalidInput,
		"employee_id is required when no session is active",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeConflict,
		"Anda sudah melakukan absen masuk hari ini.",
		http.StatusConflict,
	)
	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeConflict,
		"Anda sudah melakukan absen pulang hari ini.",
		http.StatusConflict,
	)
	// ErrCheckInMissing ditampilkan klien sebagai prompt konfirmasi; kirim ulang dengan confirm=true.
	ErrCheckInMissing = apperror.New(
		apperror.CodeConflict,
		"Anda belum absen masuk hari ini. Tetap lakukan absen pulang?",
		http.StatusConflict,
	)
)
