package auth

import (
	"time"

	"payroll-pro/internal/domain"
)

// LoginRequest meniru layar login demo: cukup pilih user, email, atau role.
// Tidak ada password.
type LoginRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email" binding:"omitempty,email"`
	Role   string `json:"role" binding:"omitempty,oneof=Admin Manager Employee"`
}

// SessionRecord adalah isi key payroll_user:<session id> di Redis.
type SessionRecord struct {
	User       domain.User `json:"user"`
	EmployeeID string      `json:"employee_id,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      domain.User `json:"user"`
}

type MeResponse struct {
	User         domain.User         `json:"user"`
	EmployeeID   string              `json:"employee_id,omitempty"`
	Capabilities []domain.Capability `json:"capabilities"`
}
