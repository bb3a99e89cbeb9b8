package user

import "payroll-pro/internal/domain"

type CreateUserRequest struct {
	FullName  string `json:"full_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Role      string `json:"role" binding:"required,oneof=Admin Manager Employee"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,url"`
}

type UpdateUserRequest struct {
	FullName  string `json:"full_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Role      string `json:"role" binding:"required,oneof=Admin Manager Employee"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,url"`
}

type GetUsersFilterRequest struct {
	Search string `form:"search"`
	Role   string `form:"role"`
}

type UserResponse struct {
	domain.User
	// EmployeeID kosong jika akun tidak terhubung ke karyawan.
	EmployeeID string `json:"employee_id,omitempty"`
}
