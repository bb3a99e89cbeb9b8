package employee

import (
	"payroll-pro/internal/domain"
	"payroll-pro/internal/store"
)

type AllowanceInput struct {
	Name    string `json:"name" binding:"required"`
	Amount  int64  `json:"amount" binding:"gte=0"`
	IsFixed *bool  `json:"is_fixed"`
}

type CreateEmployeeRequest struct {
	FullName         string           `json:"full_name" binding:"required"`
	Email            string           `json:"email" binding:"required,email"`
	EmployeeIDNumber string           `json:"employee_id_number" binding:"required"`
	StartDate        string           `json:"start_date"`
	DepartmentID     string           `json:"department_id" binding:"required"`
	PositionID       string           `json:"position_id" binding:"required"`
	BaseSalary       int64            `json:"base_salary" binding:"gte=0"`
	Status           string           `json:"status" binding:"omitempty,oneof=Active 'On Leave' Terminated"`
	FixedAllowances  []AllowanceInput `json:"fixed_allowances" binding:"omitempty,dive"`
}

// UpdateEmployeeRequest mengganti seluruh data seperti form edit. Nama dan email
// ditulis ke akun user yang terhubung.
type UpdateEmployeeRequest struct {
	FullName         string            `json:"full_name" binding:"required"`
	Email            string            `json:"email" binding:"required,email"`
	EmployeeIDNumber string            `json:"employee_id_number" binding:"required"`
	StartDate        string            `json:"start_date" binding:"required"`
	DepartmentID     string            `json:"department_id" binding:"required"`
	PositionID       string            `json:"position_id" binding:"required"`
	BaseSalary       int64             `json:"base_salary" binding:"gte=0"`
	Status           string            `json:"status" binding:"required,oneof=Active 'On Leave' Terminated"`
	FixedAllowances  *[]AllowanceInput `json:"fixed_allowances" binding:"omitempty,dive"`
}

type GetEmployeesFilterRequest struct {
	Search       string `form:"search"`
	DepartmentID string `form:"department_id"`
	Status       string `form:"status"`
}

type EmployeeResponse struct {
	store.EmployeeView
	BaseSalaryLabel string `json:"base_salary_label"`
}

// EmployeeOption dipakai dropdown form penggajian.
type EmployeeOption struct {
	ID               string `json:"id"`
	FullName         string `json:"full_name"`
	EmployeeIDNumber string `json:"employee_id_number"`
	BaseSalary       int64  `json:"base_salary"`
}

type AllowanceResponse struct {
	EmployeeID      string                   `json:"employee_id"`
	FixedAllowances []domain.AllowanceConfig `json:"fixed_allowances"`
}
