package payroll

import "payroll-pro/internal/domain"

type PayrollItemInput struct {
	ID     string `json:"id"`
	Name   string `json:"name" binding:"required"`
	Amount int64  `json:"amount" binding:"gte=0"`
}

type PreviewPayrollRequest struct {
	EmployeeID    string             `json:"employee_id" binding:"required"`
	Allowances    []PayrollItemInput `json:"allowances" binding:"omitempty,dive"`
	Deductions    []PayrollItemInput `json:"deductions" binding:"omitempty,dive"`
	OvertimeHours float64            `json:"overtime_hours" binding:"gte=0"`
	OvertimeRate  *int64             `json:"overtime_rate" binding:"omitempty,gte=0"`
}

type AutoDeductionsRequest struct {
	BaseSalary int64              `json:"base_salary" binding:"gte=0"`
	Deductions []PayrollItemInput `json:"deductions" binding:"omitempty,dive"`
}

type CreatePayrollRequest struct {
	EmployeeID    string             `json:"employee_id" binding:"required"`
	Month         string             `json:"month" binding:"required,yearmonth"`
	Allowances    []PayrollItemInput `json:"allowances" binding:"omitempty,dive"`
	Deductions    []PayrollItemInput `json:"deductions" binding:"omitempty,dive"`
	OvertimeHours float64            `json:"overtime_hours" binding:"gte=0"`
	OvertimeRate  *int64             `json:"overtime_rate" binding:"omitempty,gte=0"`
	Status        string             `json:"status" binding:"omitempty,oneof=Draft Submitted Approved Paid"`
	IssueDate     string             `json:"issue_date"`
}

// UpdatePayrollRequest: field nil berarti pakai nilai yang tersimpan.
type UpdatePayrollRequest struct {
	Month         *string             `json:"month" binding:"omitempty,yearmonth"`
	BaseSalary    *int64              `json:"base_salary" binding:"omitempty,gte=0"`
	Allowances    *[]PayrollItemInput `json:"allowances" binding:"omitempty,dive"`
	Deductions    *[]PayrollItemInput `json:"deductions" binding:"omitempty,dive"`
	OvertimeHours *float64            `json:"overtime_hours" binding:"omitempty,gte=0"`
	OvertimeRate  *int64              `json:"overtime_rate" binding:"omitempty,gte=0"`
	Status        *string             `json:"status" binding:"omitempty,oneof=Draft Submitted Approved Paid"`
	IssueDate     *string             `json:"issue_date"`
}

type GetPayrollsFilterRequest struct {
	Status string `form:"status"`
	Search string `form:"search"`
}

type PayrollEmployeeResponse struct {
	ID               string `json:"id"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	EmployeeIDNumber string `json:"employee_id_number"`
	DepartmentName   string `json:"department_name"`
	PositionTitle    string `json:"position_title"`
	AvatarURL        string `json:"avatar_url,omitempty"`
}

type PayrollResponse struct {
	domain.Payroll
	Employee       *PayrollEmployeeResponse `json:"employee,omitempty"`
	NetSalaryLabel string                   `json:"net_salary_label"`
}

type PreviewResponse struct {
	BaseSalary   int64                `json:"base_salary"`
	OvertimeRate int64                `json:"overtime_rate"`
	Allowances   []domain.PayrollItem `json:"allowances"`
	Deductions   []domain.PayrollItem `json:"deductions"`
	Breakdown
}
