package domain

type EmploymentStatus string

const (
	EmploymentActive     EmploymentStatus = "Active"
	EmploymentOnLeave    EmploymentStatus = "On Leave"
	EmploymentTerminated EmploymentStatus = "Terminated"
)

// AllowanceConfig adalah tunjangan tetap yang otomatis ikut setiap bulan jika IsFixed.
type AllowanceConfig struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Amount  int64  `json:"amount" yaml:"amount"`
	IsFixed bool   `json:"is_fixed" yaml:"is_fixed"`
}

// Employee hanya menyimpan UserID; data user di-join saat dibaca.
type Employee struct {
	ID               string            `json:"id" yaml:"id"`
	UserID           string            `json:"user_id" yaml:"user_id"`
	EmployeeIDNumber string            `json:"employee_id_number" yaml:"employee_id_number"`
	StartDate        string            `json:"start_date" yaml:"start_date"`
	DepartmentID     string            `json:"department_id" yaml:"department_id"`
	PositionID       string            `json:"position_id" yaml:"position_id"`
	BaseSalary       int64             `json:"base_salary" yaml:"base_salary"`
	Status           EmploymentStatus  `json:"status" yaml:"status"`
	FixedAllowances  []AllowanceConfig `json:"fixed_allowances" yaml:"fixed_allowances"`
}
