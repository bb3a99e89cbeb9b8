package domain

type PayrollStatus string

const (
	PayrollDraft     PayrollStatus = "Draft"
	PayrollSubmitted PayrollStatus = "Submitted"
	PayrollApproved  PayrollStatus = "Approved"
	PayrollPaid      PayrollStatus = "Paid"
)

func (s PayrollStatus) Valid() bool {
	switch s {
	case PayrollDraft, PayrollSubmitted, PayrollApproved, PayrollPaid:
		return true
	default:
		return false
	}
}

// PayrollItem dipakai untuk tunjangan maupun potongan.
type PayrollItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// Payroll menyimpan salinan BaseSalary saat dibuat, sehingga perubahan gaji karyawan
// tidak mengubah slip lama.
type Payroll struct {
	ID             string        `json:"id"`
	EmployeeID     string        `json:"employee_id"`
	Month          string        `json:"month"`
	BaseSalary     int64         `json:"base_salary"`
	Allowances     []PayrollItem `json:"allowances"`
	Deductions     []PayrollItem `json:"deductions"`
	TotalAllowance int64         `json:"total_allowance"`
	TotalDeduction int64         `json:"total_deduction"`
	OvertimePay    int64         `json:"overtime_pay"`
	NetSalary      int64         `json:"net_salary"`
	Status         PayrollStatus `json:"status"`
	IssueDate      string        `json:"issue_date,omitempty"`
}
