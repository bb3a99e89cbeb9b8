package dashboard

type SummaryStats struct {
	TotalEmployees    int    `json:"total_employees"`
	TotalPayroll      int64  `json:"total_payroll"`
	TotalPayrollLabel string `json:"total_payroll_label"`
	PendingApprovals  int    `json:"pending_approvals"`
}

type EmployeeStats struct {
	LatestSalary       int64  `json:"latest_salary"`
	LatestSalaryLabel  string `json:"latest_salary_label"`
	LastMonth          string `json:"last_month"`
	TotalReceived      int64  `json:"total_received"`
	TotalReceivedLabel string `json:"total_received_label"`
}

type MonthlyTotal struct {
	Month       string `json:"month"`
	Label       string `json:"label"`
	Amount      int64  `json:"amount"`
	AmountLabel string `json:"amount_label"`
}

// DashboardResponse: Summary terisi untuk scope "all", Employee untuk scope "own".
type DashboardResponse struct {
	Greeting string         `json:"greeting"`
	Today    string         `json:"today"`
	Scope    string         `json:"scope"`
	Summary  *SummaryStats  `json:"summary,omitempty"`
	Employee *EmployeeStats `json:"employee,omitempty"`
	Chart    []MonthlyTotal `json:"chart"`
}
