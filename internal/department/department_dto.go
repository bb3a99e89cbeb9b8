package department

type DepartmentResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ManagerID     string `json:"manager_id,omitempty"`
	ManagerName   string `json:"manager_name,omitempty"`
	EmployeeCount int    `json:"employee_count"`
}
