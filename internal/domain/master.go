package domain

type Department struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	ManagerID string `json:"manager_id,omitempty" yaml:"manager_id"`
}

type Position struct {
	ID           string `json:"id" yaml:"id"`
	Title        string `json:"title" yaml:"title"`
	DepartmentID string `json:"department_id" yaml:"department_id"`
}
