package position

type GetPositionsFilterRequest struct {
	DepartmentID string `form:"department_id"`
}

type PositionResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name,omitempty"`
}
