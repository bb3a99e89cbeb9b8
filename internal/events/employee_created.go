package events

import "time"

const EmployeeCreatedTopic = "payroll.employee.lifecycle.v1"

type EmployeeCreatedEvent struct {
	EventType        string    `json:"event_type"`
	EmployeeID       string    `json:"employee_id"`
	EmployeeIDNumber string    `json:"employee_id_number"`
	FullName         string    `json:"full_name"`
	OccurredAt       time.Time `json:"occurred_at"`
}
