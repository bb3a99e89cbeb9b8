package system

import "payroll-pro/internal/domain"

type GetAuditLogsFilterRequest struct {
	Status string `form:"status"`
	Role   string `form:"role"`
}

type InfoResponse struct {
	domain.SystemInfo
	// ProcessUptime adalah uptime proses API ini, terpisah dari angka demo.
	ProcessUptime string `json:"process_uptime"`
	Environment   string `json:"environment"`
}
