package rbac

import "payroll-pro/internal/domain"

type EnforceRequest struct {
	Role     domain.Role `json:"role" binding:"required"`
	Resource string      `json:"resource" binding:"required"`
	Action   string      `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type CapabilitiesResponse struct {
	Role         domain.Role         `json:"role"`
	Capabilities []domain.Capability `json:"capabilities"`
}
