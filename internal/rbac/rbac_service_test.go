package rbac_test

import (
	"testing"

	"payroll-pro/internal/domain"
	"payroll-pro/internal/rbac"
	"payroll-pro/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func newService(t *testing.T) rbac.Service {
	t.Helper()
	e, err := infra.NewEnforcer()
	assert.NoError(t, err)
	return rbac.NewService(e)
}

func TestRBACService_Can(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		role     domain.Role
		resource string
		action   string
		want     bool
	}{
		{domain.RoleEmployee, "payroll", "read_own", true},
		{domain.RoleEmployee, "payroll", "read_all", false},
		{domain.RoleManager, "payroll", "read_all", true},
		{domain.RoleManager, "user", "manage", false},
		// Admin mewarisi Manager
		{domain.RoleAdmin, "payroll", "read_all", true},
		{domain.RoleAdmin, "user", "manage", true},
		{domain.Role("Guest"), "dashboard", "read_own", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+tt.resource+":"+tt.action, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.Can(tt.role, tt.resource, tt.action))
		})
	}
}

func TestRBACService_Capabilities(t *testing.T) {
	svc := newService(t)

	caps, err := svc.Capabilities(domain.RoleAdmin)

	assert.NoError(t, err)
	assert.Contains(t, caps, domain.Capability{Resource: "system", Action: "read"})
	assert.Contains(t, caps, domain.Capability{Resource: "payroll", Action: "manage"})

	empCaps, err := svc.Capabilities(domain.RoleEmployee)
	assert.NoError(t, err)
	assert.NotContains(t, empCaps, domain.Capability{Resource: "employee", Action: "read"})
}
