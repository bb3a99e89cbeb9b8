package rbac

import (
	"sort"
	"sync"

	"payroll-pro/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

// Service hanya dipakai untuk tampilan (menu, scoping daftar). Tidak ada
// request yang ditolak berdasarkan hasilnya.
type Service interface {
	Enforce(req EnforceRequest) (bool, error)
	Can(role domain.Role, resource, action string) bool
	Capabilities(role domain.Role) ([]domain.Capability, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
}

func NewService(enforcer *casbin.Enforcer) Service {
	return &service{enforcer: enforcer}
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(string(req.Role), req.Resource, req.Action)
	if err != nil {
		zap.L().Warn("rbac enforce failed",
			zap.String("role", string(req.Role)),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}
	return allowed, nil
}

// Can menelan error enforcer dan menganggapnya "tidak boleh".
func (s *service) Can(role domain.Role, resource, action string) bool {
	allowed, err := s.Enforce(EnforceRequest{Role: role, Resource: resource, Action: action})
	return err == nil && allowed
}

func (s *service) Capabilities(role domain.Role) ([]domain.Capability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	perms, err := s.enforcer.GetImplicitPermissionsForUser(string(role))
	if err != nil {
		return nil, err
	}

	caps := make([]domain.Capability, 0, len(perms))
	for _, p := range perms {
		if len(p) < 3 {
			continue
		}
		caps = append(caps, domain.Capability{Resource: p[1], Action: p[2]})
	}
	sort.Slice(caps, func(i, j int) bool {
		if caps[i].Resource != caps[j].Resource {
			return caps[i].Resource < caps[j].Resource
		}
		return caps[i].Action < caps[j].Action
	})
	return caps, nil
}
