package system

import (
	"context"

	"payroll-pro/internal/domain"
	"payroll-pro/internal/store"
)

type Repository interface {
	Info(ctx context.Context) (domain.SystemInfo, error)
	AuditLogs(ctx context.Context) ([]domain.AuditLog, error)
}

type repository struct {
	store *store.Store
}

func NewRepository(s *store.Store) Repository {
	return &repository{store: s}
}

func (r *repository) Info(ctx context.Context) (domain.SystemInfo, error) {
	return r.store.Snapshot().SystemInfo, nil
}

func (r *repository) AuditLogs(ctx context.Context) ([]domain.AuditLog, error) {
	return r.store.Snapshot().AuditLogs, nil
}
