package dashboard

import (
	"context"

	"payroll-pro/internal/domain"
	"payroll-pro/internal/store"
)

type Repository interface {
	Payrolls(ctx context.Context) ([]domain.Payroll, error)
	EmployeeCount(ctx context.Context) (int, error)
	FindUser(ctx context.Context, userID string) (domain.User, bool)
	EmployeeIDByUserID(ctx context.Context, userID string) (string, bool)
}

type repository struct {
	store *store.Store
}

func NewRepository(s *store.Store) Repository {
	return &repository{store: s}
}

func (r *repository) Payrolls(ctx context.Context) ([]domain.Payroll, error) {
	return r.store.Snapshot().Payrolls, nil
}

func (r *repository) EmployeeCount(ctx context.Context) (int, error) {
	return len(r.store.Snapshot().Employees), nil
}

func (r *repository) FindUser(ctx context.Context, userID string) (domain.User, bool) {
	return r.store.Snapshot().FindUser(userID)
}

func (r *repository) EmployeeIDByUserID(ctx context.Context, userID string) (string, bool) {
	e, ok := r.store.Snapshot().EmployeeByUserID(userID)
	return e.ID, ok
}
