package payroll

import (
	"context"

	"payroll-pro/internal/domain"
	payrollerrors "payroll-pro/internal/payroll/errors"
	"payroll-pro/internal/store"
)

type Repository interface {
	FindAll(ctx context.Context) ([]domain.Payroll, error)
	FindByID(ctx context.Context, id string) (*domain.Payroll, error)
	Create(ctx context.Context, p *domain.Payroll) error
	// Update menerapkan fn ke slip gaji terbaru di dalam lock store.
	Update(ctx context.Context, id string, fn func(p *domain.Payroll) error) (*domain.Payroll, error)
	Delete(ctx context.Context, id string) error
	ExistsForMonth(ctx context.Context, employeeID, month string) (bool, error)

	FindEmployee(ctx context.Context, id string) (*store.EmployeeView, error)
	FindEmployees(ctx context.Context) (map[string]store.EmployeeView, error)
	EmployeeIDByUserID(ctx context.Context, userID string) (string, bool, error)
}

type repository struct {
	store *store.Store
}

func NewRepository(s *store.Store) Repository {
	return &repository{store: s}
}

func (r *repository) FindAll(ctx context.Context) ([]domain.Payroll, error) {
	return r.store.Snapshot().Payrolls, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*domain.Payroll, error) {
	p, ok := r.store.Snapshot().FindPayroll(id)
	if !ok {
		return nil, payrollerrors.ErrPayrollNotFound
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *domain.Payroll) error {
	_, err := r.store.Update(func(s store.State) (store.Action, error) {
		if _, ok := s.FindEmployee(p.EmployeeID); !ok {
			return nil, payrollerrors.ErrEmployeeNotFound
		}
		return store.AddPayroll{Payroll: *p}, nil
	})
	return err
}

func (r *repository) Update(ctx context.Context, id string, fn func(p *domain.Payroll) error) (*domain.Payroll, error) {
	var out domain.Payroll
	_, err := r.store.Update(func(s store.State) (store.Action, error) {
		p, ok := s.FindPayroll(id)
		if !ok {
			return nil, payrollerrors.ErrPayrollNotFound
		}
		if err := fn(&p); err != nil {
			return nil, err
		}
		p.ID = id
		out = p
		return store.UpdatePayroll{Payroll: p}, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	_, err := r.store.Update(func(s store.State) (store.Action, error) {
		if _, ok := s.FindPayroll(id); !ok {
			return nil, payrollerrors.ErrPayrollNotFound
		}
		return store.DeletePayroll{ID: id}, nil
	})
	return err
}

func (r *repository) ExistsForMonth(ctx context.Context, employeeID, month string) (bool, error) {
	for _, p := range r.store.Snapshot().Payrolls {
		if p.EmployeeID == employeeID && p.Month == month {
			return true, nil
		}
	}
	return false, nil
}

func (r *repository) FindEmployee(ctx context.Context, id string) (*store.EmployeeView, error) {
	v, ok := r.store.Snapshot().EmployeeView(id)
	if !ok {
		return nil, payrollerrors.ErrEmployeeNotFound
	}
	return &v, nil
}

func (r *repository) FindEmployees(ctx context.Context) (map[string]store.EmployeeView, error) {
	views := r.store.Snapshot().EmployeeViews()
	out := make(map[string]store.EmployeeView, len(views))
	for _, v := range views {
		out[v.ID] = v
	}
	return out, nil
}

func (r *repository) EmployeeIDByUserID(ctx context.Context, userID string) (string, bool, error) {
	e, ok := r.store.Snapshot().EmployeeByUserID(userID)
	if !ok {
		return "", false, nil
	}
	return e.ID, true, nil
}
