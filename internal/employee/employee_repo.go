package employee

import (
	"context"
	"strings"

	"payroll-pro/internal/domain"
	employeeerrors "payroll-pro/internal/employee/errors"
	"payroll-pro/internal/store"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]store.EmployeeView, error)
	FindByID(ctx context.Context, id string) (*store.EmployeeView, error)
	// Create menyimpan karyawan beserta akun user-nya sekaligus.
	Create(ctx context.Context, emp domain.Employee, user domain.User) error
	// Update menerapkan fn ke data karyawan terbaru di dalam lock store, lalu
	// menulis nama & email ke akun user yang terhubung.
	Update(ctx context.Context, id, fullName, email string, fn func(domain.Employee) (domain.Employee, error)) error
	Delete(ctx context.Context, id string) error
	UpdateAllowances(ctx context.Context, id string, fn func([]domain.AllowanceConfig) ([]domain.AllowanceConfig, error)) ([]domain.AllowanceConfig, error)
}

type repository struct {
	store *store.Store
}

func NewRepository(s *store.Store) Repository {
	return &repository{store: s}
}

func (r *repository) FindAll(ctx context.Context) ([]store.EmployeeView, error) {
	return r.store.Snapshot().EmployeeViews(), nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*store.EmployeeView, error) {
	v, ok := r.store.Snapshot().EmployeeView(id)
	if !ok {
		return nil, employeeerrors.ErrEmployeeNotFound
	}
	return &v, nil
}

func (r *repository) Create(ctx context.Context, emp domain.Employee, user domain.User) error {
	_, err := r.store.Update(func(s store.State) (store.Action, error) {
		if err := checkReferences(s, emp); err != nil {
			return nil, err
		}
		if err := checkUnique(s, emp.ID, emp.EmployeeIDNumber, user.ID, user.Email); err != nil {
			return nil, err
		}
		return store.Batch{store.AddUser{User: user}, store.AddEmployee{Employee: emp}}, nil
	})
	return err
}

func (r *repository) Update(ctx context.Context, id, fullName, email string, fn func(domain.Employee) (domain.Employee, error)) error {
	_, err := r.store.Update(func(s store.State) (store.Action, error) {
		current, ok := s.FindEmployee(id)
		if !ok {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		emp, err := fn(current)
		if err != nil {
			return nil, err
		}
		emp.ID = current.ID
		emp.UserID = current.UserID

		if err := checkReferences(s, emp); err != nil {
			return nil, err
		}
		if err := checkUnique(s, emp.ID, emp.EmployeeIDNumber, current.UserID, email); err != nil {
			return nil, err
		}

		actions := store.Batch{store.UpdateEmployee{Employee: emp}}
		if u, ok := s.FindUser(current.UserID); ok {
			u.FullName = fullName
			u.Email = email
			actions = append(actions, store.UpdateUser{User: u})
		}
		return actions, nil
	})
	return err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	_, err := r.store.Update(func(s store.State) (store.Action, error) {
		if _, ok := s.FindEmployee(id); !ok {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return store.DeleteEmployee{ID: id}, nil
	})
	return err
}

func (r *repository) UpdateAllowances(ctx context.Context, id string, fn func([]domain.AllowanceConfig) ([]domain.AllowanceConfig, error)) ([]domain.AllowanceConfig, error) {
	var out []domain.AllowanceConfig
	_, err := r.store.Update(func(s store.State) (store.Action, error) {
		emp, ok := s.FindEmployee(id)
		if !ok {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		next, err := fn(emp.FixedAllowances)
		if err != nil {
			return nil, err
		}
		emp.FixedAllowances = next
		out = next
		return store.UpdateEmployee{Employee: emp}, nil
	})
	return out, err
}

func checkReferences(s store.State, emp domain.Employee) error {
	if _, ok := s.FindDepartment(emp.DepartmentID); !ok {
		return employeeerrors.ErrDepartmentNotFound
	}
	if _, ok := s.FindPosition(emp.PositionID); !ok {
		return employeeerrors.ErrPositionNotFound
	}
	return nil
}

// checkUnique: nomor induk unik antar karyawan, email unik antar user.
func checkUnique(s store.State, employeeID, idNumber, userID, email string) error {
	for _, e := range s.Employees {
		if e.ID != employeeID && strings.EqualFold(e.EmployeeIDNumber, idNumber) {
			return employeeerrors.ErrEmployeeNumberAlreadyExists
		}
	}
	for _, u := range s.Users {
		if u.ID != userID && strings.EqualFold(u.Email, email) {
			return employeeerrors.ErrEmployeeEmailAlreadyExists
		}
	}
	return nil
}
