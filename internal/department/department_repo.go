package department

import (
	"context"

	departmenterrors "payroll-pro/internal/department/errors"
	"payroll-pro/internal/domain"
	"payroll-pro/internal/store"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]DepartmentResponse, error)
	FindByID(ctx context.Context, id string) (*DepartmentResponse, error)
}

type repository struct {
	store *store.Store
}

func NewRepository(s *store.Store) Repository {
	return &repository{store: s}
}

func (r *repository) FindAll(ctx context.Context) ([]DepartmentResponse, error) {
	snap := r.store.Snapshot()
	out := make([]DepartmentResponse, 0, len(snap.Departments))
	for _, d := range snap.Departments {
		out = append(out, mapToResponse(snap, d))
	}
	return out, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*DepartmentResponse, error) {
	snap := r.store.Snapshot()
	d, ok := snap.FindDepartment(id)
	if !ok {
		return nil, departmenterrors.ErrDepartmentNotFound
	}
	resp := mapToResponse(snap, d)
	return &resp, nil
}

// ManagerID menunjuk ke user, bukan ke karyawan.
func mapToResponse(s store.State, d domain.Department) DepartmentResponse {
	resp := DepartmentResponse{ID: d.ID, Name: d.Name, ManagerID: d.ManagerID}
	if u, ok := s.FindUser(d.ManagerID); ok {
		resp.ManagerName = u.FullName
	}
	for _, e := range s.Employees {
		if e.DepartmentID == d.ID {
			resp.EmployeeCount++
		}
	}
	return resp
}
