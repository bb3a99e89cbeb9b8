package position

import (
	"context"

	"payroll-pro/internal/domain"
	positionerrors "payroll-pro/internal/position/errors"
	"payroll-pro/internal/store"
)

//go:generate mockgen -source=position_repo.go -destination=mock/position_repo_mock.go -package=mock
type Repository interface {
	// FindAll: departmentID kosong berarti semua jabatan.
	FindAll(ctx context.Context, departmentID string) ([]PositionResponse, error)
	FindByID(ctx context.Context, id string) (*PositionResponse, error)
}

type repository struct {
	store *store.Store
}

func NewRepository(s *store.Store) Repository {
	return &repository{store: s}
}

func (r *repository) FindAll(ctx context.Context, departmentID string) ([]PositionResponse, error) {
	snap := r.store.Snapshot()
	out := make([]PositionResponse, 0, len(snap.Positions))
	for _, p := range snap.Positions {
		if departmentID != "" && p.DepartmentID != departmentID {
			continue
		}
		out = append(out, mapToResponse(snap, p))
	}
	return out, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*PositionResponse, error) {
	snap := r.store.Snapshot()
	p, ok := snap.FindPosition(id)
	if !ok {
		return nil, positionerrors.ErrPositionNotFound
	}
	resp := mapToResponse(snap, p)
	return &resp, nil
}

func mapToResponse(s store.State, p domain.Position) PositionResponse {
	resp := PositionResponse{ID: p.ID, Title: p.Title, DepartmentID: p.DepartmentID}
	if d, ok := s.FindDepartment(p.DepartmentID); ok {
		resp.DepartmentName = d.Name
	}
	return resp
}
