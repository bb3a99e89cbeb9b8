package user

import (
	"context"
	"strings"

	"payroll-pro/internal/domain"
	"payroll-pro/internal/store"
	usererrors "payroll-pro/internal/user/errors"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]UserResponse, error)
	FindByID(ctx context.Context, id string) (*UserResponse, error)
	Create(ctx context.Context, u domain.User) error
	// Update menerapkan fn ke data user terbaru di dalam lock store.
	Update(ctx context.Context, id string, fn func(domain.User) domain.User) (*UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	store *store.Store
}

func NewRepository(s *store.Store) Repository {
	return &repository{store: s}
}

func (r *repository) FindAll(ctx context.Context) ([]UserResponse, error) {
	snap := r.store.Snapshot()
	out := make([]UserResponse, 0, len(snap.Users))
	for _, u := range snap.Users {
		out = append(out, toResponse(snap, u))
	}
	return out, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*UserResponse, error) {
	snap := r.store.Snapshot()
	u, ok := snap.FindUser(id)
	if !ok {
		return nil, usererrors.ErrUserNotFound
	}
	resp := toResponse(snap, u)
	return &resp, nil
}

func (r *repository) Create(ctx context.Context, u domain.User) error {
	_, err := r.store.Update(func(s store.State) (store.Action, error) {
		if emailTaken(s, u.ID, u.Email) {
			return nil, usererrors.ErrUserAlreadyExists
		}
		return store.AddUser{User: u}, nil
	})
	return err
}

func (r *repository) Update(ctx context.Context, id string, fn func(domain.User) domain.User) (*UserResponse, error) {
	var u domain.User
	snap, err := r.store.Update(func(s store.State) (store.Action, error) {
		current, ok := s.FindUser(id)
		if !ok {
			return nil, usererrors.ErrUserNotFound
		}
		u = fn(current)
		u.ID = id
		if emailTaken(s, u.ID, u.Email) {
			return nil, usererrors.ErrUserAlreadyExists
		}
		return store.UpdateUser{User: u}, nil
	})
	if err != nil {
		return nil, err
	}
	resp := toResponse(snap, u)
	return &resp, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	_, err := r.store.Update(func(s store.State) (store.Action, error) {
		if _, ok := s.FindUser(id); !ok {
			return nil, usererrors.ErrUserNotFound
		}
		if _, ok := s.EmployeeByUserID(id); ok {
			return nil, usererrors.ErrUserInUse
		}
		return store.DeleteUser{ID: id}, nil
	})
	return err
}

func emailTaken(s store.State, userID, email string) bool {
	for _, u := range s.Users {
		if u.ID != userID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func toResponse(s store.State, u domain.User) UserResponse {
	resp := UserResponse{User: u}
	if e, ok := s.EmployeeByUserID(u.ID); ok {
		resp.EmployeeID = e.ID
	}
	return resp
}
