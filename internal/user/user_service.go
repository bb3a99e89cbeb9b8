package user

import (
	"context"
	"net/url"
	"strings"

	"payroll-pro/internal/domain"
	"payroll-pro/internal/employee"
	"payroll-pro/internal/notification"
	"payroll-pro/internal/shared/contextutil"
	usererrors "payroll-pro/internal/user/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, filter GetUsersFilterRequest) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	rdb      *redis.Client
	notifier notification.Sink
}

// NewService: rdb boleh nil. Jika ada, cache opsi karyawan dihapus setiap kali
// nama user berubah karena dropdown memakai nama dari user.
func NewService(repo Repository, rdb *redis.Client, notifier notification.Sink) Service {
	return &service{repo: repo, rdb: rdb, notifier: notifier}
}

func (s *service) GetAll(ctx context.Context, filter GetUsersFilterRequest) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		if q != "" &&
			!strings.Contains(strings.ToLower(u.FullName), q) &&
			!strings.Contains(strings.ToLower(u.Email), q) {
			continue
		}
		if filter.Role != "" && string(u.Role) != filter.Role {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	return *u, nil
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, nil)

	role := domain.Role(req.Role)
	if !role.Valid() {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	fullName := strings.TrimSpace(req.FullName)
	avatar := strings.TrimSpace(req.AvatarURL)
	if avatar == "" {
		avatar = avatarURL(fullName)
	}

	u := domain.User{
		ID:        "usr-" + uuid.NewString(),
		FullName:  fullName,
		Email:     strings.TrimSpace(req.Email),
		Role:      role,
		AvatarURL: avatar,
	}

	l.Info("creating user", zap.String("email", u.Email), zap.String("role", req.Role))
	if err := s.repo.Create(ctx, u); err != nil {
		l.Warn("failed to create user", zap.Error(err))
		return UserResponse{}, err
	}

	notification.Emit(ctx, s.notifier, "Akun pengguna baru berhasil dibuat.", notification.SeveritySuccess)
	return UserResponse{User: u}, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, nil)

	role := domain.Role(req.Role)
	if !role.Valid() {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	fullName := strings.TrimSpace(req.FullName)
	email := strings.TrimSpace(req.Email)
	avatar := strings.TrimSpace(req.AvatarURL)

	updated, err := s.repo.Update(ctx, id, func(u domain.User) domain.User {
		u.FullName = fullName
		u.Email = email
		u.Role = role
		if avatar != "" {
			u.AvatarURL = avatar
		}
		return u
	})
	if err != nil {
		l.Warn("failed to update user", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}

	if updated.EmployeeID != "" {
		s.invalidateEmployeeOptions(ctx)
	}
	notification.Emit(ctx, s.notifier, "Data akun pengguna berhasil diperbarui.", notification.SeveritySuccess)
	return *updated, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	l := contextutil.GetLogger(ctx, nil)

	if err := s.repo.Delete(ctx, id); err != nil {
		l.Warn("failed to delete user", zap.String("user_id", id), zap.Error(err))
		return err
	}

	notification.Emit(ctx, s.notifier, "Akun pengguna telah dihapus.", notification.SeverityInfo)
	return nil
}

func (s *service) invalidateEmployeeOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, employee.OptionsCacheKey).Err(); err != nil {
		contextutil.GetLogger(ctx, nil).Error("failed to invalidate employee options cache", zap.Error(err))
	}
}

func avatarURL(fullName string) string {
	name := strings.ReplaceAll(url.QueryEscape(fullName), "+", "%20")
	return "https://ui-avatars.com/api/?name=" + name + "&background=random"
}
