package user_test

import (
	"context"
	"errors"
	"testing"

	"payroll-pro/internal/domain"
	"payroll-pro/internal/employee"
	"payroll-pro/internal/notification"
	"payroll-pro/internal/user"
	usererrors "payroll-pro/internal/user/errors"
	mock_user "payroll-pro/internal/user/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type serviceDeps struct {
	repo      *mock_user.MockRepository
	feed      *notification.Feed
	redismock redismock.ClientMock
	svc       user.Service
}

func setup(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	mockRepo := mock_user.NewMockRepository(ctrl)
	rdb, redisMock := redismock.NewClientMock()
	feed := notification.NewFeed(10)

	return &serviceDeps{
		repo:      mockRepo,
		feed:      feed,
		redismock: redisMock,
		svc:       user.NewService(mockRepo, rdb, feed),
	}
}

func seedUsers() []user.UserResponse {
	return []user.UserResponse{
		{User: domain.User{ID: "u1", FullName: "Andi Wijaya", Email: "andi@payrollpro.id", Role: domain.RoleAdmin}},
		{User: domain.User{ID: "u2", FullName: "Siti Rahma", Email: "siti@payrollpro.id", Role: domain.RoleManager}},
		{User: domain.User{ID: "u3", FullName: "Budi Santoso", Email: "budi@payrollpro.id", Role: domain.RoleEmployee}, EmployeeID: "e1"},
	}
}

func TestUserService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("all users", func(t *testing.T) {
		deps := setup(t)
		deps.repo.EXPECT().FindAll(gomock.Any()).Return(seedUsers(), nil)

		res, err := deps.svc.GetAll(ctx, user.GetUsersFilterRequest{})
		assert.NoError(t, err)
		assert.Len(t, res, 3)
	})

	t.Run("search by name or email", func(t *testing.T) {
		deps := setup(t)
		deps.repo.EXPECT().FindAll(gomock.Any()).Return(seedUsers(), nil).Times(2)

		res, err := deps.svc.GetAll(ctx, user.GetUsersFilterRequest{Search: "SITI"})
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "u2", res[0].ID)

		res, err = deps.svc.GetAll(ctx, user.GetUsersFilterRequest{Search: "budi@"})
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "e1", res[0].EmployeeID)
	})

	t.Run("filter by role", func(t *testing.T) {
		deps := setup(t)
		deps.repo.EXPECT().FindAll(gomock.Any()).Return(seedUsers(), nil)

		res, err := deps.svc.GetAll(ctx, user.GetUsersFilterRequest{Role: "Admin"})
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "u1", res[0].ID)
	})

	t.Run("repository error", func(t *testing.T) {
		deps := setup(t)
		deps.repo.EXPECT().FindAll(gomock.Any()).Return(nil, errors.New("store error"))

		res, err := deps.svc.GetAll(ctx, user.GetUsersFilterRequest{})
		assert.Error(t, err)
		assert.Nil(t, res)
	})
}

func TestUserService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setup(t)
		u := seedUsers()[1]
		deps.repo.EXPECT().FindByID(gomock.Any(), "u2").Return(&u, nil)

		res, err := deps.svc.GetByID(ctx, "u2")
		assert.NoError(t, err)
		assert.Equal(t, "Siti Rahma", res.FullName)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setup(t)
		deps.repo.EXPECT().FindByID(gomock.Any(), "u404").Return(nil, usererrors.ErrUserNotFound)

		_, err := deps.svc.GetByID(ctx, "u404")
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setup(t)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u domain.User) error {
				assert.NotEmpty(t, u.ID)
				assert.Equal(t, "Maya Sari", u.FullName)
				return nil
			})

		res, err := deps.svc.Create(ctx, user.CreateUserRequest{
			FullName: " Maya Sari ",
			Email:    "maya@payrollpro.id",
			Role:     "Manager",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleManager, res.Role)
		assert.Equal(t, "https://ui-avatars.com/api/?name=Maya%20Sari&background=random", res.AvatarURL)
		assert.Equal(t, "Akun pengguna baru berhasil dibuat.", deps.feed.Recent()[0].Message)
	})

	t.Run("duplicate email", func(t *testing.T) {
		deps := setup(t)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(usererrors.ErrUserAlreadyExists)

		_, err := deps.svc.Create(ctx, user.CreateUserRequest{FullName: "Andi 2", Email: "ANDI@payrollpro.id", Role: "Employee"})
		assert.ErrorIs(t, err, usererrors.ErrUserAlreadyExists)
		assert.Empty(t, deps.feed.Recent())
	})

	t.Run("invalid role", func(t *testing.T) {
		deps := setup(t)

		_, err := deps.svc.Create(ctx, user.CreateUserRequest{FullName: "X", Email: "x@payrollpro.id", Role: "Root"})
		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("linked user invalidates employee options", func(t *testing.T) {
		deps := setup(t)
		current := seedUsers()[2].User
		current.AvatarURL = "https://cdn.payrollpro.id/budi.png"

		deps.repo.EXPECT().
			Update(gomock.Any(), "u3", gomock.Any()).
			DoAndReturn(func(_ context.Context, id string, fn func(domain.User) domain.User) (*user.UserResponse, error) {
				u := fn(current)
				return &user.UserResponse{User: u, EmployeeID: "e1"}, nil
			})
		deps.redismock.ExpectDel(employee.OptionsCacheKey).SetVal(1)

		res, err := deps.svc.Update(ctx, "u3", user.UpdateUserRequest{
			FullName: "Budi S. Pratama",
			Email:    "budi.pratama@payrollpro.id",
			Role:     "Employee",
		})
		require.NoError(t, err)
		assert.Equal(t, "Budi S. Pratama", res.FullName)
		assert.Equal(t, "https://cdn.payrollpro.id/budi.png", res.AvatarURL)
		assert.Equal(t, "Data akun pengguna berhasil diperbarui.", deps.feed.Recent()[0].Message)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("unlinked user keeps cache", func(t *testing.T) {
		deps := setup(t)
		deps.repo.EXPECT().
			Update(gomock.Any(), "u2", gomock.Any()).
			DoAndReturn(func(_ context.Context, id string, fn func(domain.User) domain.User) (*user.UserResponse, error) {
				return &user.UserResponse{User: fn(seedUsers()[1].User)}, nil
			})

		res, err := deps.svc.Update(ctx, "u2", user.UpdateUserRequest{FullName: "Siti", Email: "siti@payrollpro.id", Role: "Admin"})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, res.Role)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("repository errors pass through", func(t *testing.T) {
		deps := setup(t)
		deps.repo.EXPECT().Update(gomock.Any(), "u404", gomock.Any()).Return(nil, usererrors.ErrUserNotFound)
		deps.repo.EXPECT().Update(gomock.Any(), "u1", gomock.Any()).Return(nil, usererrors.ErrUserAlreadyExists)

		_, err := deps.svc.Update(ctx, "u404", user.UpdateUserRequest{FullName: "X", Email: "x@payrollpro.id", Role: "Admin"})
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)

		_, err = deps.svc.Update(ctx, "u1", user.UpdateUserRequest{FullName: "Andi", Email: "siti@payrollpro.id", Role: "Admin"})
		assert.ErrorIs(t, err, usererrors.ErrUserAlreadyExists)
		assert.Empty(t, deps.feed.Recent())
	})

	t.Run("invalid role", func(t *testing.T) {
		deps := setup(t)

		_, err := deps.svc.Update(ctx, "u1", user.UpdateUserRequest{FullName: "Andi", Email: "andi@payrollpro.id", Role: "Root"})
		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})
}

// racingRepository menjalankan beforeUpdate sekali sebelum Update diteruskan,
// meniru request lain yang menulis di antara validasi dan penyimpanan.
type racingRepository struct {
	user.Repository
	beforeUpdate func()
}

func (r *racingRepository) Update(ctx context.Context, id string, fn func(domain.User) domain.User) (*user.UserResponse, error) {
	if r.beforeUpdate != nil {
		r.beforeUpdate()
		r.beforeUpdate = nil
	}
	return r.Repository.Update(ctx, id, fn)
}

func TestUserService_Update_KeepsConcurrentWrite(t *testing.T) {
	st := newStore()
	base := user.NewRepository(st)
	repo := &racingRepository{
		Repository: base,
		beforeUpdate: func() {
			_, err := base.Update(context.Background(), "u2", func(u domain.User) domain.User {
				u.AvatarURL = "https://cdn.payrollpro.id/siti.png"
				return u
			})
			require.NoError(t, err)
		},
	}
	svc := user.NewService(repo, nil, notification.NewFeed(10))

	res, err := svc.Update(context.Background(), "u2", user.UpdateUserRequest{
		FullName: "Siti Rahmawati",
		Email:    "siti@payrollpro.id",
		Role:     "Manager",
	})
	require.NoError(t, err)
	assert.Equal(t, "Siti Rahmawati", res.FullName)
	assert.Equal(t, "https://cdn.payrollpro.id/siti.png", res.AvatarURL)

	got, ok := st.Snapshot().FindUser("u2")
	require.True(t, ok)
	assert.Equal(t, "https://cdn.payrollpro.id/siti.png", got.AvatarURL)
}
