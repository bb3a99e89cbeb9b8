package position_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"payroll-pro/internal/domain"
	"payroll-pro/internal/position"
	positionerrors "payroll-pro/internal/position/errors"
	positionMock "payroll-pro/internal/position/mock"
	"payroll-pro/internal/store"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type serviceDeps struct {
	redismock redismock.ClientMock
	service   position.Service
}

func seedStore() *store.Store {
	return store.New(store.State{
		Departments: []domain.Department{{ID: "d1", Name: "Engineering"}, {ID: "d2", Name: "Finance"}},
		Positions: []domain.Position{
			{ID: "p1", Title: "Backend Engineer", DepartmentID: "d1"},
			{ID: "p2", Title: "QA Engineer", DepartmentID: "d1"},
			{ID: "p3", Title: "Accountant", DepartmentID: "d2"},
		},
	})
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	rdb, mock := redismock.NewClientMock()
	return &serviceDeps{
		redismock: mock,
		service:   position.NewService(position.NewRepository(seedStore()), rdb, zap.NewNop()),
	}
}

func TestPositionService_GetAll_CacheMiss(t *testing.T) {
	deps := setupServiceTest(t)
	key := position.GetPositionAllKey("d1")

	expected := []position.PositionResponse{
		{ID: "p1", Title: "Backend Engineer", DepartmentID: "d1", DepartmentName: "Engineering"},
		{ID: "p2", Title: "QA Engineer", DepartmentID: "d1", DepartmentName: "Engineering"},
	}
	raw, _ := json.Marshal(expected)

	deps.redismock.ExpectGet(key).RedisNil()
	deps.redismock.ExpectSet(key, raw, 30*time.Minute).SetVal("OK")

	res, err := deps.service.GetAll(context.Background(), position.GetPositionsFilterRequest{DepartmentID: "d1"})
	require.NoError(t, err)
	assert.Equal(t, expected, res)
	assert.NoError(t, deps.redismock.ExpectationsWereMet())
}

func TestPositionService_GetAll_CacheHit(t *testing.T) {
	deps := setupServiceTest(t)
	key := position.GetPositionAllKey("")
	assert.Equal(t, "positions:all:*", key)

	deps.redismock.ExpectGet(key).SetVal(`[{"id":"p9","title":"Cached","department_id":"d1"}]`)

	res, err := deps.service.GetAll(context.Background(), position.GetPositionsFilterRequest{})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Cached", res[0].Title)
}

func TestPositionService_GetAll_WithoutRedis(t *testing.T) {
	svc := position.NewService(position.NewRepository(seedStore()), nil)

	res, err := svc.GetAll(context.Background(), position.GetPositionsFilterRequest{})
	require.NoError(t, err)
	assert.Len(t, res, 3)
}

func TestPositionService_GetByID(t *testing.T) {
	svc := position.NewService(position.NewRepository(seedStore()), nil)

	res, err := svc.GetByID(context.Background(), "p3")
	require.NoError(t, err)
	assert.Equal(t, "Finance", res.DepartmentName)

	_, err = svc.GetByID(context.Background(), "p404")
	assert.ErrorIs(t, err, positionerrors.ErrPositionNotFound)
}

func TestPositionService_GetAll_RepositoryErrorNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := positionMock.NewMockRepository(ctrl)
	rdb, redisMock := redismock.NewClientMock()
	svc := position.NewService(repo, rdb, zap.NewNop())
	key := position.GetPositionAllKey("d1")

	redisMock.ExpectGet(key).RedisNil()
	repo.EXPECT().FindAll(gomock.Any(), "d1").Return(nil, errors.New("store error"))

	res, err := svc.GetAll(context.Background(), position.GetPositionsFilterRequest{DepartmentID: "d1"})
	assert.Error(t, err)
	assert.Nil(t, res)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestPositionService_GetByID_FromRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := positionMock.NewMockRepository(ctrl)
	svc := position.NewService(repo, nil)

	repo.EXPECT().FindByID(gomock.Any(), "p2").Return(&position.PositionResponse{ID: "p2", Title: "QA Engineer"}, nil)
	repo.EXPECT().FindByID(gomock.Any(), "p9").Return(nil, positionerrors.ErrPositionNotFound)

	res, err := svc.GetByID(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, "QA Engineer", res.Title)

	_, err = svc.GetByID(context.Background(), "p9")
	assert.ErrorIs(t, err, positionerrors.ErrPositionNotFound)
}
