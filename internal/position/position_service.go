package position

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const PositionAllKeyPrefix = "positions:all:"

const positionCacheTTL = 30 * time.Minute

// GetPositionAllKey: satu key per filter departemen, "*" untuk tanpa filter.
func GetPositionAllKey(departmentID string) string {
	if departmentID == "" {
		departmentID = "*"
	}
	return PositionAllKeyPrefix + departmentID
}

//go:generate mockgen -source=position_service.go -destination=mock/position_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, filter GetPositionsFilterRequest) ([]PositionResponse, error)
	GetByID(ctx context.Context, id string) (PositionResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("position.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("position.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) GetAll(ctx context.Context, filter GetPositionsFilterRequest) ([]PositionResponse, error) {
	cacheKey := GetPositionAllKey(filter.DepartmentID)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp []PositionResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		resp, err := s.repo.FindAll(ctx, filter.DepartmentID)
		if err != nil {
			return nil, err
		}

		// data master tidak pernah berubah selama proses hidup
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, positionCacheTTL).Err(); err != nil {
					s.logger.Warn("cache positions failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]PositionResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PositionResponse, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PositionResponse{}, err
	}
	return *post, nil
}
