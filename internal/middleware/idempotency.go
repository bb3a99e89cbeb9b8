package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"payroll-pro/internal/shared/contextutil"
	"payroll-pro/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyCacheKey = "idempotency_cache_key"
	IdempotencyLockKey  = "idempotency_lock_key"
	idempotencyTTL      = 24 * time.Hour
	idempotencyLockTTL  = 30 * time.Second
)

// Idempotency memutar ulang respons POST yang sudah sukses untuk header
// Idempotency-Key yang sama, dan menolak request ganda yang sedang berjalan.
// Handler menyimpan hasil dengan StoreIdempotentResult.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		userID := c.GetString("user_id")
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached any
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
				c.Header("Idempotent-Replayed", "true")
				response.Success(c, http.StatusOK, cached, nil)
				c.Abort()
				return
			}
		} else if !errors.Is(err, redis.Nil) {
			// Redis bermasalah: jangan blokir request.
			contextutil.GetLogger(ctx, nil).Warn("idempotency lookup failed", zap.Error(err))
			c.Next()
			return
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			contextutil.GetLogger(ctx, nil).Warn("idempotency lock failed", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			response.Error(c, http.StatusConflict, "PROCESSING", "Transaksi Anda sedang diproses, mohon tunggu sebentar.", nil)
			c.Abort()
			return
		}

		c.Set(IdempotencyCacheKey, cacheKey)
		c.Set(IdempotencyLockKey, lockKey)

		c.Next()
	}
}

// ReleaseIdempotencyLock dipanggil handler (defer) setelah selesai memproses.
func ReleaseIdempotencyLock(c *gin.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	if lk := c.GetString(IdempotencyLockKey); lk != "" {
		rdb.Del(c.Request.Context(), lk)
	}
}

func StoreIdempotentResult(c *gin.Context, rdb *redis.Client, result any) {
	if rdb == nil {
		return
	}
	ck := c.GetString(IdempotencyCacheKey)
	if ck == "" {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := rdb.Set(c.Request.Context(), ck, payload, idempotencyTTL).Err(); err != nil {
		contextutil.GetLogger(c.Request.Context(), nil).Warn("store idempotent result failed", zap.Error(err))
	}
}
