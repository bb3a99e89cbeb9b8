package middleware

import (
	"sync"
	"time"

	"payroll-pro/internal/shared/apperror"
	"payroll-pro/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterIdleTTL: limiter yang tidak dipakai selama ini dibuang saat sweep.
const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedRateLimiter menyimpan token bucket per key (IP atau user id).
type KeyedRateLimiter struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	r         rate.Limit // jumlah request per detik
	b         int        // burst
	lastSweep time.Time
	now       func() time.Time
}

func NewKeyedRateLimiter(r rate.Limit, b int) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		entries:   make(map[string]*limiterEntry),
		r:         r,
		b:         b,
		now:       time.Now,
		lastSweep: time.Now(),
	}
}

func (k *KeyedRateLimiter) GetLimiter(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	if now.Sub(k.lastSweep) > limiterIdleTTL {
		for key, e := range k.entries {
			if now.Sub(e.lastSeen) > limiterIdleTTL {
				delete(k.entries, key)
			}
		}
		k.lastSweep = now
	}

	e, exists := k.entries[key]
	if !exists {
		e = &limiterEntry{limiter: rate.NewLimiter(k.r, k.b)}
		k.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

func (k *KeyedRateLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}

func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			response.FromError(c, apperror.ErrRateLimited.WithDetails("Too many requests from this IP"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimitByUser: r = request per detik, b = burst
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.Next() // belum login: sudah dibatasi per IP
			return
		}
		if !limiter.GetLimiter(userID).Allow() {
			response.FromError(c, apperror.ErrRateLimited.WithDetails("Too many requests from this user"))
			c.Abort()
			return
		}
		c.Next()
	}
}
