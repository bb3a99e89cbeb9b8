package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedRateLimiter_SweepsIdleKeys(t *testing.T) {
	now := time.Date(2025, 10, 18, 8, 0, 0, 0, time.UTC)
	k := NewKeyedRateLimiter(1, 1)
	k.now = func() time.Time { return now }
	k.lastSweep = now

	first := k.GetLimiter("10.0.0.1")
	assert.Same(t, first, k.GetLimiter("10.0.0.1"))
	k.GetLimiter("10.0.0.2")
	assert.Equal(t, 2, k.Len())

	now = now.Add(limiterIdleTTL + time.Minute)
	k.GetLimiter("10.0.0.3")

	assert.Equal(t, 1, k.Len())
	assert.NotSame(t, first, k.GetLimiter("10.0.0.1"))
}
