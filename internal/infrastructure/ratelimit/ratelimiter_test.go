package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func exhaust(t *testing.T, l Limiter, key string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		allowed, err := l.Allow(context.Background(), key)
		require.NoError(t, err)
		require.True(t, allowed, "attempt %d should be allowed", i+1)
	}
}

func TestRedisRateLimiter(t *testing.T) {
	ctx := context.Background()
	limiter := NewRedisRateLimiter(setupTestRedis(t), Config{Limit: 3, Window: time.Minute})

	exhaust(t, limiter, "10.0.0.1", 3)

	allowed, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, allowed, "keys are independent")

	require.NoError(t, limiter.Reset(ctx, "10.0.0.1"))
	allowed, err = limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestMemoryRateLimiter(t *testing.T) {
	ctx := context.Background()
	limiter := NewMemoryRateLimiter(Config{Limit: 2, Window: time.Minute})
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	exhaust(t, limiter, "client", 2)
	allowed, err := limiter.Allow(ctx, "client")
	require.NoError(t, err)
	assert.False(t, allowed)

	now = now.Add(time.Minute)
	allowed, err = limiter.Allow(ctx, "client")
	require.NoError(t, err)
	assert.True(t, allowed, "a new window starts after the old one ends")
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewMemoryRateLimiter(Config{Limit: 0, Window: time.Minute})
	exhaust(t, limiter, "client", 50)
}
