// Package ratelimit throttles login attempts per client.
package ratelimit

import (
	"context"
	"time"
)

type Config struct {
	Limit  int
	Window time.Duration
}

// Limiter counts one attempt for key and reports whether it is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}
