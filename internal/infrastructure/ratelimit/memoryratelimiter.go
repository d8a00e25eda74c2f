package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const defaultMaxKeys = 10000

type window struct {
	start time.Time
	count int
}

// MemoryRateLimiter is a fixed-window limiter for a single instance. The
// number of tracked keys is bounded by an LRU.
type MemoryRateLimiter struct {
	mu     sync.Mutex
	cache  *expirable.LRU[string, *window]
	config Config
	now    func() time.Time
}

func NewMemoryRateLimiter(config Config) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		cache:  expirable.NewLRU[string, *window](defaultMaxKeys, nil, config.Window),
		config: config,
		now:    time.Now,
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	if l.config.Limit <= 0 {
		return true, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.cache.Get(key)
	if !ok || now.Sub(w.start) >= l.config.Window {
		w = &window{start: now}
		l.cache.Add(key, w)
	}
	w.count++
	return w.count <= l.config.Limit, nil
}

func (l *MemoryRateLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache.Remove(key)
	return nil
}
