package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

// assertExclusive runs workers that each hold the lock briefly and checks
// no two ever overlap.
func assertExclusive(t *testing.T, l Locker) {
	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "pm_1")
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxInside)
}

func TestKeyedMutex(t *testing.T) {
	km := NewKeyedMutex()
	assertExclusive(t, km)
	assert.Zero(t, km.size(), "idle keys are dropped")

	t.Run("different keys do not block", func(t *testing.T) {
		unlockA, err := km.Lock(context.Background(), "a")
		require.NoError(t, err)
		defer unlockA()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		unlockB, err := km.Lock(ctx, "b")
		require.NoError(t, err)
		unlockB()
	})

	t.Run("waiting honours context", func(t *testing.T) {
		unlock, err := km.Lock(context.Background(), "c")
		require.NoError(t, err)
		defer unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err = km.Lock(ctx, "c")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestRedisLocker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisLocker(client, logger.NewLogger())
	l.retryWait = time.Millisecond
	assertExclusive(t, l)
	assert.False(t, mr.Exists("lock:pm_1"), "lock key is removed on release")

	t.Run("expired lock can be taken over", func(t *testing.T) {
		_, err := l.Lock(context.Background(), "pm_2")
		require.NoError(t, err)
		mr.FastForward(defaultLockTTL + time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		unlock, err := l.Lock(ctx, "pm_2")
		require.NoError(t, err)
		unlock()
	})
}
