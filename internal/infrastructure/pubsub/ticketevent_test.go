package pubsub

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upkeep-inc/upkeep/internal/domain/shared/events"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/services"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

type collector struct {
	mu     sync.Mutex
	events []*services.TicketEvent
}

func (c *collector) add(e *services.TicketEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *collector) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func TestRedisTicketEventBus_RelaysToOtherInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := logger.NewLogger()
	sender := NewRedisTicketEventBus(client, log)
	receiver := NewRedisTicketEventBus(client, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var self, other collector
	go func() { _ = sender.Subscribe(ctx, self.add) }()
	go func() { _ = receiver.Subscribe(ctx, other.add) }()

	require.Eventually(t, func() bool {
		return mr.PubSubNumSub(ticketEventChannel)[ticketEventChannel] == 2
	}, 2*time.Second, 10*time.Millisecond)

	event := events.NewBaseEvent("pm_abc", "ticket.rescheduled", time.Unix(1700000000, 0))
	require.NoError(t, sender.Handle(event))

	require.Eventually(t, func() bool { return other.len() == 1 }, 2*time.Second, 10*time.Millisecond)
	other.mu.Lock()
	got := other.events[0]
	other.mu.Unlock()
	assert.Equal(t, "ticket.rescheduled", got.Type)
	assert.Equal(t, "pm_abc", got.TicketID)
	assert.Equal(t, int64(1700000000), got.Timestamp)

	assert.Never(t, func() bool { return self.len() > 0 }, 200*time.Millisecond, 20*time.Millisecond,
		"an instance does not receive its own events")
}

func TestRedisTicketEventBus_SubscribeStopsWithContext(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	bus := NewRedisTicketEventBus(client, logger.NewLogger())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- bus.Subscribe(ctx, func(*services.TicketEvent) {}) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Subscribe did not return after cancel")
	}
}
