// Package pubsub relays ticket events between server instances over Redis
// Pub/Sub, so realtime clients see events raised on any instance.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/upkeep-inc/upkeep/internal/domain/shared/events"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/services"
	"github.com/upkeep-inc/upkeep/internal/shared/goroutine"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

const ticketEventChannel = "upkeep:events:ticket"

// relayedEvent is the message published on ticketEventChannel.
type relayedEvent struct {
	InstanceID string                `json:"instance_id"`
	Event      *services.TicketEvent `json:"event"`
}

// RedisTicketEventBus publishes local ticket events and delivers the events
// of other instances.
type RedisTicketEventBus struct {
	client     *redis.Client
	logger     logger.Interface
	instanceID string // skips self-delivery
}

func NewRedisTicketEventBus(client *redis.Client, logger logger.Interface) *RedisTicketEventBus {
	return &RedisTicketEventBus{
		client:     client,
		logger:     logger,
		instanceID: uuid.NewString(),
	}
}

// Handle implements events.EventHandler by publishing event to the other
// instances.
func (b *RedisTicketEventBus) Handle(event events.DomainEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return b.Publish(ctx, services.NewTicketEvent(event))
}

func (b *RedisTicketEventBus) Publish(ctx context.Context, event *services.TicketEvent) error {
	data, err := json.Marshal(relayedEvent{InstanceID: b.instanceID, Event: event})
	if err != nil {
		return fmt.Errorf("failed to marshal ticket event: %w", err)
	}

	if err := b.client.Publish(ctx, ticketEventChannel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish ticket event",
			"event_type", event.Type,
			"ticket_id", event.TicketID,
			"error", err,
		)
		return fmt.Errorf("failed to publish ticket event: %w", err)
	}

	b.logger.Debugw("ticket event published to Redis", "event_type", event.Type)
	return nil
}

// Subscribe delivers events published by other instances until ctx is
// done, reconnecting after failures.
func (b *RedisTicketEventBus) Subscribe(ctx context.Context, handler func(event *services.TicketEvent)) error {
	return b.subscribeWithReconnect(ctx, ticketEventChannel, func(payload string) {
		var msg relayedEvent
		if err := json.Unmarshal([]byte(payload), &msg); err != nil || msg.Event == nil {
			b.logger.Warnw("failed to unmarshal ticket event",
				"payload", payload,
				"error", err,
			)
			return
		}

		if msg.InstanceID == b.instanceID {
			return
		}

		handler(msg.Event)
	})
}

// subscribeWithReconnect wraps subscribe with reconnection and exponential backoff.
func (b *RedisTicketEventBus) subscribeWithReconnect(ctx context.Context, channel string, handler func(payload string)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := b.subscribe(ctx, channel, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		b.logger.Warnw("event subscription disconnected, reconnecting",
			"channel", channel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (b *RedisTicketEventBus) subscribe(ctx context.Context, channel string, handler func(payload string)) error {
	sub := b.client.Subscribe(ctx, channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", channel, err)
	}

	b.logger.Infow("subscribed to event channel", "channel", channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("event subscriber stopped",
				"channel", channel,
				"reason", ctx.Err(),
			)
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("event channel closed", "channel", channel)
				return nil
			}

			goroutine.SafeGo(b.logger, "ticket-event-relay", func() {
				handler(msg.Payload)
			})
		}
	}
}
