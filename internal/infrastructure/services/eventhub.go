// Package services provides infrastructure services.
package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/upkeep-inc/upkeep/internal/domain/shared/events"
	"github.com/upkeep-inc/upkeep/internal/shared/biztime"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

// TicketEvent is the JSON frame pushed to realtime clients.
type TicketEvent struct {
	Type      string `json:"type"`
	TicketID  string `json:"ticketId"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
}

// EventConn is one realtime subscriber.
type EventConn struct {
	ID          string
	Username    string
	Send        chan []byte
	ConnectedAt time.Time
	closed      atomic.Bool
}

// TrySend queues data without blocking. It returns false when the
// connection is closed or its buffer is full.
func (c *EventConn) TrySend(data []byte) (sent bool) {
	if c.closed.Load() {
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			sent = false
		}
	}()

	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

func (c *EventConn) Close() {
	if c.closed.CompareAndSwap(false, true) {
		close(c.Send)
	}
}

// EventHub fans ticket events out to connected clients.
type EventHub struct {
	conns   map[string]*EventConn
	connsMu sync.RWMutex

	userConns   map[string]int
	userConnsMu sync.Mutex

	maxConnsPerUser int
	shutdown        atomic.Bool

	logger logger.Interface
}

type EventHubConfig struct {
	MaxConnsPerUser int // default 5
}

func NewEventHub(log logger.Interface, config *EventHubConfig) *EventHub {
	maxConns := 5
	if config != nil && config.MaxConnsPerUser > 0 {
		maxConns = config.MaxConnsPerUser
	}

	return &EventHub{
		conns:           make(map[string]*EventConn),
		userConns:       make(map[string]int),
		maxConnsPerUser: maxConns,
		logger:          log,
	}
}

// Register adds a connection for username. It returns nil when the user is
// at the connection limit or the hub is shut down.
func (h *EventHub) Register(username string) *EventConn {
	if h.shutdown.Load() {
		return nil
	}

	conn := &EventConn{
		ID:          uuid.NewString(),
		Username:    username,
		Send:        make(chan []byte, 64),
		ConnectedAt: biztime.NowUTC(),
	}

	// Lock order: connsMu then userConnsMu.
	h.connsMu.Lock()
	defer h.connsMu.Unlock()
	h.userConnsMu.Lock()
	defer h.userConnsMu.Unlock()

	if h.userConns[username] >= h.maxConnsPerUser {
		h.logger.Warnw("realtime connection limit exceeded",
			"username", username,
			"limit", h.maxConnsPerUser,
		)
		return nil
	}

	h.conns[conn.ID] = conn
	h.userConns[username]++

	h.logger.Infow("realtime connection registered", "conn_id", conn.ID, "username", username)
	return conn
}

func (h *EventHub) Unregister(connID string) {
	h.connsMu.Lock()
	h.userConnsMu.Lock()

	conn, ok := h.conns[connID]
	if ok {
		delete(h.conns, connID)
		if h.userConns[conn.Username] > 0 {
			h.userConns[conn.Username]--
		}
		if h.userConns[conn.Username] == 0 {
			delete(h.userConns, conn.Username)
		}
	}

	h.userConnsMu.Unlock()
	h.connsMu.Unlock()

	if ok {
		conn.Close()
		h.logger.Infow("realtime connection unregistered", "conn_id", connID, "username", conn.Username)
	}
}

// NewTicketEvent builds the client frame for a domain event.
func NewTicketEvent(event events.DomainEvent) *TicketEvent {
	return &TicketEvent{
		Type:      event.GetEventType(),
		TicketID:  event.GetAggregateID(),
		Timestamp: event.GetOccurredAt().Unix(),
		Data:      event,
	}
}

// Handle implements events.EventHandler by broadcasting every event.
func (h *EventHub) Handle(event events.DomainEvent) error {
	h.Broadcast(NewTicketEvent(event))
	return nil
}

func (h *EventHub) Broadcast(event *TicketEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Errorw("failed to encode realtime event", "event_type", event.Type, "error", err)
		return
	}

	h.connsMu.RLock()
	defer h.connsMu.RUnlock()

	for _, conn := range h.conns {
		if !conn.TrySend(data) {
			h.logger.Warnw("failed to send realtime event, channel full",
				"conn_id", conn.ID,
				"event_type", event.Type,
			)
		}
	}
}

func (h *EventHub) ConnCount() int {
	h.connsMu.RLock()
	defer h.connsMu.RUnlock()
	return len(h.conns)
}

// Shutdown closes every connection. Safe to call more than once.
func (h *EventHub) Shutdown() {
	if !h.shutdown.CompareAndSwap(false, true) {
		return
	}

	h.connsMu.Lock()
	for _, conn := range h.conns {
		conn.Close()
	}
	h.conns = make(map[string]*EventConn)
	h.connsMu.Unlock()

	h.userConnsMu.Lock()
	h.userConns = make(map[string]int)
	h.userConnsMu.Unlock()
}

func (h *EventHub) String() string {
	return fmt.Sprintf("EventHub(conns=%d)", h.ConnCount())
}
