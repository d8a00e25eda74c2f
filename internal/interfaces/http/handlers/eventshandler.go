package handlers

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/upkeep-inc/upkeep/internal/infrastructure/services"
	"github.com/upkeep-inc/upkeep/internal/interfaces/http/middleware"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
	"github.com/upkeep-inc/upkeep/internal/shared/utils"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second

	// clients only send pings and close frames
	maxClientMessageSize = 512
)

// EventStream hands out realtime subscriptions.
type EventStream interface {
	Register(username string) *services.EventConn
	Unregister(connID string)
}

// EventsHandler streams ticket events (scheduled, closed, overdue,
// breakdown reported) to WebSocket clients.
type EventsHandler struct {
	hub      EventStream
	upgrader websocket.Upgrader
	logger   logger.Interface
}

// NewEventsHandler accepts connections from allowedOrigins; "*" accepts
// any origin.
func NewEventsHandler(hub EventStream, allowedOrigins []string, log logger.Interface) *EventsHandler {
	allowAny := slices.Contains(allowedOrigins, "*")
	return &EventsHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowAny || origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
		logger: log,
	}
}

// Stream handles GET /ws/events
// @Summary Ticket event stream (WebSocket)
// @Description Pass the access token as the token query parameter when the client cannot set headers.
// @Tags events
// @Security Bearer
// @Param token query string false "Access token"
// @Success 101
// @Failure 401 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /ws/events [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	username := middleware.CurrentUsername(c)

	eventConn := h.hub.Register(username)
	if eventConn == nil {
		utils.ErrorResponseWithError(c, errors.NewRateLimitedError("too many realtime connections"))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warnw("failed to upgrade realtime connection", "username", username, "error", err)
		h.hub.Unregister(eventConn.ID)
		return
	}

	go h.writePump(eventConn, conn)
	h.readPump(eventConn, conn)
}

// readPump discards client frames and detects disconnects.
func (h *EventsHandler) readPump(eventConn *services.EventConn, conn *websocket.Conn) {
	defer func() {
		h.hub.Unregister(eventConn.ID)
		conn.Close()
	}()

	conn.SetReadLimit(maxClientMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warnw("realtime websocket read error",
					"error", err,
					"conn_id", eventConn.ID,
				)
			}
			return
		}
	}
}

func (h *EventsHandler) writePump(eventConn *services.EventConn, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-eventConn.Send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.logger.Warnw("failed to write to realtime websocket",
					"error", err,
					"conn_id", eventConn.ID,
				)
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
