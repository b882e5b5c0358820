package handlers

import (
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shinescript/shinescript-go/internal/infrastructure/messaging"
	"github.com/shinescript/shinescript-go/internal/infrastructure/observability/logging"
	"github.com/shinescript/shinescript-go/internal/presentation/http/middleware"
	"github.com/shinescript/shinescript-go/pkg/config"
)

var activeSSEConnections int64

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin enforcement happens in the CORS middleware.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// EventsHandlers contains the real-time event stream HTTP handlers
type EventsHandlers struct {
	broadcaster *messaging.SSEBroadcaster
	socketHub   *messaging.SocketHub
	logger      *logging.ChanneledLogger
}

// NewEventsHandlers creates event stream handlers with injected dependencies
func NewEventsHandlers(broadcaster *messaging.SSEBroadcaster, socketHub *messaging.SocketHub, logger *logging.ChanneledLogger) *EventsHandlers {
	return &EventsHandlers{
		broadcaster: broadcaster,
		socketHub:   socketHub,
		logger:      logger,
	}
}

// GetSSE handles GET /api/v1/events/sse - the per-session stream carrying
// toast and session-change events.
func (h *EventsHandlers) GetSSE(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	h.logger.SSE().Debug("Received SSE connection request", "method", c.Request.Method, "path", c.Request.URL.Path, "sessionId", sessionID)

	currentConnections := atomic.LoadInt64(&activeSSEConnections)
	if currentConnections >= int64(config.MaxSSEConnections) {
		h.logger.SSE().Warn("SSE connection limit reached",
			"sessionId", sessionID,
			"currentConnections", currentConnections,
			"maxConnections", config.MaxSSEConnections)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "SSE connection limit reached. Please try again later.",
		})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	ch := h.broadcaster.AddClient(sessionID)

	atomic.AddInt64(&activeSSEConnections, 1)
	defer func() {
		atomic.AddInt64(&activeSSEConnections, -1)
		h.broadcaster.RemoveClient(ch, sessionID)
	}()

	fmt.Fprintf(c.Writer, "data: {\"type\":\"connected\",\"sessionId\":%q,\"timestamp\":%q}\n\n", sessionID, time.Now().Format(time.RFC3339))
	c.Writer.Flush()

	heartbeat := time.NewTicker(config.SSEHeartbeatInterval)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case message, ok := <-ch:
			if !ok {
				return false
			}
			fmt.Fprint(w, message)
			return true
		case <-heartbeat.C:
			fmt.Fprint(w, ": heartbeat\n\n")
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// GetWS handles GET /api/v1/events/ws - the same event feed over WebSocket.
func (h *EventsHandlers) GetWS(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.SSE().Error("WebSocket upgrade failed", "error", err.Error(), "sessionId", sessionID)
		return
	}

	client := &messaging.SocketClient{
		Conn:      conn,
		SessionID: sessionID,
		Send:      make(chan []byte, 16),
	}
	h.socketHub.Register(client)

	go h.writePump(client)
	go h.readPump(client)
}

// writePump drains the client's send channel to the socket.
func (h *EventsHandlers) writePump(client *messaging.SocketClient) {
	defer client.Conn.Close()

	for message := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump discards inbound frames and unregisters on disconnect.
func (h *EventsHandlers) readPump(client *messaging.SocketClient) {
	defer func() {
		h.socketHub.Unregister(client)
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(512)
	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
