package messaging

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// SocketClient represents a single connected websocket client.
type SocketClient struct {
	Conn      *websocket.Conn
	SessionID string
	Send      chan []byte
}

// socketEnvelope is the wire format for all websocket pushes.
type socketEnvelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// ActivityPayload is the periodic connection summary sent on each tick.
type ActivityPayload struct {
	SessionCount    int       `json:"sessionCount"`
	ConnectionCount int       `json:"connectionCount"`
	Timestamp       time.Time `json:"timestamp"`
}

// SocketHub manages all connected websocket clients grouped by visitor session.
type SocketHub struct {
	sessionClients map[string]map[*SocketClient]bool
	register       chan *SocketClient
	unregister     chan *SocketClient
	sessionCount   func() int
	mu             sync.RWMutex
}

// NewSocketHub creates a new hub instance.
func NewSocketHub() *SocketHub {
	return &SocketHub{
		sessionClients: make(map[string]map[*SocketClient]bool),
		register:       make(chan *SocketClient),
		unregister:     make(chan *SocketClient),
	}
}

// Run starts the hub's main loop. This should be run as a goroutine.
func (h *SocketHub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.sessionClients[client.SessionID]; !ok {
				h.sessionClients[client.SessionID] = make(map[*SocketClient]bool)
			}
			h.sessionClients[client.SessionID][client] = true
			log.Printf("Socket client registered for session: %s", client.SessionID)
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.sessionClients[client.SessionID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(h.sessionClients, client.SessionID)
					}
				}
			}
			log.Printf("Socket client unregistered for session: %s", client.SessionID)
			h.mu.Unlock()

		case <-ticker.C:
			h.broadcastActivity()
		}
	}
}

// Register queues a client for registration.
func (h *SocketHub) Register(client *SocketClient) {
	h.register <- client
}

// Unregister queues a client for unregistration.
func (h *SocketHub) Unregister(client *SocketClient) {
	h.unregister <- client
}

// SetSessionCounter provides the resolved-session count reported in the
// periodic activity payload. Without one, the payload falls back to the
// number of sessions with open sockets.
func (h *SocketHub) SetSessionCounter(fn func() int) {
	h.mu.Lock()
	h.sessionCount = fn
	h.mu.Unlock()
}

// SessionConnectionCount returns the number of open sockets for a session.
func (h *SocketHub) SessionConnectionCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessionClients[sessionID])
}

// SendToSession pushes an event to every websocket client of a session.
func (h *SocketHub) SendToSession(sessionID, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal socket payload: %v", err)
		return
	}
	message, err := json.Marshal(socketEnvelope{Event: event, Payload: data})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.sessionClients[sessionID] {
		select {
		case client.Send <- message:
		default:
			// Slow consumer, skip this tick rather than block the hub.
		}
	}
}

// broadcastActivity sends the connection summary to every connected client.
func (h *SocketHub) broadcastActivity() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	connections := 0
	for _, clients := range h.sessionClients {
		connections += len(clients)
	}
	if connections == 0 {
		return
	}

	sessions := len(h.sessionClients)
	if h.sessionCount != nil {
		sessions = h.sessionCount()
	}

	payload, err := json.Marshal(ActivityPayload{
		SessionCount:    sessions,
		ConnectionCount: connections,
		Timestamp:       time.Now().UTC(),
	})
	if err != nil {
		return
	}
	message, err := json.Marshal(socketEnvelope{Event: "activity", Payload: payload})
	if err != nil {
		return
	}

	for _, clients := range h.sessionClients {
		for client := range clients {
			select {
			case client.Send <- message:
			default:
			}
		}
	}
}
