// Package messaging provides the concrete implementation of the SSE broadcaster.
package messaging

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/shinescript/shinescript-go/internal/domain/notifications"
	"github.com/shinescript/shinescript-go/internal/domain/session"
	"github.com/shinescript/shinescript-go/internal/infrastructure/observability/logging"
)

// SSEBroadcaster manages session-specific SSE connections.
type SSEBroadcaster struct {
	sessions map[string][]chan string // sessionId -> []channels
	mu       sync.Mutex
	logger   *logging.ChanneledLogger
}

var (
	globalBroadcaster *SSEBroadcaster
	once              sync.Once
)

// NewSSEBroadcaster creates the singleton SSEBroadcaster instance.
func NewSSEBroadcaster(logger *logging.ChanneledLogger) *SSEBroadcaster {
	once.Do(func() {
		globalBroadcaster = &SSEBroadcaster{
			sessions: make(map[string][]chan string),
			logger:   logger,
		}
	})
	return globalBroadcaster
}

// AddClient registers a new SSE client for a visitor session.
func (b *SSEBroadcaster) AddClient(sessionID string) chan string {
	ch := make(chan string, 10)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sessions[sessionID] == nil {
		b.sessions[sessionID] = make([]chan string, 0)
	}
	b.sessions[sessionID] = append(b.sessions[sessionID], ch)

	b.logger.SSE().Debug("SSE client registered", "sessionId", sessionID)
	return ch
}

// RemoveClient removes an SSE client for a visitor session.
func (b *SSEBroadcaster) RemoveClient(ch chan string, sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sessionClients, exists := b.sessions[sessionID]; exists {
		newClients := make([]chan string, 0, len(sessionClients)-1)
		for _, client := range sessionClients {
			if client != ch {
				newClients = append(newClients, client)
			}
		}
		b.sessions[sessionID] = newClients

		if len(b.sessions[sessionID]) == 0 {
			delete(b.sessions, sessionID)
		}
	}
	b.logger.SSE().Debug("SSE client unregistered", "sessionId", sessionID)
}

// GetSessionConnectionCount returns the connection count for a specific session.
func (b *SSEBroadcaster) GetSessionConnectionCount(sessionID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sessions[sessionID])
}

// GetTotalConnectionCount returns the total connection count across all sessions.
func (b *SSEBroadcaster) GetTotalConnectionCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	total := 0
	for _, clients := range b.sessions {
		total += len(clients)
	}
	return total
}

// BroadcastToast pushes a toast notification to every client of a session.
func (b *SSEBroadcaster) BroadcastToast(sessionID string, notification *notifications.Notification) {
	payload, err := json.Marshal(notification)
	if err != nil {
		b.logger.SSE().Error("Failed to marshal toast payload", "error", err.Error(), "sessionId", sessionID)
		return
	}
	b.broadcast(sessionID, "toast", string(payload))
}

// BroadcastToastDismissed tells a session's clients that a toast was removed.
func (b *SSEBroadcaster) BroadcastToastDismissed(sessionID, notificationID string) {
	b.broadcast(sessionID, "toast_dismissed", fmt.Sprintf(`{"id":%q}`, notificationID))
}

// BroadcastSession pushes the latest session snapshot to a session's clients.
func (b *SSEBroadcaster) BroadcastSession(sessionID string, snapshot session.Snapshot) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		b.logger.SSE().Error("Failed to marshal session payload", "error", err.Error(), "sessionId", sessionID)
		return
	}
	b.broadcast(sessionID, "session_changed", string(payload))
}

func (b *SSEBroadcaster) broadcast(sessionID, event, data string) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.SSE().Error("Panic recovered in broadcast", "error", r, "sessionId", sessionID)
		}
	}()

	message := fmt.Sprintf("event: %s\ndata: %s\n\n", event, data)
	b.logger.SSE().Debug("Broadcasting to session", "message", strings.ReplaceAll(message, "\n", "\\n"), "sessionId", sessionID)

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.sessions[sessionID] {
		select {
		case ch <- message:
		default:
			b.logger.SSE().Warn("SSE channel full, message dropped", "sessionId", sessionID)
		}
	}
}
