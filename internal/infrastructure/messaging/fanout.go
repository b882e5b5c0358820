package messaging

import (
	"github.com/shinescript/shinescript-go/internal/domain/notifications"
	"github.com/shinescript/shinescript-go/internal/domain/session"
)

// FanoutBroadcaster delivers session events to both transports: the SSE
// stream and any open websocket for the session. SSE client bookkeeping
// stays on the SSE side; the socket hub tracks its own clients.
type FanoutBroadcaster struct {
	sse *SSEBroadcaster
	hub *SocketHub
}

var _ Broadcaster = (*FanoutBroadcaster)(nil)

// NewFanoutBroadcaster combines the SSE broadcaster and the socket hub
// behind the Broadcaster interface.
func NewFanoutBroadcaster(sse *SSEBroadcaster, hub *SocketHub) *FanoutBroadcaster {
	return &FanoutBroadcaster{sse: sse, hub: hub}
}

// AddClient registers a new SSE client for a visitor session.
func (f *FanoutBroadcaster) AddClient(sessionID string) chan string {
	return f.sse.AddClient(sessionID)
}

// RemoveClient removes an SSE client for a visitor session.
func (f *FanoutBroadcaster) RemoveClient(ch chan string, sessionID string) {
	f.sse.RemoveClient(ch, sessionID)
}

// GetSessionConnectionCount counts a session's connections across both transports.
func (f *FanoutBroadcaster) GetSessionConnectionCount(sessionID string) int {
	return f.sse.GetSessionConnectionCount(sessionID) + f.hub.SessionConnectionCount(sessionID)
}

// BroadcastToast pushes a toast to the session over SSE and websocket.
func (f *FanoutBroadcaster) BroadcastToast(sessionID string, notification *notifications.Notification) {
	f.sse.BroadcastToast(sessionID, notification)
	f.hub.SendToSession(sessionID, "toast", notification)
}

// BroadcastToastDismissed tells the session's clients that a toast was removed.
func (f *FanoutBroadcaster) BroadcastToastDismissed(sessionID, notificationID string) {
	f.sse.BroadcastToastDismissed(sessionID, notificationID)
	f.hub.SendToSession(sessionID, "toast_dismissed", map[string]string{"id": notificationID})
}

// BroadcastSession pushes the latest session snapshot over both transports.
func (f *FanoutBroadcaster) BroadcastSession(sessionID string, snapshot session.Snapshot) {
	f.sse.BroadcastSession(sessionID, snapshot)
	f.hub.SendToSession(sessionID, "session_changed", snapshot)
}
