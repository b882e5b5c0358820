// Package messaging defines interfaces for real-time communication.
package messaging

import (
	"github.com/shinescript/shinescript-go/internal/domain/notifications"
	"github.com/shinescript/shinescript-go/internal/domain/session"
)

// Broadcaster defines the interface for managing SSE client connections and broadcasting messages.
type Broadcaster interface {
	AddClient(sessionID string) chan string
	RemoveClient(ch chan string, sessionID string)
	GetSessionConnectionCount(sessionID string) int
	BroadcastToast(sessionID string, notification *notifications.Notification)
	BroadcastToastDismissed(sessionID, notificationID string)
	BroadcastSession(sessionID string, snapshot session.Snapshot)
}
