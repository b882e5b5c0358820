package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/shinescript/shinescript-go/internal/domain/notifications"
	"github.com/shinescript/shinescript-go/internal/infrastructure/messaging"
	"github.com/shinescript/shinescript-go/internal/infrastructure/observability/logging"
)

// NotificationService keeps an ordered queue of transient toasts per
// visitor session. Each toast self-removes after the configured TTL
// unless dismissed earlier. Queues are independent across sessions.
type NotificationService struct {
	queues map[string][]*notifications.Notification
	timers map[string]*time.Timer

	ttl         time.Duration
	idGenerator func() string

	mu          sync.Mutex
	logger      *logging.ChanneledLogger
	broadcaster messaging.Broadcaster
}

// NewNotificationService creates the toast queue service. The broadcaster
// is optional.
func NewNotificationService(ttl time.Duration, idGenerator func() string, logger *logging.ChanneledLogger, broadcaster messaging.Broadcaster) *NotificationService {
	return &NotificationService{
		queues:      make(map[string][]*notifications.Notification),
		timers:      make(map[string]*time.Timer),
		ttl:         ttl,
		idGenerator: idGenerator,
		logger:      logger,
		broadcaster: broadcaster,
	}
}

// Push appends a toast to the session's queue and schedules its expiry.
func (s *NotificationService) Push(sessionID, message string, kind notifications.Kind) (*notifications.Notification, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("invalid notification kind: %q", kind)
	}

	notification := &notifications.Notification{
		ID:        s.idGenerator(),
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.queues[sessionID] = append(s.queues[sessionID], notification)
	s.timers[notification.ID] = time.AfterFunc(s.ttl, func() {
		s.expire(sessionID, notification.ID)
	})
	s.mu.Unlock()

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToast(sessionID, notification)
	}
	if s.logger != nil {
		s.logger.System().Debug("Toast pushed", "sessionId", sessionID, "id", notification.ID, "kind", string(kind))
	}

	return notification, nil
}

// Dismiss removes a toast before its timeout. Unknown IDs are a no-op.
func (s *NotificationService) Dismiss(sessionID, notificationID string) {
	s.mu.Lock()
	removed := s.removeLocked(sessionID, notificationID)
	if timer, exists := s.timers[notificationID]; exists {
		timer.Stop()
		delete(s.timers, notificationID)
	}
	s.mu.Unlock()

	if removed && s.broadcaster != nil {
		s.broadcaster.BroadcastToastDismissed(sessionID, notificationID)
	}
}

// Active returns copies of the session's live toasts in arrival order.
func (s *NotificationService) Active(sessionID string) []notifications.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue := s.queues[sessionID]
	active := make([]notifications.Notification, len(queue))
	for i, n := range queue {
		active[i] = *n
	}
	return active
}

// ClearSession drops every pending toast for a session.
func (s *NotificationService) ClearSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.queues[sessionID] {
		if timer, exists := s.timers[n.ID]; exists {
			timer.Stop()
			delete(s.timers, n.ID)
		}
	}
	delete(s.queues, sessionID)
}

// expire is the timer callback for automatic removal.
func (s *NotificationService) expire(sessionID, notificationID string) {
	s.mu.Lock()
	removed := s.removeLocked(sessionID, notificationID)
	delete(s.timers, notificationID)
	s.mu.Unlock()

	if removed && s.broadcaster != nil {
		s.broadcaster.BroadcastToastDismissed(sessionID, notificationID)
	}
}

// removeLocked drops one toast from a session queue, preserving the order
// of the rest. Caller holds the lock.
func (s *NotificationService) removeLocked(sessionID, notificationID string) bool {
	queue := s.queues[sessionID]
	for i, n := range queue {
		if n.ID == notificationID {
			s.queues[sessionID] = append(queue[:i], queue[i+1:]...)
			if len(s.queues[sessionID]) == 0 {
				delete(s.queues, sessionID)
			}
			return true
		}
	}
	return false
}
