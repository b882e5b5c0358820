// Package services contains the application service layer
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shinescript/shinescript-go/internal/domain/session"
	"github.com/shinescript/shinescript-go/internal/domain/user"
	"github.com/shinescript/shinescript-go/internal/infrastructure/messaging"
	"github.com/shinescript/shinescript-go/internal/infrastructure/observability/logging"
	"github.com/shinescript/shinescript-go/pkg/config"
)

// SessionHub tracks the auth snapshot of every visitor session and fans
// session changes out to in-process subscribers and connected clients.
//
// A session the hub has never heard about reports Loading=true. The first
// provider notification for a session flips Loading to false; from then on
// the snapshot always carries the latest known identity.
type SessionHub struct {
	sessions    map[string]session.Snapshot
	subscribers map[string]map[int]func(session.Snapshot)
	lastSeen    map[string]time.Time
	nextSubID   int
	unsubscribe func()
	purgeIdle   func(maxIdle time.Duration) int
	initialized bool
	mu          sync.RWMutex
	logger      *logging.ChanneledLogger
	broadcaster messaging.Broadcaster
}

// NewSessionHub creates a session hub. The broadcaster is optional.
func NewSessionHub(logger *logging.ChanneledLogger, broadcaster messaging.Broadcaster) *SessionHub {
	return &SessionHub{
		sessions:    make(map[string]session.Snapshot),
		subscribers: make(map[string]map[int]func(session.Snapshot)),
		lastSeen:    make(map[string]time.Time),
		logger:      logger,
		broadcaster: broadcaster,
	}
}

// Initialize wires the hub to an auth provider. Calling it a second time
// without an intervening Teardown is an error.
func (h *SessionHub) Initialize(provider session.Provider) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.initialized {
		return fmt.Errorf("session hub already initialized")
	}

	unsubscribe, err := provider.ObserveSession(h.handleSessionChange)
	if err != nil {
		return fmt.Errorf("failed to observe session provider: %w", err)
	}

	h.unsubscribe = unsubscribe
	h.initialized = true

	if h.logger != nil {
		h.logger.Auth().Info("Session hub initialized")
	}
	return nil
}

// Teardown releases the provider subscription. Safe to call repeatedly.
func (h *SessionHub) Teardown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.initialized {
		return
	}

	if h.unsubscribe != nil {
		h.unsubscribe()
		h.unsubscribe = nil
	}
	h.initialized = false

	if h.logger != nil {
		h.logger.Auth().Info("Session hub torn down")
	}
}

// Snapshot returns the current auth state for a session. Sessions without
// a resolved state yet report Loading=true with no user.
func (h *SessionHub) Snapshot(sessionID string) session.Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if snap, exists := h.sessions[sessionID]; exists {
		return snap
	}
	return session.Snapshot{User: nil, Loading: true}
}

// Subscribe registers a callback invoked on every snapshot change for the
// session. The returned func removes the subscription.
func (h *SessionHub) Subscribe(sessionID string, fn func(session.Snapshot)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subscribers[sessionID] == nil {
		h.subscribers[sessionID] = make(map[int]func(session.Snapshot))
	}
	id := h.nextSubID
	h.nextSubID++
	h.subscribers[sessionID][id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if subs, exists := h.subscribers[sessionID]; exists {
			delete(subs, id)
			if len(subs) == 0 {
				delete(h.subscribers, sessionID)
			}
		}
	}
}

// Touch refreshes a session's activity timestamp.
func (h *SessionHub) Touch(sessionID string) {
	h.mu.Lock()
	h.lastSeen[sessionID] = time.Now().UTC()
	h.mu.Unlock()
}

// ActiveSessionCount returns the number of sessions with a resolved state.
func (h *SessionHub) ActiveSessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// AttachIdlePurger registers a callback the reaper invokes each cycle to
// evict idle per-user cache state alongside the hub's own session maps.
func (h *SessionHub) AttachIdlePurger(fn func(maxIdle time.Duration) int) {
	h.mu.Lock()
	h.purgeIdle = fn
	h.mu.Unlock()
}

// StartReaper evicts sessions idle beyond the configured maximum until the
// context is cancelled. Run as a goroutine.
func (h *SessionHub) StartReaper(ctx context.Context) {
	ticker := time.NewTicker(config.SessionReaperInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.reap()
		}
	}
}

func (h *SessionHub) reap() {
	h.mu.Lock()

	cutoff := time.Now().UTC().Add(-config.SessionMaxIdle)
	reaped := 0
	for sessionID, seen := range h.lastSeen {
		if seen.Before(cutoff) {
			delete(h.sessions, sessionID)
			delete(h.lastSeen, sessionID)
			reaped++
		}
	}
	purger := h.purgeIdle
	h.mu.Unlock()

	purged := 0
	if purger != nil {
		purged = purger(config.SessionMaxIdle)
	}

	if (reaped > 0 || purged > 0) && h.logger != nil {
		h.logger.Auth().Info("Reaped idle sessions", "count", reaped, "purgedUserState", purged)
	}
}

// handleSessionChange is the provider callback. It records the new
// snapshot and notifies subscribers outside the lock.
func (h *SessionHub) handleSessionChange(sessionID string, identity *user.Identity) {
	snap := session.Snapshot{User: identity, Loading: false}

	h.mu.Lock()
	h.sessions[sessionID] = snap
	h.lastSeen[sessionID] = time.Now().UTC()

	var callbacks []func(session.Snapshot)
	for _, fn := range h.subscribers[sessionID] {
		callbacks = append(callbacks, fn)
	}
	h.mu.Unlock()

	for _, fn := range callbacks {
		fn(snap)
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastSession(sessionID, snap)
	}

	if h.logger != nil {
		signedIn := identity != nil
		h.logger.Auth().Debug("Session state changed", "sessionId", sessionID, "signedIn", signedIn)
	}
}
