// Package session defines the observable session state shared across the application.
package session

import "github.com/shinescript/shinescript-go/internal/domain/user"

// Snapshot is a point-in-time copy of a session's auth state. User is nil
// while signed out. Loading stays true until the first provider
// notification for that session has fired; consumers must not treat User
// as authoritative while Loading is true.
type Snapshot struct {
	User    *user.Identity `json:"user"`
	Loading bool           `json:"loading"`
}

// Provider is the narrow capability the session hub needs from an auth
// backend: a single subscription delivering the latest identity (or nil
// when signed out) for a session on every change. The returned
// unsubscribe func releases the subscription and must be safe to call on
// every exit path.
type Provider interface {
	ObserveSession(fn func(sessionID string, identity *user.Identity)) (unsubscribe func(), err error)
}
