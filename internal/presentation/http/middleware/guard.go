package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shinescript/shinescript-go/internal/application/services"
	"github.com/shinescript/shinescript-go/internal/domain/session"
	"github.com/shinescript/shinescript-go/internal/domain/user"
	"github.com/shinescript/shinescript-go/internal/infrastructure/observability/logging"
	"github.com/shinescript/shinescript-go/pkg/config"
)

const identityKey = "identity"

// GuardState is the route guard decision for a request.
type GuardState int

const (
	// GuardPending means the session state is not yet resolved; the
	// request must not reach the handler and must not be treated as
	// signed out.
	GuardPending GuardState = iota
	// GuardAllowed means the session carries a signed-in identity.
	GuardAllowed
	// GuardDenied means the session is resolved and signed out.
	GuardDenied
)

// Evaluate maps a session snapshot to a guard decision. Loading always
// wins over the identity check.
func Evaluate(snap session.Snapshot) GuardState {
	if snap.Loading {
		return GuardPending
	}
	if snap.User == nil {
		return GuardDenied
	}
	return GuardAllowed
}

// Guard protects routes that require a signed-in user. It settles the
// session from the bearer token (header or cookie) when the hub has not
// heard about it yet, then applies Evaluate. Pending sessions get 503 so
// clients retry instead of bouncing to the login screen.
func Guard(hub *services.SessionHub, auth *services.AuthService, logger *logging.ChanneledLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := GetSessionID(c)

		SettleSession(c, hub, auth, logger)

		snap := hub.Snapshot(sessionID)
		hub.Touch(sessionID)

		switch Evaluate(snap) {
		case GuardPending:
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "session state not ready"})
		case GuardDenied:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "authentication required",
				"redirect": "/login",
			})
		case GuardAllowed:
			c.Set(identityKey, snap.User)
			c.Next()
		}
	}
}

// SettleSession resolves a still-loading session from the request's
// session token, announcing signed-out when no valid token is present.
// Sessions the hub has already resolved are left alone.
func SettleSession(c *gin.Context, hub *services.SessionHub, auth *services.AuthService, logger *logging.ChanneledLogger) {
	sessionID := GetSessionID(c)
	if !hub.Snapshot(sessionID).Loading {
		return
	}

	token := extractToken(c)
	if token == "" {
		auth.RestoreSession(sessionID, nil)
		return
	}

	identity, tokenSessionID, err := auth.ResolveToken(token)
	if err != nil || (tokenSessionID != "" && tokenSessionID != sessionID) {
		if logger != nil {
			logger.Auth().Debug("Session token rejected", "sessionId", sessionID)
		}
		auth.RestoreSession(sessionID, nil)
		return
	}

	auth.RestoreSession(sessionID, identity)
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie(config.SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// GetIdentity returns the signed-in identity placed by Guard.
func GetIdentity(c *gin.Context) (*user.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*user.Identity)
	return identity, ok && identity != nil
}
