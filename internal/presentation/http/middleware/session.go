// Package middleware provides HTTP middleware for the presentation layer.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/shinescript/shinescript-go/internal/infrastructure/security"
	"github.com/shinescript/shinescript-go/pkg/config"
)

const sessionIDKey = "sessionId"

// sessionCookieName identifies the visitor session, not the auth token.
const sessionCookieName = "shinescript_session"

// EnsureSession guarantees every request carries a visitor session ID.
// The ID comes from the session header or cookie; requests without one
// get a fresh ULID echoed back in both.
func EnsureSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(config.SessionIDHeader)
		if sessionID == "" {
			if cookie, err := c.Cookie(sessionCookieName); err == nil {
				sessionID = cookie
			}
		}
		if sessionID == "" {
			sessionID = security.GenerateULID()
		}

		c.SetCookie(sessionCookieName, sessionID, int(config.SessionMaxIdle.Seconds()), "/", "", false, true)
		c.Header(config.SessionIDHeader, sessionID)
		c.Set(sessionIDKey, sessionID)

		c.Next()
	}
}

// GetSessionID returns the visitor session ID placed by EnsureSession.
func GetSessionID(c *gin.Context) string {
	if sessionID, exists := c.Get(sessionIDKey); exists {
		if s, ok := sessionID.(string); ok {
			return s
		}
	}
	return ""
}
