// Package security provides JWT token utilities
package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/shinescript/shinescript-go/internal/domain/user"
)

// ValidateJWT validates a JWT token and returns the claims
func ValidateJWT(tokenString, jwtSecret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// GenerateSessionToken creates a JWT for a signed-in identity, bound to
// the caller's session id via the jti claim.
func GenerateSessionToken(identity *user.Identity, sessionID, jwtSecret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  identity.ID,
		"jti":  sessionID,
		"type": "session_auth",
		"identity": map[string]string{
			"id":          identity.ID,
			"displayName": identity.DisplayName,
			"email":       identity.Email,
		},
		"iat": time.Now().UTC().Unix(),
		"exp": time.Now().UTC().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// IdentityFromClaims extracts the identity embedded in a session token.
// Returns nil when the claims do not carry a session identity.
func IdentityFromClaims(claims jwt.MapClaims) *user.Identity {
	if tokenType, ok := claims["type"].(string); !ok || tokenType != "session_auth" {
		return nil
	}
	identityData, ok := claims["identity"].(map[string]any)
	if !ok {
		return nil
	}
	id, ok := identityData["id"].(string)
	if !ok || id == "" {
		return nil
	}

	identity := &user.Identity{ID: id}
	if name, ok := identityData["displayName"].(string); ok {
		identity.DisplayName = name
	}
	if email, ok := identityData["email"].(string); ok {
		identity.Email = email
	}
	return identity
}

// SessionIDFromClaims extracts the session id a token was issued for.
func SessionIDFromClaims(claims jwt.MapClaims) string {
	if jti, ok := claims["jti"].(string); ok {
		return jti
	}
	return ""
}
