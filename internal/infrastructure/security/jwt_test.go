package security

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/shinescript/shinescript-go/internal/domain/user"
)

const jwtTestSecret = "test-secret-key"

func testIdentity() *user.Identity {
	return &user.Identity{ID: "u1", DisplayName: "Ana García", Email: "ana@correo.com"}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken(testIdentity(), "s1", jwtTestSecret, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateJWT(token, jwtTestSecret)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	identity := IdentityFromClaims(claims)
	if identity == nil {
		t.Fatal("no identity in claims")
	}
	if identity.ID != "u1" || identity.DisplayName != "Ana García" || identity.Email != "ana@correo.com" {
		t.Errorf("identity = %+v", identity)
	}
	if got := SessionIDFromClaims(claims); got != "s1" {
		t.Errorf("session id = %q, want s1", got)
	}
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateSessionToken(testIdentity(), "s1", jwtTestSecret, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ValidateJWT(token, "otro-secreto"); err == nil {
		t.Error("token signed with a different secret validated")
	}
}

func TestValidateJWTRejectsUnsignedAlgorithm(t *testing.T) {
	token, err := GenerateSessionToken(testIdentity(), "s1", jwtTestSecret, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments", len(parts))
	}

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	forged := header + "." + parts[1] + "."

	if _, err := ValidateJWT(forged, jwtTestSecret); err == nil {
		t.Error("alg=none token validated")
	}
}

func TestValidateJWTRejectsExpiredToken(t *testing.T) {
	token, err := GenerateSessionToken(testIdentity(), "s1", jwtTestSecret, -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ValidateJWT(token, jwtTestSecret); err == nil {
		t.Error("expired token validated")
	}
}

func TestIdentityFromClaimsRejectsWrongType(t *testing.T) {
	claims, err := ValidateJWT(mustToken(t), jwtTestSecret)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	claims["type"] = "refresh"
	if got := IdentityFromClaims(claims); got != nil {
		t.Errorf("identity extracted from non-session token: %+v", got)
	}
}

func mustToken(t *testing.T) string {
	t.Helper()
	token, err := GenerateSessionToken(testIdentity(), "s1", jwtTestSecret, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return token
}
