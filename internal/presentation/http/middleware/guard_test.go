package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/shinescript/shinescript-go/internal/application/services"
	"github.com/shinescript/shinescript-go/internal/domain/session"
	"github.com/shinescript/shinescript-go/internal/domain/user"
	"github.com/shinescript/shinescript-go/pkg/config"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		snap session.Snapshot
		want GuardState
	}{
		{"loading with no user", session.Snapshot{User: nil, Loading: true}, GuardPending},
		{"loading with stale user", session.Snapshot{User: &user.Identity{ID: "u1"}, Loading: true}, GuardPending},
		{"resolved signed out", session.Snapshot{User: nil, Loading: false}, GuardDenied},
		{"resolved signed in", session.Snapshot{User: &user.Identity{ID: "u1"}, Loading: false}, GuardAllowed},
	}

	for _, tt := range tests {
		if got := Evaluate(tt.snap); got != tt.want {
			t.Errorf("%s: Evaluate = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// stubAccounts is a minimal in-memory user.Repository.
type stubAccounts struct {
	byEmail map[string]*user.Account
	byID    map[string]*user.Account
}

func newStubAccounts() *stubAccounts {
	return &stubAccounts{
		byEmail: make(map[string]*user.Account),
		byID:    make(map[string]*user.Account),
	}
}

func (s *stubAccounts) FindByEmail(email string) (*user.Account, error) { return s.byEmail[email], nil }
func (s *stubAccounts) FindByID(id string) (*user.Account, error)       { return s.byID[id], nil }
func (s *stubAccounts) Store(a *user.Account) error {
	s.byEmail[a.Email] = a
	s.byID[a.ID] = a
	return nil
}
func (s *stubAccounts) Update(a *user.Account) error { return s.Store(a) }

// guardedRouter wires EnsureSession and Guard in front of a recording handler
// that records whether it ran and which identity it saw.
func guardedRouter(hub *services.SessionHub, auth *services.AuthService) (*gin.Engine, *bool, **user.Identity) {
	gin.SetMode(gin.TestMode)

	handlerRan := false
	var seen *user.Identity

	router := gin.New()
	router.Use(EnsureSession())
	router.GET("/protected", Guard(hub, auth, nil), func(c *gin.Context) {
		handlerRan = true
		seen, _ = GetIdentity(c)
		c.Status(http.StatusOK)
	})
	return router, &handlerRan, &seen
}

func TestGuardPendingReturns503(t *testing.T) {
	// A hub with no provider can never settle, so the session stays
	// loading and the guard must hold the request.
	hub := services.NewSessionHub(nil, nil)
	auth := services.NewAuthService(newStubAccounts(), nil, "test-secret", nil)
	router, handlerRan, _ := guardedRouter(hub, auth)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(config.SessionIDHeader, "s1")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", recorder.Code)
	}
	if recorder.Header().Get("Retry-After") != "1" {
		t.Errorf("Retry-After = %q, want 1", recorder.Header().Get("Retry-After"))
	}
	if *handlerRan {
		t.Error("handler ran for a pending session")
	}
}

func TestGuardDeniedReturns401WithRedirect(t *testing.T) {
	hub := services.NewSessionHub(nil, nil)
	auth := services.NewAuthService(newStubAccounts(), nil, "test-secret", nil)
	if err := hub.Initialize(auth); err != nil {
		t.Fatalf("initialize hub: %v", err)
	}
	router, handlerRan, _ := guardedRouter(hub, auth)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(config.SessionIDHeader, "s1")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", recorder.Code)
	}
	if *handlerRan {
		t.Error("handler ran for a signed-out session")
	}

	var body map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["redirect"] != "/login" {
		t.Errorf("redirect = %q, want /login", body["redirect"])
	}
}

func TestGuardAllowsValidBearerToken(t *testing.T) {
	hub := services.NewSessionHub(nil, nil)
	auth := services.NewAuthService(newStubAccounts(), nil, "test-secret", nil)
	if err := hub.Initialize(auth); err != nil {
		t.Fatalf("initialize hub: %v", err)
	}
	router, handlerRan, seen := guardedRouter(hub, auth)

	identity, token, err := auth.SignUp("s1", "Ana", "ana@correo.com", "supersegura")
	if err != nil {
		t.Fatalf("sign-up: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(config.SessionIDHeader, "s1")
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("status = %d, want 200, body %s", recorder.Code, recorder.Body.String())
	}
	if !*handlerRan {
		t.Fatal("handler did not run for a signed-in session")
	}
	if *seen == nil || (*seen).ID != identity.ID {
		t.Errorf("handler identity = %+v, want %s", *seen, identity.ID)
	}
}

func TestGuardRejectsTokenForOtherSession(t *testing.T) {
	hub := services.NewSessionHub(nil, nil)
	auth := services.NewAuthService(newStubAccounts(), nil, "test-secret", nil)
	if err := hub.Initialize(auth); err != nil {
		t.Fatalf("initialize hub: %v", err)
	}
	router, handlerRan, _ := guardedRouter(hub, auth)

	_, token, err := auth.SignUp("s1", "Ana", "ana@correo.com", "supersegura")
	if err != nil {
		t.Fatalf("sign-up: %v", err)
	}

	// Present s1's token under a different visitor session.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(config.SessionIDHeader, "s2")
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", recorder.Code)
	}
	if *handlerRan {
		t.Error("handler ran with a mismatched session token")
	}
}
