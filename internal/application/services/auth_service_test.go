package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shinescript/shinescript-go/internal/domain/user"
	"github.com/shinescript/shinescript-go/pkg/config"
)

// memoryAccounts is an in-memory user.Repository for tests.
type memoryAccounts struct {
	byEmail map[string]*user.Account
	byID    map[string]*user.Account
}

func newMemoryAccounts() *memoryAccounts {
	return &memoryAccounts{
		byEmail: make(map[string]*user.Account),
		byID:    make(map[string]*user.Account),
	}
}

func (m *memoryAccounts) FindByEmail(email string) (*user.Account, error) {
	if account, exists := m.byEmail[email]; exists {
		copied := *account
		return &copied, nil
	}
	return nil, nil
}

func (m *memoryAccounts) FindByID(id string) (*user.Account, error) {
	if account, exists := m.byID[id]; exists {
		copied := *account
		return &copied, nil
	}
	return nil, nil
}

func (m *memoryAccounts) Store(account *user.Account) error {
	copied := *account
	m.byEmail[account.Email] = &copied
	m.byID[account.ID] = &copied
	return nil
}

func (m *memoryAccounts) Update(account *user.Account) error {
	copied := *account
	m.byEmail[account.Email] = &copied
	m.byID[account.ID] = &copied
	return nil
}

const testSecret = "test-secret-key"

func newTestAuthService() (*AuthService, *memoryAccounts) {
	accounts := newMemoryAccounts()
	return NewAuthService(accounts, nil, testSecret, nil), accounts
}

func TestSignUpThenSignIn(t *testing.T) {
	svc, _ := newTestAuthService()

	identity, token, err := svc.SignUp("s1", "Ana García", "Ana@Correo.com", "supersegura")
	if err != nil {
		t.Fatalf("sign-up: %v", err)
	}
	if identity.Email != "ana@correo.com" {
		t.Errorf("email not normalized: %q", identity.Email)
	}
	if identity.DisplayName != "Ana García" {
		t.Errorf("display name = %q", identity.DisplayName)
	}
	if token == "" {
		t.Error("sign-up returned no token")
	}

	signedIn, token2, err := svc.SignIn("s2", "ana@correo.com", "supersegura")
	if err != nil {
		t.Fatalf("sign-in: %v", err)
	}
	if signedIn.ID != identity.ID {
		t.Errorf("sign-in identity %q, want %q", signedIn.ID, identity.ID)
	}
	if token2 == "" {
		t.Error("sign-in returned no token")
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, _, err := svc.SignUp("s1", "Ana", "ana@correo.com", "supersegura"); err != nil {
		t.Fatalf("first sign-up: %v", err)
	}
	_, _, err := svc.SignUp("s1", "Otra Ana", "ana@correo.com", "otraclave123")
	if !errors.Is(err, user.ErrEmailInUse) {
		t.Errorf("got %v, want ErrEmailInUse", err)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()
	svc.SignUp("s1", "Ana", "ana@correo.com", "supersegura")

	_, _, err := svc.SignIn("s1", "ana@correo.com", "incorrecta")
	if !errors.Is(err, user.ErrWrongPassword) {
		t.Errorf("got %v, want ErrWrongPassword", err)
	}

	var authErr *user.AuthError
	if !errors.As(err, &authErr) || authErr.Message != "Contraseña incorrecta" {
		t.Errorf("auth error message = %v", err)
	}
}

func TestSignInUnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _, err := svc.SignIn("s1", "nadie@correo.com", "loquesea")
	if !errors.Is(err, user.ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}

func TestSignInRateLimited(t *testing.T) {
	svc, _ := newTestAuthService()

	for i := 0; i < config.LoginRateLimit; i++ {
		_, _, err := svc.SignIn("s1", "nadie@correo.com", fmt.Sprintf("intento%d", i))
		if !errors.Is(err, user.ErrUserNotFound) {
			t.Fatalf("attempt %d: got %v, want ErrUserNotFound", i, err)
		}
	}

	_, _, err := svc.SignIn("s1", "nadie@correo.com", "otromas")
	if !errors.Is(err, user.ErrTooManyRequests) {
		t.Errorf("got %v, want ErrTooManyRequests after %d failures", err, config.LoginRateLimit)
	}

	// Other emails keep their own budget.
	if _, _, err := svc.SignIn("s1", "otra@correo.com", "clave"); !errors.Is(err, user.ErrUserNotFound) {
		t.Errorf("unrelated email rate limited: %v", err)
	}
}

func TestResolveTokenRoundTrip(t *testing.T) {
	svc, _ := newTestAuthService()

	identity, token, err := svc.SignUp("s1", "Ana", "ana@correo.com", "supersegura")
	if err != nil {
		t.Fatalf("sign-up: %v", err)
	}

	resolved, sessionID, err := svc.ResolveToken(token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != identity.ID || resolved.Email != identity.Email {
		t.Errorf("resolved identity = %+v, want %+v", resolved, identity)
	}
	if sessionID != "s1" {
		t.Errorf("resolved session id = %q, want s1", sessionID)
	}

	if _, _, err := svc.ResolveToken("not-a-token"); err == nil {
		t.Error("garbage token resolved without error")
	}
}

func TestSignInDrivesSessionHub(t *testing.T) {
	svc, _ := newTestAuthService()
	hub := NewSessionHub(nil, nil)
	if err := hub.Initialize(svc); err != nil {
		t.Fatalf("initialize hub: %v", err)
	}

	svc.SignUp("s1", "Ana", "ana@correo.com", "supersegura")

	snap := hub.Snapshot("s1")
	if snap.Loading || snap.User == nil || snap.User.Email != "ana@correo.com" {
		t.Errorf("hub snapshot after sign-up = %+v", snap)
	}

	svc.SignOut("s1")
	snap = hub.Snapshot("s1")
	if snap.Loading || snap.User != nil {
		t.Errorf("hub snapshot after sign-out = %+v", snap)
	}
}

func TestRestoreSession(t *testing.T) {
	svc, _ := newTestAuthService()
	hub := NewSessionHub(nil, nil)
	if err := hub.Initialize(svc); err != nil {
		t.Fatalf("initialize hub: %v", err)
	}

	svc.RestoreSession("s1", &user.Identity{ID: "u1", Email: "ana@correo.com"})
	if snap := hub.Snapshot("s1"); snap.User == nil || snap.User.ID != "u1" {
		t.Errorf("restored snapshot = %+v", snap)
	}

	svc.RestoreSession("s2", nil)
	if snap := hub.Snapshot("s2"); snap.Loading || snap.User != nil {
		t.Errorf("restored signed-out snapshot = %+v", snap)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, accounts := newTestAuthService()

	identity, _, err := svc.SignUp("s1", "Ana", "ana@correo.com", "supersegura")
	if err != nil {
		t.Fatalf("sign-up: %v", err)
	}

	updated, err := svc.UpdateProfile("s1", identity.ID, "Ana María García")
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.DisplayName != "Ana María García" {
		t.Errorf("display name = %q", updated.DisplayName)
	}

	stored, _ := accounts.FindByID(identity.ID)
	if stored.DisplayName != "Ana María García" {
		t.Errorf("stored display name = %q", stored.DisplayName)
	}

	if _, err := svc.UpdateProfile("s1", "no-such-account", "Nombre"); !errors.Is(err, user.ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}
