package services

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/shinescript/shinescript-go/internal/domain/user"
	"github.com/shinescript/shinescript-go/internal/infrastructure/email"
	"github.com/shinescript/shinescript-go/internal/infrastructure/observability/logging"
	"github.com/shinescript/shinescript-go/internal/infrastructure/security"
	"github.com/shinescript/shinescript-go/pkg/config"
)

// AuthService handles account registration, credential verification and
// session token issuance. It is also the session.Provider feeding the
// session hub: every sign-in, sign-out and profile change is announced to
// the registered observers.
type AuthService struct {
	accounts     user.Repository
	emailService email.Service
	jwtSecret    string

	mu        sync.Mutex
	observers map[int]func(sessionID string, identity *user.Identity)
	nextObsID int
	attempts  map[string][]time.Time

	logger *logging.ChanneledLogger
}

// NewAuthService creates the auth service. emailService may be nil when no
// email provider is configured.
func NewAuthService(accounts user.Repository, emailService email.Service, jwtSecret string, logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{
		accounts:     accounts,
		emailService: emailService,
		jwtSecret:    jwtSecret,
		observers:    make(map[int]func(string, *user.Identity)),
		attempts:     make(map[string][]time.Time),
		logger:       logger,
	}
}

// ObserveSession registers a session-change observer. Implements
// session.Provider.
func (s *AuthService) ObserveSession(fn func(sessionID string, identity *user.Identity)) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}, nil
}

func (s *AuthService) notify(sessionID string, identity *user.Identity) {
	s.mu.Lock()
	callbacks := make([]func(string, *user.Identity), 0, len(s.observers))
	for _, fn := range s.observers {
		callbacks = append(callbacks, fn)
	}
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn(sessionID, identity)
	}
}

// SignUp registers a new account, signs the visitor session in and returns
// the identity with a fresh session token.
func (s *AuthService) SignUp(sessionID, displayName, emailAddr, password string) (*user.Identity, string, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	existing, err := s.accounts.FindByEmail(emailAddr)
	if err != nil {
		if s.logger != nil {
			s.logger.Auth().Error("Account lookup failed during sign-up", "error", err.Error())
		}
		return nil, "", user.ErrSignUpFailed
	}
	if existing != nil {
		return nil, "", user.ErrEmailInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", user.ErrSignUpFailed
	}

	now := time.Now().UTC()
	account := &user.Account{
		ID:           security.GenerateULID(),
		Email:        emailAddr,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: string(hash),
		Created:      now,
		Changed:      now,
	}

	if err := s.accounts.Store(account); err != nil {
		if s.logger != nil {
			s.logger.Auth().Error("Account insert failed during sign-up", "error", err.Error())
		}
		return nil, "", user.ErrSignUpFailed
	}

	identity := account.Identity()
	token, err := security.GenerateSessionToken(identity, sessionID, s.jwtSecret, config.SessionTokenTTL)
	if err != nil {
		return nil, "", user.ErrSignUpFailed
	}

	if s.emailService != nil {
		go func() {
			if err := s.emailService.SendWelcomeEmail(account.Email, account.DisplayName); err != nil && s.logger != nil {
				s.logger.Auth().Warn("Welcome email failed", "error", err.Error(), "accountId", account.ID)
			}
		}()
	}

	if s.logger != nil {
		s.logger.LogAuthOperation("sign_up", account.ID, true, nil)
	}

	s.notify(sessionID, identity)
	return identity, token, nil
}

// SignIn verifies credentials, signs the visitor session in and returns
// the identity with a fresh session token.
func (s *AuthService) SignIn(sessionID, emailAddr, password string) (*user.Identity, string, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	if s.isRateLimited(emailAddr) {
		if s.logger != nil {
			s.logger.LogAuthOperation("sign_in", "", false, map[string]any{"reason": "rate_limited"})
		}
		return nil, "", user.ErrTooManyRequests
	}

	account, err := s.accounts.FindByEmail(emailAddr)
	if err != nil {
		if s.logger != nil {
			s.logger.Auth().Error("Account lookup failed during sign-in", "error", err.Error())
		}
		return nil, "", user.ErrSignInFailed
	}
	if account == nil {
		s.recordFailure(emailAddr)
		return nil, "", user.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		s.recordFailure(emailAddr)
		if s.logger != nil {
			s.logger.LogAuthOperation("sign_in", account.ID, false, map[string]any{"reason": "wrong_password"})
		}
		return nil, "", user.ErrWrongPassword
	}

	s.clearFailures(emailAddr)

	identity := account.Identity()
	token, err := security.GenerateSessionToken(identity, sessionID, s.jwtSecret, config.SessionTokenTTL)
	if err != nil {
		return nil, "", user.ErrSignInFailed
	}

	if s.logger != nil {
		s.logger.LogAuthOperation("sign_in", account.ID, true, nil)
	}

	s.notify(sessionID, identity)
	return identity, token, nil
}

// SignOut clears the visitor session's identity.
func (s *AuthService) SignOut(sessionID string) {
	if s.logger != nil {
		s.logger.Auth().Info("Session signed out", "sessionId", sessionID)
	}
	s.notify(sessionID, nil)
}

// UpdateProfile changes the display name of an account and re-announces
// the refreshed identity to the session.
func (s *AuthService) UpdateProfile(sessionID, accountID, displayName string) (*user.Identity, error) {
	account, err := s.accounts.FindByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, user.ErrUserNotFound
	}

	account.DisplayName = strings.TrimSpace(displayName)
	account.Changed = time.Now().UTC()
	if err := s.accounts.Update(account); err != nil {
		return nil, err
	}

	identity := account.Identity()
	s.notify(sessionID, identity)
	return identity, nil
}

// RestoreSession announces a known identity (or signed-out, when nil)
// for a session without touching credentials. Used to settle sessions
// from a still-valid token after a restart.
func (s *AuthService) RestoreSession(sessionID string, identity *user.Identity) {
	s.notify(sessionID, identity)
}

// ResolveToken validates a session token and returns the identity and
// visitor session ID embedded in it.
func (s *AuthService) ResolveToken(tokenString string) (*user.Identity, string, error) {
	claims, err := security.ValidateJWT(tokenString, s.jwtSecret)
	if err != nil {
		return nil, "", err
	}

	identity := security.IdentityFromClaims(claims)
	if identity == nil {
		return nil, "", user.ErrSignInFailed
	}

	return identity, security.SessionIDFromClaims(claims), nil
}

// Rate limiting of failed sign-in attempts, keyed by email.

func (s *AuthService) isRateLimited(emailAddr string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-config.LoginRateWindow)
	recent := s.attempts[emailAddr][:0]
	for _, at := range s.attempts[emailAddr] {
		if at.After(cutoff) {
			recent = append(recent, at)
		}
	}
	s.attempts[emailAddr] = recent

	return len(recent) >= config.LoginRateLimit
}

func (s *AuthService) recordFailure(emailAddr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[emailAddr] = append(s.attempts[emailAddr], time.Now())
}

func (s *AuthService) clearFailures(emailAddr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, emailAddr)
}
