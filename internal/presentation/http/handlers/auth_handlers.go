// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shinescript/shinescript-go/internal/application/services"
	"github.com/shinescript/shinescript-go/internal/domain/notifications"
	"github.com/shinescript/shinescript-go/internal/domain/user"
	"github.com/shinescript/shinescript-go/internal/infrastructure/observability/logging"
	"github.com/shinescript/shinescript-go/internal/presentation/http/middleware"
	"github.com/shinescript/shinescript-go/pkg/config"
)

// AuthHandlers contains all authentication-related HTTP handlers
type AuthHandlers struct {
	authService    *services.AuthService
	sessionHub     *services.SessionHub
	notifications  *services.NotificationService
	catalogService *services.CatalogService
	logger         *logging.ChanneledLogger
}

// NewAuthHandlers creates auth handlers with injected dependencies
func NewAuthHandlers(authService *services.AuthService, sessionHub *services.SessionHub, notificationService *services.NotificationService, catalogService *services.CatalogService, logger *logging.ChanneledLogger) *AuthHandlers {
	return &AuthHandlers{
		authService:    authService,
		sessionHub:     sessionHub,
		notifications:  notificationService,
		catalogService: catalogService,
		logger:         logger,
	}
}

// PostRegister handles POST /api/v1/auth/register
func (h *AuthHandlers) PostRegister(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	start := time.Now()
	h.logger.Auth().Debug("Received register request", "method", c.Request.Method, "path", c.Request.URL.Path, "sessionId", sessionID)

	var req struct {
		DisplayName     string `json:"displayName"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Auth().Error("Register request JSON binding failed", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if fieldErrors := user.ValidateRegistration(req.DisplayName, req.Email, req.Password, req.ConfirmPassword); len(fieldErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors})
		return
	}

	identity, token, err := h.authService.SignUp(sessionID, req.DisplayName, req.Email, req.Password)
	if err != nil {
		h.respondAuthError(c, sessionID, err)
		return
	}

	h.setSessionCookie(c, token)
	h.notifications.Push(sessionID, "¡Cuenta creada exitosamente! Bienvenido a ShineScript", notifications.KindSuccess)
	h.logger.Auth().Info("Registration completed", "accountId", identity.ID, "duration", time.Since(start))

	c.JSON(http.StatusCreated, gin.H{"user": identity, "token": token})
}

// PostLogin handles POST /api/v1/auth/login
func (h *AuthHandlers) PostLogin(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	start := time.Now()
	h.logger.Auth().Debug("Received login request", "method", c.Request.Method, "path", c.Request.URL.Path, "sessionId", sessionID)

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Auth().Error("Login request JSON binding failed", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if fieldErrors := user.ValidateLogin(req.Email, req.Password); len(fieldErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors})
		return
	}

	identity, token, err := h.authService.SignIn(sessionID, req.Email, req.Password)
	if err != nil {
		h.respondAuthError(c, sessionID, err)
		return
	}

	h.setSessionCookie(c, token)
	h.notifications.Push(sessionID, "¡Bienvenido de vuelta!", notifications.KindSuccess)
	h.logger.Auth().Info("Login completed", "accountId", identity.ID, "duration", time.Since(start))

	c.JSON(http.StatusOK, gin.H{"user": identity, "token": token})
}

// PostLogout handles POST /api/v1/auth/logout
func (h *AuthHandlers) PostLogout(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	h.authService.SignOut(sessionID)
	h.catalogService.ForgetSession(sessionID)
	c.SetCookie(config.SessionCookieName, "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetSession handles GET /api/v1/auth/session - the {user, loading}
// snapshot the navbar renders from. Unresolved sessions are settled from
// the request token first, so a returning visitor never polls a
// permanent loading state.
func (h *AuthHandlers) GetSession(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	middleware.SettleSession(c, h.sessionHub, h.authService, h.logger)
	h.sessionHub.Touch(sessionID)

	c.JSON(http.StatusOK, h.sessionHub.Snapshot(sessionID))
}

// PutProfile handles PUT /api/v1/auth/profile - guarded
func (h *AuthHandlers) PutProfile(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "identity not found"})
		return
	}

	var req struct {
		DisplayName string `json:"displayName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if fieldErrors := user.ValidateDisplayName(req.DisplayName); len(fieldErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors})
		return
	}

	updated, err := h.authService.UpdateProfile(sessionID, identity.ID, req.DisplayName)
	if err != nil {
		h.respondAuthError(c, sessionID, err)
		return
	}

	h.notifications.Push(sessionID, "Perfil actualizado", notifications.KindSuccess)
	c.JSON(http.StatusOK, gin.H{"user": updated})
}

// respondAuthError maps auth failures to HTTP codes and pushes the
// user-facing message as a single error toast.
func (h *AuthHandlers) respondAuthError(c *gin.Context, sessionID string, err error) {
	var authErr *user.AuthError
	if !errors.As(err, &authErr) {
		h.logger.Auth().Error("Unexpected auth failure", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	status := http.StatusBadRequest
	switch authErr {
	case user.ErrEmailInUse:
		status = http.StatusConflict
	case user.ErrTooManyRequests:
		status = http.StatusTooManyRequests
	case user.ErrUserNotFound, user.ErrWrongPassword:
		status = http.StatusUnauthorized
	}

	h.notifications.Push(sessionID, authErr.Message, notifications.KindError)
	c.JSON(status, gin.H{"error": authErr.Message, "code": authErr.Code})
}

func (h *AuthHandlers) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(config.SessionCookieName, token, int(config.SessionTokenTTL.Seconds()), "/", "", false, true)
}
