package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shinescript/shinescript-go/internal/application/services"
	"github.com/shinescript/shinescript-go/internal/domain/notifications"
	"github.com/shinescript/shinescript-go/internal/infrastructure/observability/logging"
	"github.com/shinescript/shinescript-go/internal/presentation/http/middleware"
)

// NotificationHandlers contains the toast queue HTTP handlers
type NotificationHandlers struct {
	notificationService *services.NotificationService
	logger              *logging.ChanneledLogger
}

// NewNotificationHandlers creates notification handlers with injected dependencies
func NewNotificationHandlers(notificationService *services.NotificationService, logger *logging.ChanneledLogger) *NotificationHandlers {
	return &NotificationHandlers{
		notificationService: notificationService,
		logger:              logger,
	}
}

// GetNotifications handles GET /api/v1/notifications
func (h *NotificationHandlers) GetNotifications(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	active := h.notificationService.Active(sessionID)

	c.JSON(http.StatusOK, gin.H{"notifications": active, "total": len(active)})
}

// PostNotification handles POST /api/v1/notifications
func (h *NotificationHandlers) PostNotification(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req struct {
		Message string `json:"message" binding:"required"`
		Type    string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	notification, err := h.notificationService.Push(sessionID, req.Message, notifications.Kind(req.Type))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"notification": notification})
}

// DeleteNotification handles DELETE /api/v1/notifications/:id
func (h *NotificationHandlers) DeleteNotification(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	h.notificationService.Dismiss(sessionID, c.Param("id"))

	c.JSON(http.StatusOK, gin.H{"success": true})
}
