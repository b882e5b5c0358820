package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shinescript/shinescript-go/internal/application/services"
	"github.com/shinescript/shinescript-go/internal/domain/catalog"
	"github.com/shinescript/shinescript-go/internal/domain/notifications"
	"github.com/shinescript/shinescript-go/internal/infrastructure/observability/logging"
	"github.com/shinescript/shinescript-go/internal/presentation/http/middleware"
)

// CatalogHandlers contains the bootcamp catalog HTTP handlers
type CatalogHandlers struct {
	catalogService *services.CatalogService
	notifications  *services.NotificationService
	logger         *logging.ChanneledLogger
}

// NewCatalogHandlers creates catalog handlers with injected dependencies
func NewCatalogHandlers(catalogService *services.CatalogService, notificationService *services.NotificationService, logger *logging.ChanneledLogger) *CatalogHandlers {
	return &CatalogHandlers{
		catalogService: catalogService,
		notifications:  notificationService,
		logger:         logger,
	}
}

// GetCourses handles GET /api/v1/courses with optional filter query params
// (search, duration, difficulty, category).
func (h *CatalogHandlers) GetCourses(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	start := time.Now()

	var filter catalog.FilterState
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters"})
		return
	}

	courses, err := h.catalogService.Search(c.Request.Context(), sessionID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al cargar los bootcamps"})
		return
	}

	h.logger.Catalog().Debug("Catalog request served",
		"sessionId", sessionID, "count", len(courses), "filtered", !filter.IsDefault(), "duration", time.Since(start))

	c.JSON(http.StatusOK, gin.H{"courses": courses, "total": len(courses)})
}

// GetCourse handles GET /api/v1/courses/:id. Unknown bootcamps surface
// an error toast and send the client back to the dashboard.
func (h *CatalogHandlers) GetCourse(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	id := c.Param("id")

	course, err := h.catalogService.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al cargar el bootcamp"})
		return
	}
	if course == nil {
		h.notifications.Push(sessionID, "Bootcamp no encontrado", notifications.KindError)
		c.JSON(http.StatusNotFound, gin.H{
			"error":    "Bootcamp no encontrado",
			"redirect": "/dashboard",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"course": course})
}
