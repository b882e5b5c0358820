package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shinescript/shinescript-go/internal/application/services"
	"github.com/shinescript/shinescript-go/internal/infrastructure/observability/logging"
	"github.com/shinescript/shinescript-go/internal/presentation/http/middleware"
)

// FavoritesHandlers contains the favorite bootcamp HTTP handlers
type FavoritesHandlers struct {
	favoritesService *services.FavoritesService
	logger           *logging.ChanneledLogger
}

// NewFavoritesHandlers creates favorites handlers with injected dependencies
func NewFavoritesHandlers(favoritesService *services.FavoritesService, logger *logging.ChanneledLogger) *FavoritesHandlers {
	return &FavoritesHandlers{
		favoritesService: favoritesService,
		logger:           logger,
	}
}

// GetFavorites handles GET /api/v1/favorites
func (h *FavoritesHandlers) GetFavorites(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "identity not found"})
		return
	}

	courses, err := h.favoritesService.List(c.Request.Context(), identity.ID)
	if err != nil {
		h.logger.Catalog().Error("Favorites list failed", "error", err.Error(), "accountId", identity.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al cargar favoritos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": courses, "total": len(courses)})
}

// PostToggleFavorite handles POST /api/v1/favorites/:id
func (h *FavoritesHandlers) PostToggleFavorite(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "identity not found"})
		return
	}

	courseID := c.Param("id")
	isFavorite, err := h.favoritesService.Toggle(c.Request.Context(), sessionID, identity.ID, courseID)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bootcamp no encontrado"})
			return
		}
		h.logger.Catalog().Error("Favorite toggle failed", "error", err.Error(), "accountId", identity.ID, "courseId", courseID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al actualizar favoritos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"courseId": courseID, "favorite": isFavorite})
}
