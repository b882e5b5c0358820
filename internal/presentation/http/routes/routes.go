// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shinescript/shinescript-go/internal/application/container"
	"github.com/shinescript/shinescript-go/internal/presentation/http/handlers"
	"github.com/shinescript/shinescript-go/internal/presentation/http/middleware"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.EnsureSession())

	// Initialize handlers
	authHandlers := handlers.NewAuthHandlers(container.AuthService, container.SessionHub, container.NotificationService, container.CatalogService, container.Logger)
	catalogHandlers := handlers.NewCatalogHandlers(container.CatalogService, container.NotificationService, container.Logger)
	favoritesHandlers := handlers.NewFavoritesHandlers(container.FavoritesService, container.Logger)
	notificationHandlers := handlers.NewNotificationHandlers(container.NotificationService, container.Logger)
	eventsHandlers := handlers.NewEventsHandlers(container.Broadcaster, container.SocketHub, container.Logger)
	healthHandlers := handlers.NewHealthHandlers(container.DB, container.Logger)

	guard := middleware.Guard(container.SessionHub, container.AuthService, container.Logger)

	api := r.Group("/api/v1")
	{
		// Authentication and session routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandlers.PostRegister)
			auth.POST("/login", authHandlers.PostLogin)
			auth.POST("/logout", authHandlers.PostLogout)
			auth.GET("/session", authHandlers.GetSession)
			auth.PUT("/profile", guard, authHandlers.PutProfile)
		}

		// Catalog endpoints
		courses := api.Group("/courses")
		courses.Use(guard)
		{
			courses.GET("", catalogHandlers.GetCourses)
			courses.GET("/:id", catalogHandlers.GetCourse)
		}

		// Favorites endpoints
		favorites := api.Group("/favorites")
		favorites.Use(guard)
		{
			favorites.GET("", favoritesHandlers.GetFavorites)
			favorites.POST("/:id", favoritesHandlers.PostToggleFavorite)
		}

		// Toast queue endpoints, keyed by visitor session so signed-out
		// visitors still receive auth error toasts
		notificationsGroup := api.Group("/notifications")
		{
			notificationsGroup.GET("", notificationHandlers.GetNotifications)
			notificationsGroup.POST("", notificationHandlers.PostNotification)
			notificationsGroup.DELETE("/:id", notificationHandlers.DeleteNotification)
		}

		// Real-time event streams
		events := api.Group("/events")
		{
			events.GET("/sse", eventsHandlers.GetSSE)
			events.GET("/ws", eventsHandlers.GetWS)
		}

		// Liveness
		api.GET("/health", healthHandlers.GetHealth)
	}

	return r
}
