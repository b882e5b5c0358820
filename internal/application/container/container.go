// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/shinescript/shinescript-go/internal/application/services"
	"github.com/shinescript/shinescript-go/internal/infrastructure/caching/manager"
	"github.com/shinescript/shinescript-go/internal/infrastructure/email"
	"github.com/shinescript/shinescript-go/internal/infrastructure/messaging"
	"github.com/shinescript/shinescript-go/internal/infrastructure/observability/logging"
	"github.com/shinescript/shinescript-go/internal/infrastructure/persistence/catalog"
	"github.com/shinescript/shinescript-go/internal/infrastructure/persistence/database"
	"github.com/shinescript/shinescript-go/internal/infrastructure/persistence/favorites"
	persistuser "github.com/shinescript/shinescript-go/internal/infrastructure/persistence/user"
	"github.com/shinescript/shinescript-go/internal/infrastructure/security"
	"github.com/shinescript/shinescript-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application services
	AuthService         *services.AuthService
	SessionHub          *services.SessionHub
	CatalogService      *services.CatalogService
	NotificationService *services.NotificationService
	FavoritesService    *services.FavoritesService

	// Repositories
	AccountRepository  *persistuser.AccountRepository
	CourseRepository   *catalog.CourseRepository
	FavoriteRepository *favorites.FavoriteRepository

	// Infrastructure dependencies
	Logger       *logging.ChanneledLogger
	CacheManager *manager.Manager
	DB           *database.DB
	Broadcaster  *messaging.SSEBroadcaster
	SocketHub    *messaging.SocketHub
	EmailService email.Service
}

// NewContainer creates and wires all singleton services
func NewContainer(db *database.DB, logger *logging.ChanneledLogger, emailService email.Service, jwtSecret string) *Container {
	cacheManager := manager.NewManager(logger)
	broadcaster := messaging.NewSSEBroadcaster(logger)
	socketHub := messaging.NewSocketHub()

	// Session events reach both transports through one fanout.
	fanout := messaging.NewFanoutBroadcaster(broadcaster, socketHub)

	accountRepo := persistuser.NewAccountRepository(db.DB, logger)
	courseRepo := catalog.NewCourseRepository(db.DB, cacheManager, logger)
	favoriteRepo := favorites.NewFavoriteRepository(db.DB, cacheManager, logger)

	notificationService := services.NewNotificationService(config.NotificationTTL, security.GenerateULID, logger, fanout)
	authService := services.NewAuthService(accountRepo, emailService, jwtSecret, logger)
	sessionHub := services.NewSessionHub(logger, fanout)
	catalogService := services.NewCatalogService(courseRepo, notificationService, logger)
	favoritesService := services.NewFavoritesService(favoriteRepo, courseRepo, notificationService, logger)

	sessionHub.AttachIdlePurger(cacheManager.PurgeIdleUsers)
	socketHub.SetSessionCounter(sessionHub.ActiveSessionCount)

	return &Container{
		AuthService:         authService,
		SessionHub:          sessionHub,
		CatalogService:      catalogService,
		NotificationService: notificationService,
		FavoritesService:    favoritesService,

		AccountRepository:  accountRepo,
		CourseRepository:   courseRepo,
		FavoriteRepository: favoriteRepo,

		Logger:       logger,
		CacheManager: cacheManager,
		DB:           db,
		Broadcaster:  broadcaster,
		SocketHub:    socketHub,
		EmailService: emailService,
	}
}
