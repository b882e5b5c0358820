// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shinescript/shinescript-go/internal/application/container"
	"github.com/shinescript/shinescript-go/internal/infrastructure/database"
	"github.com/shinescript/shinescript-go/internal/infrastructure/email"
	"github.com/shinescript/shinescript-go/internal/infrastructure/observability/logging"
	persistdb "github.com/shinescript/shinescript-go/internal/infrastructure/persistence/database"
	"github.com/shinescript/shinescript-go/internal/infrastructure/security"
	"github.com/shinescript/shinescript-go/internal/presentation/http/server"
	"github.com/shinescript/shinescript-go/pkg/config"
)

// Initialize performs the complete startup sequence
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	ctx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	log.Println("\033[32m" + `
  ▄▄▄▄▄ ▄   ▄ ▄▄▄ ▄   ▄ ▄▄▄▄▄ ▄▄▄▄▄ ▄▄▄▄▄ ▄▄▄▄▄ ▄▄▄▄▄ ▄▄▄▄▄
  ▀▄▄▄  █▄▄▄█  █  █▀▄ █ █▄▄▄  ▀▄▄▄  █     █▄▄▄█   █   █▄▄▄█
  ▄▄▄▄▀ █   █ ▄█▄ █ ▀▄█ █▄▄▄▄ ▄▄▄▄▀ █▄▄▄▄ █  ▀▄   █   █
` + "\033[97m" + `
  tu catálogo de bootcamps tecnológicos
` + "\033[0m")

	// Step 1: Create the channeled logger
	log.Println("Initializing logging...")
	logger, err := logging.NewChanneledLogger(nil)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger.Startup().Info("Channeled logging active")

	// Step 2: Open the database
	logger.Startup().Info("Connecting to database", "driver", config.DBDriver)
	startDBTime := time.Now()

	dsn := config.DBPath
	if config.DBDriver == "libsql" {
		dsn = fmt.Sprintf("%s?authToken=%s", config.DBURL, config.DBToken)
	}
	db, err := persistdb.NewConnectionWithLogger(config.DBDriver, dsn, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.LogStartupPhase("database_connect", time.Since(startDBTime), true, nil)

	// Step 3: Build schema and seed the starter catalog
	logger.Startup().Info("Preparing database schema...")
	tableCreator := database.NewTableCreator()
	if err := tableCreator.CreateSchema(db.DB); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if err := tableCreator.SeedInitialContent(db.DB); err != nil {
		return fmt.Errorf("failed to seed initial content: %w", err)
	}
	logger.Startup().Info("Database schema ready")

	// Step 4: Email service (optional)
	emailService, err := email.NewService()
	if err != nil {
		logger.Startup().Warn("Email service disabled", "reason", err.Error())
		emailService = nil
	}

	// Step 5: Session token secret
	jwtSecret := config.JWTSecret
	if jwtSecret == "" {
		jwtSecret, err = security.GenerateSecureKey(64)
		if err != nil {
			return fmt.Errorf("failed to generate session secret: %w", err)
		}
		logger.Startup().Warn("JWT_SECRET not set, generated an ephemeral secret; sessions will not survive restarts")
	}

	// Step 6: Create dependency injection container
	logger.Startup().Info("Initializing dependency injection container...")
	appContainer := container.NewContainer(db, logger, emailService, jwtSecret)
	logger.Startup().Info("Dependency injection container created with singleton services")

	// Step 7: Wire the session hub to the auth provider
	if err := appContainer.SessionHub.Initialize(appContainer.AuthService); err != nil {
		return fmt.Errorf("failed to initialize session hub: %w", err)
	}

	// Step 8: Start background workers
	go appContainer.SocketHub.Run()
	go appContainer.SessionHub.StartReaper(ctx)
	logger.Startup().Info("Background workers started")

	// Step 9: Start HTTP server
	logger.Startup().Info("Starting HTTP server...")
	startServerTime := time.Now()

	port := config.Port
	httpServer := server.New(port, appContainer)

	logger.Startup().Info("HTTP server initialized", "port", port, "duration", time.Since(startServerTime))

	// Step 10: Setup graceful shutdown
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	totalStartupTime := time.Since(start)
	logger.Startup().Info("Application startup complete",
		"totalDuration", totalStartupTime,
		"port", port)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()

	// Cancel background tasks
	cancelBackgroundTasks()

	// Stop server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	// Release the session hub subscription
	appContainer.SessionHub.Teardown()

	// Close the database
	logger.Shutdown().Info("Closing database...")
	if err := db.Close(); err != nil {
		logger.Shutdown().Error("Error closing database", "error", err.Error())
	} else {
		logger.Shutdown().Info("Database closed successfully")
	}

	elapsed := time.Since(start)
	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", elapsed,
		"shutdownDuration", time.Since(shutdownStart))

	return logger.Close()
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
