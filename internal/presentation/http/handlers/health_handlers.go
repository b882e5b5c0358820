package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shinescript/shinescript-go/internal/infrastructure/observability/logging"
	"github.com/shinescript/shinescript-go/internal/infrastructure/persistence/database"
)

// HealthHandlers contains the liveness HTTP handlers
type HealthHandlers struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

// NewHealthHandlers creates health handlers with injected dependencies
func NewHealthHandlers(db *database.DB, logger *logging.ChanneledLogger) *HealthHandlers {
	return &HealthHandlers{db: db, logger: logger}
}

// GetHealth handles GET /api/v1/health
func (h *HealthHandlers) GetHealth(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"
	code := http.StatusOK

	start := time.Now()
	if err := h.db.Ping(); err != nil {
		status = "degraded"
		dbStatus = err.Error()
		code = http.StatusServiceUnavailable
	}
	database.CheckAndLogSlowQuery(h.logger, "HEALTH_PING", time.Since(start))

	c.JSON(code, gin.H{
		"status":    status,
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
