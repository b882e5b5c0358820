// Package config provides centralized default values for the ShineScript backend
package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		if err := godotenv.Load(); err == nil {
			log.Println("Loading configuration overrides from .env file...")
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Database Configuration
	DBDriver string
	DBPath   string
	DBURL    string
	DBToken  string

	// Database Pool
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	DBConnMaxLifetime  time.Duration
	SlowQueryThreshold time.Duration

	// Auth Configuration
	JWTSecret         string
	SessionTokenTTL   time.Duration
	SessionCookieName string
	SessionIDHeader   string
	LoginRateLimit    int
	LoginRateWindow   time.Duration

	// Catalog Configuration
	CatalogCollection string
	CatalogCacheTTL   time.Duration

	// Notification Configuration
	NotificationTTL time.Duration

	// Session Hub Configuration
	SessionReaperInterval time.Duration
	SessionMaxIdle        time.Duration

	// SSE Configuration
	MaxSSEConnections    int
	SSEHeartbeatInterval time.Duration

	// Email Configuration
	EmailFrom     string
	EmailFromName string
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 0) // 0 keeps SSE streams open
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Database Configuration
	DBDriver = getEnvString("DB_DRIVER", "sqlite3")
	DBPath = getEnvString("DB_PATH", "shinescript.db")
	DBURL = getEnvString("TURSO_DATABASE_URL", "")
	DBToken = getEnvString("TURSO_AUTH_TOKEN", "")

	// Database Pool
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 25)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 5)
	DBConnMaxLifetime = getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	SlowQueryThreshold = getEnvDuration("SLOW_QUERY_THRESHOLD", 50*time.Millisecond)

	// Auth Configuration
	JWTSecret = getEnvString("JWT_SECRET", "")
	SessionTokenTTL = getEnvDuration("SESSION_TOKEN_TTL", 24*time.Hour)
	SessionCookieName = getEnvString("SESSION_COOKIE_NAME", "session_auth")
	SessionIDHeader = getEnvString("SESSION_ID_HEADER", "X-ShineScript-Session-ID")
	LoginRateLimit = getEnvInt("LOGIN_RATE_LIMIT", 5)
	LoginRateWindow = getEnvDuration("LOGIN_RATE_WINDOW", 15*time.Minute)

	// Catalog Configuration
	CatalogCollection = getEnvString("CATALOG_COLLECTION", "bootcamps")
	CatalogCacheTTL = getEnvDuration("CATALOG_CACHE_TTL", time.Hour)

	// Notification Configuration
	NotificationTTL = getEnvDuration("NOTIFICATION_TTL", 4*time.Second)

	// Session Hub Configuration
	SessionReaperInterval = getEnvDuration("SESSION_REAPER_INTERVAL", 10*time.Minute)
	SessionMaxIdle = getEnvDuration("SESSION_MAX_IDLE", time.Hour)

	// SSE Configuration
	MaxSSEConnections = getEnvInt("MAX_SSE_CONNECTIONS", 1000)
	SSEHeartbeatInterval = getEnvDuration("SSE_HEARTBEAT_INTERVAL", 30*time.Second)

	// Email Configuration
	EmailFrom = getEnvString("EMAIL_FROM", "noreply@shinescript.dev")
	EmailFromName = getEnvString("EMAIL_FROM_NAME", "ShineScript")
}
