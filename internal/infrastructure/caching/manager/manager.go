// Package manager composes the cache stores behind a single facade
package manager

import (
	"time"

	"github.com/shinescript/shinescript-go/internal/domain/catalog"
	"github.com/shinescript/shinescript-go/internal/infrastructure/caching/interfaces"
	"github.com/shinescript/shinescript-go/internal/infrastructure/caching/stores"
	"github.com/shinescript/shinescript-go/internal/infrastructure/observability/logging"
)

// Manager provides unified access to all cache stores
type Manager struct {
	catalogStore  *stores.CatalogStore
	sessionsStore *stores.SessionsStore
	logger        *logging.ChanneledLogger
}

var _ interfaces.Cache = (*Manager)(nil)

// NewManager creates a cache manager with all stores initialized
func NewManager(logger *logging.ChanneledLogger) *Manager {
	if logger != nil {
		logger.Cache().Info("Initializing cache manager")
	}
	return &Manager{
		catalogStore:  stores.NewCatalogStore(logger),
		sessionsStore: stores.NewSessionsStore(logger),
		logger:        logger,
	}
}

// Catalog operations

func (m *Manager) GetCourse(id string) (*catalog.Course, bool) { return m.catalogStore.GetCourse(id) }
func (m *Manager) GetAllCourses() ([]*catalog.Course, bool)    { return m.catalogStore.GetAllCourses() }
func (m *Manager) SetCourse(course *catalog.Course)            { m.catalogStore.SetCourse(course) }
func (m *Manager) LoadCatalog(courses []*catalog.Course)       { m.catalogStore.LoadCatalog(courses) }

// User state operations

func (m *Manager) GetFavorites(userID string) ([]string, bool) {
	return m.sessionsStore.GetFavorites(userID)
}
func (m *Manager) AddFavorite(userID, courseID string)    { m.sessionsStore.AddFavorite(userID, courseID) }
func (m *Manager) RemoveFavorite(userID, courseID string) { m.sessionsStore.RemoveFavorite(userID, courseID) }
func (m *Manager) TouchUser(userID string)                { m.sessionsStore.TouchUser(userID) }
func (m *Manager) PurgeIdleUsers(maxIdle time.Duration) int {
	return m.sessionsStore.PurgeIdleUsers(maxIdle)
}
