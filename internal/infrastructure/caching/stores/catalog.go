// Package stores provides concrete cache store implementations
package stores

import (
	"time"

	"github.com/shinescript/shinescript-go/internal/domain/catalog"
	"github.com/shinescript/shinescript-go/internal/infrastructure/caching/types"
	"github.com/shinescript/shinescript-go/internal/infrastructure/observability/logging"
	"github.com/shinescript/shinescript-go/pkg/config"
)

// CatalogStore implements bootcamp catalog caching operations
type CatalogStore struct {
	cache  *types.CatalogCache
	logger *logging.ChanneledLogger
}

// NewCatalogStore creates a new catalog cache store
func NewCatalogStore(logger *logging.ChanneledLogger) *CatalogStore {
	if logger != nil {
		logger.Cache().Info("Initializing catalog cache store")
	}
	return &CatalogStore{
		cache: &types.CatalogCache{
			Courses:      make(map[string]*catalog.Course),
			AllCourseIDs: []string{},
		},
		logger: logger,
	}
}

func (cs *CatalogStore) expired() bool {
	return cs.cache.LastLoaded.IsZero() || time.Since(cs.cache.LastLoaded) > config.CatalogCacheTTL
}

// GetCourse retrieves a single course by ID
func (cs *CatalogStore) GetCourse(id string) (*catalog.Course, bool) {
	start := time.Now()
	cs.cache.Mu.RLock()
	defer cs.cache.Mu.RUnlock()

	if cs.expired() {
		if cs.logger != nil {
			cs.logger.Cache().Debug("Cache operation", "operation", "get", "type", "course", "id", id, "hit", false, "reason", "expired", "duration", time.Since(start))
		}
		return nil, false
	}

	course, found := cs.cache.Courses[id]
	if cs.logger != nil {
		cs.logger.Cache().Debug("Cache operation", "operation", "get", "type", "course", "id", id, "hit", found, "duration", time.Since(start))
	}
	return course, found
}

// GetAllCourses retrieves all cached courses in load order
func (cs *CatalogStore) GetAllCourses() ([]*catalog.Course, bool) {
	start := time.Now()
	cs.cache.Mu.RLock()
	defer cs.cache.Mu.RUnlock()

	if cs.expired() || len(cs.cache.AllCourseIDs) == 0 {
		if cs.logger != nil {
			cs.logger.Cache().Debug("Cache operation", "operation", "get_all", "type", "course", "hit", false, "duration", time.Since(start))
		}
		return nil, false
	}

	courses := make([]*catalog.Course, 0, len(cs.cache.AllCourseIDs))
	for _, id := range cs.cache.AllCourseIDs {
		if course, ok := cs.cache.Courses[id]; ok {
			courses = append(courses, course)
		}
	}

	if cs.logger != nil {
		cs.logger.Cache().Debug("Cache operation", "operation", "get_all", "type", "course", "hit", true, "count", len(courses), "duration", time.Since(start))
	}
	return courses, true
}

// SetCourse stores a single course without touching the catalog order
func (cs *CatalogStore) SetCourse(course *catalog.Course) {
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()

	if _, exists := cs.cache.Courses[course.ID]; !exists {
		cs.cache.AllCourseIDs = append(cs.cache.AllCourseIDs, course.ID)
	}
	cs.cache.Courses[course.ID] = course

	if cs.logger != nil {
		cs.logger.Cache().Debug("Cache operation", "operation", "set", "type", "course", "id", course.ID)
	}
}

// LoadCatalog bulk loads the full catalog, replacing prior contents
func (cs *CatalogStore) LoadCatalog(courses []*catalog.Course) {
	start := time.Now()
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()

	cs.cache.Courses = make(map[string]*catalog.Course, len(courses))
	cs.cache.AllCourseIDs = make([]string, 0, len(courses))
	for _, course := range courses {
		cs.cache.Courses[course.ID] = course
		cs.cache.AllCourseIDs = append(cs.cache.AllCourseIDs, course.ID)
	}
	cs.cache.LastLoaded = time.Now().UTC()

	if cs.logger != nil {
		cs.logger.Cache().Debug("Cache operation", "operation", "bulk_load", "type", "course", "count", len(courses), "duration", time.Since(start))
	}
}
