// Package interfaces defines the cache store contracts
package interfaces

import (
	"time"

	"github.com/shinescript/shinescript-go/internal/domain/catalog"
)

// CatalogCache defines bootcamp catalog caching operations. Invalidation
// is time-based: reads miss once the load is older than the catalog TTL.
type CatalogCache interface {
	GetCourse(id string) (*catalog.Course, bool)
	GetAllCourses() ([]*catalog.Course, bool)
	SetCourse(course *catalog.Course)
	LoadCatalog(courses []*catalog.Course)
}

// UserStateCache defines per-visitor state caching operations
type UserStateCache interface {
	GetFavorites(userID string) ([]string, bool)
	AddFavorite(userID, courseID string)
	RemoveFavorite(userID, courseID string)
	TouchUser(userID string)
	PurgeIdleUsers(maxIdle time.Duration) int
}

// Cache combines all store contracts behind a single dependency
type Cache interface {
	CatalogCache
	UserStateCache
}
