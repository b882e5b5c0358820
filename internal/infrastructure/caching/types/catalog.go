// Package types defines the cache data structures
package types

import (
	"sync"
	"time"

	"github.com/shinescript/shinescript-go/internal/domain/catalog"
)

// CatalogCache holds the enriched bootcamp catalog in memory.
// AllCourseIDs preserves the order rows were loaded in.
type CatalogCache struct {
	Courses      map[string]*catalog.Course
	AllCourseIDs []string
	LastLoaded   time.Time
	Mu           sync.RWMutex
}
