package types

import "time"

// UserState holds per-visitor state that outlives a single request.
// FavoriteOrder preserves insertion order for stable listings.
type UserState struct {
	Favorites     map[string]bool
	FavoriteOrder []string
	LastActivity  time.Time
}
