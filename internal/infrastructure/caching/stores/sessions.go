package stores

import (
	"sync"
	"time"

	"github.com/shinescript/shinescript-go/internal/infrastructure/caching/types"
	"github.com/shinescript/shinescript-go/internal/infrastructure/observability/logging"
)

// SessionsStore implements per-visitor state caching operations
type SessionsStore struct {
	userStates map[string]*types.UserState
	mu         sync.RWMutex
	logger     *logging.ChanneledLogger
}

// NewSessionsStore creates a new sessions cache store
func NewSessionsStore(logger *logging.ChanneledLogger) *SessionsStore {
	if logger != nil {
		logger.Cache().Info("Initializing sessions cache store")
	}
	return &SessionsStore{
		userStates: make(map[string]*types.UserState),
		logger:     logger,
	}
}

func (ss *SessionsStore) getOrCreate(userID string) *types.UserState {
	state, exists := ss.userStates[userID]
	if !exists {
		state = &types.UserState{
			Favorites:     make(map[string]bool),
			FavoriteOrder: []string{},
		}
		ss.userStates[userID] = state
	}
	state.LastActivity = time.Now().UTC()
	return state
}

// GetFavorites retrieves a user's favorite course IDs in insertion order
func (ss *SessionsStore) GetFavorites(userID string) ([]string, bool) {
	start := time.Now()
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	state, found := ss.userStates[userID]
	if ss.logger != nil {
		ss.logger.Cache().Debug("Cache operation", "operation", "get", "type", "favorites", "userId", userID, "hit", found, "duration", time.Since(start))
	}
	if !found {
		return nil, false
	}

	ids := make([]string, len(state.FavoriteOrder))
	copy(ids, state.FavoriteOrder)
	return ids, true
}

// AddFavorite marks a course as a favorite for a user
func (ss *SessionsStore) AddFavorite(userID, courseID string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	state := ss.getOrCreate(userID)
	if !state.Favorites[courseID] {
		state.Favorites[courseID] = true
		state.FavoriteOrder = append(state.FavoriteOrder, courseID)
	}

	if ss.logger != nil {
		ss.logger.Cache().Debug("Cache operation", "operation", "set", "type", "favorite", "userId", userID, "courseId", courseID)
	}
}

// RemoveFavorite clears a favorite for a user
func (ss *SessionsStore) RemoveFavorite(userID, courseID string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	state, exists := ss.userStates[userID]
	if !exists || !state.Favorites[courseID] {
		return
	}

	delete(state.Favorites, courseID)
	for i, id := range state.FavoriteOrder {
		if id == courseID {
			state.FavoriteOrder = append(state.FavoriteOrder[:i], state.FavoriteOrder[i+1:]...)
			break
		}
	}
	state.LastActivity = time.Now().UTC()

	if ss.logger != nil {
		ss.logger.Cache().Debug("Cache operation", "operation", "remove", "type", "favorite", "userId", userID, "courseId", courseID)
	}
}

// TouchUser refreshes a user's activity timestamp
func (ss *SessionsStore) TouchUser(userID string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.getOrCreate(userID)
}

// PurgeIdleUsers evicts user state idle for longer than maxIdle.
// Returns the number of evicted entries.
func (ss *SessionsStore) PurgeIdleUsers(maxIdle time.Duration) int {
	start := time.Now()
	ss.mu.Lock()
	defer ss.mu.Unlock()

	purged := 0
	cutoff := time.Now().UTC().Add(-maxIdle)
	for userID, state := range ss.userStates {
		if state.LastActivity.Before(cutoff) {
			delete(ss.userStates, userID)
			purged++
		}
	}

	if ss.logger != nil && purged > 0 {
		ss.logger.Cache().Info("Purged idle user state", "count", purged, "duration", time.Since(start))
	}
	return purged
}
