// Package favorites provides the favorite bootcamp repository
package favorites

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shinescript/shinescript-go/internal/infrastructure/caching/interfaces"
	"github.com/shinescript/shinescript-go/internal/infrastructure/observability/logging"
	"github.com/shinescript/shinescript-go/internal/infrastructure/security"
	"github.com/shinescript/shinescript-go/pkg/config"
)

type FavoriteRepository struct {
	db     *sql.DB
	cache  interfaces.UserStateCache
	logger *logging.ChanneledLogger
}

func NewFavoriteRepository(db *sql.DB, cache interfaces.UserStateCache, logger *logging.ChanneledLogger) *FavoriteRepository {
	return &FavoriteRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// ListByAccount returns the account's favorite bootcamp IDs in the order
// they were added, employing a cache-first strategy.
func (r *FavoriteRepository) ListByAccount(accountID string) ([]string, error) {
	if ids, found := r.cache.GetFavorites(accountID); found {
		return ids, nil
	}

	query := `SELECT bootcamp_id FROM favorites WHERE account_id = ? ORDER BY created, id`

	start := time.Now()
	rows, err := r.db.Query(query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan favorite row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorites: %w", err)
	}

	duration := time.Since(start)
	if r.logger != nil && duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}

	r.cache.TouchUser(accountID)
	for _, id := range ids {
		r.cache.AddFavorite(accountID, id)
	}
	return ids, nil
}

// Add marks a bootcamp as a favorite for the account. Adding an existing
// favorite is a no-op.
func (r *FavoriteRepository) Add(accountID, bootcampID string) error {
	query := `INSERT OR IGNORE INTO favorites (id, account_id, bootcamp_id, created) VALUES (?, ?, ?, ?)`

	start := time.Now()
	_, err := r.db.Exec(query, security.GenerateULID(), accountID, bootcampID, time.Now().UTC())
	if err != nil {
		if r.logger != nil {
			r.logger.Database().Error("Favorite insert failed", "error", err.Error(), "accountId", accountID, "bootcampId", bootcampID)
		}
		return fmt.Errorf("failed to insert favorite: %w", err)
	}

	duration := time.Since(start)
	if r.logger != nil && duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}

	r.cache.AddFavorite(accountID, bootcampID)
	return nil
}

// Remove clears a favorite for the account.
func (r *FavoriteRepository) Remove(accountID, bootcampID string) error {
	query := `DELETE FROM favorites WHERE account_id = ? AND bootcamp_id = ?`

	start := time.Now()
	result, err := r.db.Exec(query, accountID, bootcampID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		if r.logger != nil {
			r.logger.Database().Debug("Favorite delete matched no rows", "accountId", accountID, "bootcampId", bootcampID)
		}
	}

	duration := time.Since(start)
	if r.logger != nil && duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}

	r.cache.RemoveFavorite(accountID, bootcampID)
	return nil
}
