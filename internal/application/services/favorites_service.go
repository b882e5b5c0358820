package services

import (
	"context"
	"errors"

	"github.com/shinescript/shinescript-go/internal/domain/catalog"
	"github.com/shinescript/shinescript-go/internal/domain/notifications"
	"github.com/shinescript/shinescript-go/internal/infrastructure/observability/logging"
)

// ErrCourseNotFound reports a favorite toggle against a missing bootcamp.
var ErrCourseNotFound = errors.New("course not found")

// FavoriteStore is the persistence surface the favorites service needs.
type FavoriteStore interface {
	ListByAccount(accountID string) ([]string, error)
	Add(accountID, bootcampID string) error
	Remove(accountID, bootcampID string) error
}

// FavoritesService manages an account's saved bootcamps.
type FavoritesService struct {
	store   FavoriteStore
	catalog catalog.Repository
	toasts  *NotificationService
	logger  *logging.ChanneledLogger
}

// NewFavoritesService creates the favorites service.
func NewFavoritesService(store FavoriteStore, catalogRepo catalog.Repository, toasts *NotificationService, logger *logging.ChanneledLogger) *FavoritesService {
	return &FavoritesService{
		store:   store,
		catalog: catalogRepo,
		toasts:  toasts,
		logger:  logger,
	}
}

// List returns the account's favorite bootcamps in the order they were
// added. Favorites pointing at removed bootcamps are skipped.
func (s *FavoritesService) List(ctx context.Context, accountID string) ([]*catalog.Course, error) {
	ids, err := s.store.ListByAccount(accountID)
	if err != nil {
		return nil, err
	}

	courses := make([]*catalog.Course, 0, len(ids))
	for _, id := range ids {
		course, err := s.catalog.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if course != nil {
			courses = append(courses, course)
		}
	}
	return courses, nil
}

// Toggle flips a bootcamp in or out of the account's favorites and
// confirms with a toast. Returns whether the course is now a favorite.
func (s *FavoritesService) Toggle(ctx context.Context, sessionID, accountID, courseID string) (bool, error) {
	course, err := s.catalog.FindByID(ctx, courseID)
	if err != nil {
		return false, err
	}
	if course == nil {
		return false, ErrCourseNotFound
	}

	ids, err := s.store.ListByAccount(accountID)
	if err != nil {
		return false, err
	}
	isFavorite := false
	for _, id := range ids {
		if id == courseID {
			isFavorite = true
			break
		}
	}

	if isFavorite {
		if err := s.store.Remove(accountID, courseID); err != nil {
			if s.logger != nil {
				s.logger.LogError(logging.ChannelCatalog, "remove_favorite", err, map[string]any{"accountId": accountID, "courseId": courseID})
			}
			return true, err
		}
		if s.toasts != nil {
			s.toasts.Push(sessionID, "Curso removido de favoritos", notifications.KindInfo)
		}
		return false, nil
	}

	if err := s.store.Add(accountID, courseID); err != nil {
		if s.logger != nil {
			s.logger.LogError(logging.ChannelCatalog, "add_favorite", err, map[string]any{"accountId": accountID, "courseId": courseID})
		}
		return false, err
	}
	if s.toasts != nil {
		s.toasts.Push(sessionID, "Curso agregado a favoritos", notifications.KindInfo)
	}
	return true, nil
}
