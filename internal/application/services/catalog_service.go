package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/shinescript/shinescript-go/internal/domain/catalog"
	"github.com/shinescript/shinescript-go/internal/domain/notifications"
	"github.com/shinescript/shinescript-go/internal/infrastructure/observability/logging"
)

// CatalogService loads the bootcamp catalog and applies visitor filters.
// The first successful load for a session announces the catalog size as a
// toast; repeat loads stay quiet.
type CatalogService struct {
	repo   catalog.Repository
	toasts *NotificationService
	logger *logging.ChanneledLogger

	mu     sync.Mutex
	loaded map[string]bool
}

// NewCatalogService creates the catalog service.
func NewCatalogService(repo catalog.Repository, toasts *NotificationService, logger *logging.ChanneledLogger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		toasts: toasts,
		logger: logger,
		loaded: make(map[string]bool),
	}
}

// Load fetches the full enriched catalog for a session.
func (s *CatalogService) Load(ctx context.Context, sessionID string) ([]*catalog.Course, error) {
	courses, err := s.repo.FindAll(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.LogError(logging.ChannelCatalog, "load_catalog", err, map[string]any{"sessionId": sessionID})
		}
		if s.toasts != nil {
			s.toasts.Push(sessionID, "Error al cargar los bootcamps", notifications.KindError)
		}
		return nil, err
	}

	s.mu.Lock()
	first := !s.loaded[sessionID]
	if first {
		s.loaded[sessionID] = true
	}
	s.mu.Unlock()

	if first && s.toasts != nil {
		s.toasts.Push(sessionID, fmt.Sprintf("%d bootcamps cargados", len(courses)), notifications.KindSuccess)
	}

	return courses, nil
}

// Search loads the catalog and applies the filter, preserving catalog order.
func (s *CatalogService) Search(ctx context.Context, sessionID string, filter catalog.FilterState) ([]*catalog.Course, error) {
	courses, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return catalog.Apply(courses, filter), nil
}

// Get returns one course with detail fallbacks applied, or nil when the
// course does not exist.
func (s *CatalogService) Get(ctx context.Context, id string) (*catalog.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if s.logger != nil {
			s.logger.LogError(logging.ChannelCatalog, "get_course", err, map[string]any{"courseId": id})
		}
		return nil, err
	}
	if course == nil {
		return nil, nil
	}
	return course.WithDetailFallbacks(), nil
}

// ForgetSession clears the first-load marker so a returning session gets
// the load announcement again.
func (s *CatalogService) ForgetSession(sessionID string) {
	s.mu.Lock()
	delete(s.loaded, sessionID)
	s.mu.Unlock()
}
