package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

// memoryFavorites is an in-memory FavoriteStore keeping insertion order.
type memoryFavorites struct {
	byAccount map[string][]string
}

func newMemoryFavorites() *memoryFavorites {
	return &memoryFavorites{byAccount: make(map[string][]string)}
}

func (m *memoryFavorites) ListByAccount(accountID string) ([]string, error) {
	return m.byAccount[accountID], nil
}

func (m *memoryFavorites) Add(accountID, bootcampID string) error {
	for _, id := range m.byAccount[accountID] {
		if id == bootcampID {
			return nil
		}
	}
	m.byAccount[accountID] = append(m.byAccount[accountID], bootcampID)
	return nil
}

func (m *memoryFavorites) Remove(accountID, bootcampID string) error {
	ids := m.byAccount[accountID]
	for i, id := range ids {
		if id == bootcampID {
			m.byAccount[accountID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

func newTestFavoritesService() (*FavoritesService, *NotificationService) {
	toasts := NewNotificationService(time.Minute, counterIDs(), nil, nil)
	repo := &fakeCatalog{courses: testCourses()}
	return NewFavoritesService(newMemoryFavorites(), repo, toasts, nil), toasts
}

func TestToggleAddsThenRemoves(t *testing.T) {
	svc, toasts := newTestFavoritesService()
	ctx := context.Background()

	favorite, err := svc.Toggle(ctx, "s1", "acct-1", "c2")
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !favorite {
		t.Error("first toggle should add the favorite")
	}

	courses, err := svc.List(ctx, "acct-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(courses) != 1 || courses[0].ID != "c2" {
		t.Errorf("favorites after add = %v", courses)
	}

	favorite, err = svc.Toggle(ctx, "s1", "acct-1", "c2")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if favorite {
		t.Error("second toggle should remove the favorite")
	}
	if courses, _ := svc.List(ctx, "acct-1"); len(courses) != 0 {
		t.Errorf("favorites after remove = %v", courses)
	}

	active := toasts.Active("s1")
	if len(active) != 2 {
		t.Fatalf("got %d toasts, want 2", len(active))
	}
	if active[0].Message != "Curso agregado a favoritos" {
		t.Errorf("add toast = %q", active[0].Message)
	}
	if active[1].Message != "Curso removido de favoritos" {
		t.Errorf("remove toast = %q", active[1].Message)
	}
}

func TestToggleUnknownCourse(t *testing.T) {
	svc, _ := newTestFavoritesService()

	_, err := svc.Toggle(context.Background(), "s1", "acct-1", "no-such-course")
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("got %v, want ErrCourseNotFound", err)
	}
}

func TestListPreservesAdditionOrder(t *testing.T) {
	svc, _ := newTestFavoritesService()
	ctx := context.Background()

	svc.Toggle(ctx, "s1", "acct-1", "c3")
	svc.Toggle(ctx, "s1", "acct-1", "c1")

	courses, err := svc.List(ctx, "acct-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(courses) != 2 || courses[0].ID != "c3" || courses[1].ID != "c1" {
		t.Errorf("favorites order = %v", courses)
	}
}
