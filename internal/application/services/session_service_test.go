package services

import (
	"testing"
	"time"

	"github.com/shinescript/shinescript-go/internal/domain/session"
	"github.com/shinescript/shinescript-go/internal/domain/user"
	"github.com/shinescript/shinescript-go/pkg/config"
)

// fakeProvider captures the hub's callback so tests can drive session
// changes directly.
type fakeProvider struct {
	callback     func(sessionID string, identity *user.Identity)
	unsubscribed bool
}

func (p *fakeProvider) ObserveSession(fn func(string, *user.Identity)) (func(), error) {
	p.callback = fn
	return func() { p.unsubscribed = true }, nil
}

func TestSnapshotDefaultsToLoading(t *testing.T) {
	hub := NewSessionHub(nil, nil)

	snap := hub.Snapshot("unknown-session")
	if !snap.Loading {
		t.Error("unresolved session should report Loading=true")
	}
	if snap.User != nil {
		t.Errorf("unresolved session carries user %+v", snap.User)
	}
}

func TestProviderNotificationSettlesSnapshot(t *testing.T) {
	hub := NewSessionHub(nil, nil)
	provider := &fakeProvider{}
	if err := hub.Initialize(provider); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	provider.callback("s1", &user.Identity{ID: "u1", Email: "ana@correo.com"})

	snap := hub.Snapshot("s1")
	if snap.Loading {
		t.Error("snapshot still loading after provider notification")
	}
	if snap.User == nil || snap.User.ID != "u1" {
		t.Errorf("snapshot user = %+v, want u1", snap.User)
	}

	// Sign-out for the same session.
	provider.callback("s1", nil)
	snap = hub.Snapshot("s1")
	if snap.Loading || snap.User != nil {
		t.Errorf("signed-out snapshot = %+v", snap)
	}

	// Another session stays untouched.
	if other := hub.Snapshot("s2"); !other.Loading {
		t.Error("unrelated session lost its loading state")
	}
}

func TestInitializeTwiceFails(t *testing.T) {
	hub := NewSessionHub(nil, nil)
	if err := hub.Initialize(&fakeProvider{}); err != nil {
		t.Fatalf("first initialize: %v", err)
	}
	if err := hub.Initialize(&fakeProvider{}); err == nil {
		t.Error("second initialize should fail")
	}
}

func TestTeardownUnsubscribesAndAllowsReinit(t *testing.T) {
	hub := NewSessionHub(nil, nil)
	provider := &fakeProvider{}
	if err := hub.Initialize(provider); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	hub.Teardown()
	if !provider.unsubscribed {
		t.Error("teardown did not release the provider subscription")
	}

	// Repeat teardown is a no-op.
	hub.Teardown()

	if err := hub.Initialize(&fakeProvider{}); err != nil {
		t.Errorf("re-initialize after teardown: %v", err)
	}
}

func TestSubscribeReceivesChangesUntilUnsubscribed(t *testing.T) {
	hub := NewSessionHub(nil, nil)
	provider := &fakeProvider{}
	if err := hub.Initialize(provider); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	var got []session.Snapshot
	unsubscribe := hub.Subscribe("s1", func(snap session.Snapshot) {
		got = append(got, snap)
	})

	provider.callback("s1", &user.Identity{ID: "u1"})
	provider.callback("s2", &user.Identity{ID: "u2"})

	if len(got) != 1 {
		t.Fatalf("subscriber saw %d changes, want 1 (own session only)", len(got))
	}
	if got[0].User == nil || got[0].User.ID != "u1" {
		t.Errorf("subscriber snapshot = %+v", got[0])
	}

	unsubscribe()
	provider.callback("s1", nil)
	if len(got) != 1 {
		t.Error("subscriber notified after unsubscribe")
	}
}

func TestActiveSessionCount(t *testing.T) {
	hub := NewSessionHub(nil, nil)
	provider := &fakeProvider{}
	if err := hub.Initialize(provider); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	if hub.ActiveSessionCount() != 0 {
		t.Errorf("fresh hub reports %d sessions", hub.ActiveSessionCount())
	}
	provider.callback("s1", nil)
	provider.callback("s2", &user.Identity{ID: "u2"})
	if hub.ActiveSessionCount() != 2 {
		t.Errorf("got %d sessions, want 2", hub.ActiveSessionCount())
	}
}

func TestReaperInvokesIdlePurger(t *testing.T) {
	hub := NewSessionHub(nil, nil)

	var gotMaxIdle time.Duration
	calls := 0
	hub.AttachIdlePurger(func(maxIdle time.Duration) int {
		gotMaxIdle = maxIdle
		calls++
		return 3
	})

	hub.reap()

	if calls != 1 {
		t.Fatalf("purger called %d times, want 1", calls)
	}
	if gotMaxIdle != config.SessionMaxIdle {
		t.Errorf("purger maxIdle = %v, want %v", gotMaxIdle, config.SessionMaxIdle)
	}
}
