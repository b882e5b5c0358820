package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/shinescript/shinescript-go/internal/domain/notifications"
)

// counterIDs returns a deterministic id generator for tests.
func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("toast-%d", n)
	}
}

func TestPushAndActiveKeepArrivalOrder(t *testing.T) {
	svc := NewNotificationService(time.Minute, counterIDs(), nil, nil)

	svc.Push("s1", "primero", notifications.KindSuccess)
	svc.Push("s1", "segundo", notifications.KindError)
	svc.Push("s1", "tercero", notifications.KindInfo)

	active := svc.Active("s1")
	if len(active) != 3 {
		t.Fatalf("got %d active toasts, want 3", len(active))
	}
	for i, want := range []string{"primero", "segundo", "tercero"} {
		if active[i].Message != want {
			t.Errorf("toast %d message = %q, want %q", i, active[i].Message, want)
		}
	}
}

func TestPushRejectsInvalidKind(t *testing.T) {
	svc := NewNotificationService(time.Minute, counterIDs(), nil, nil)

	if _, err := svc.Push("s1", "mensaje", notifications.Kind("fatal")); err == nil {
		t.Error("invalid kind accepted")
	}
	if len(svc.Active("s1")) != 0 {
		t.Error("invalid toast landed in the queue")
	}
}

func TestDismissMiddlePreservesOrder(t *testing.T) {
	svc := NewNotificationService(time.Minute, counterIDs(), nil, nil)

	svc.Push("s1", "primero", notifications.KindInfo)
	middle, _ := svc.Push("s1", "segundo", notifications.KindInfo)
	svc.Push("s1", "tercero", notifications.KindInfo)

	svc.Dismiss("s1", middle.ID)

	active := svc.Active("s1")
	if len(active) != 2 {
		t.Fatalf("got %d active toasts, want 2", len(active))
	}
	if active[0].Message != "primero" || active[1].Message != "tercero" {
		t.Errorf("order not preserved after dismiss: %q, %q", active[0].Message, active[1].Message)
	}
}

func TestDismissUnknownIDIsNoOp(t *testing.T) {
	svc := NewNotificationService(time.Minute, counterIDs(), nil, nil)
	svc.Push("s1", "mensaje", notifications.KindInfo)

	svc.Dismiss("s1", "no-such-toast")

	if len(svc.Active("s1")) != 1 {
		t.Error("dismissing an unknown id changed the queue")
	}
}

func TestToastExpiresAfterTTL(t *testing.T) {
	svc := NewNotificationService(20*time.Millisecond, counterIDs(), nil, nil)

	svc.Push("s1", "efímero", notifications.KindSuccess)
	if len(svc.Active("s1")) != 1 {
		t.Fatal("toast missing immediately after push")
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(svc.Active("s1")) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("toast never expired")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestQueuesAreIndependentPerSession(t *testing.T) {
	svc := NewNotificationService(time.Minute, counterIDs(), nil, nil)

	svc.Push("s1", "para s1", notifications.KindInfo)
	svc.Push("s2", "para s2", notifications.KindInfo)

	if got := svc.Active("s1"); len(got) != 1 || got[0].Message != "para s1" {
		t.Errorf("s1 queue = %v", got)
	}
	if got := svc.Active("s2"); len(got) != 1 || got[0].Message != "para s2" {
		t.Errorf("s2 queue = %v", got)
	}

	svc.ClearSession("s1")
	if len(svc.Active("s1")) != 0 {
		t.Error("ClearSession left toasts behind")
	}
	if len(svc.Active("s2")) != 1 {
		t.Error("ClearSession touched another session's queue")
	}
}
