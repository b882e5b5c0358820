package messaging

import (
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shinescript/shinescript-go/internal/domain/notifications"
	"github.com/shinescript/shinescript-go/internal/domain/session"
	"github.com/shinescript/shinescript-go/internal/domain/user"
	"github.com/shinescript/shinescript-go/internal/infrastructure/observability/logging"
)

func quietLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToConsole: false,
		OutputToFile:    false,
		DefaultLevel:    slog.Level(12),
	})
	if err != nil {
		t.Fatalf("create logger: %v", err)
	}
	return logger
}

// attach registers a websocket client directly, bypassing the Run loop.
func attach(hub *SocketHub, sessionID string) *SocketClient {
	client := &SocketClient{SessionID: sessionID, Send: make(chan []byte, 16)}
	hub.mu.Lock()
	if hub.sessionClients[sessionID] == nil {
		hub.sessionClients[sessionID] = make(map[*SocketClient]bool)
	}
	hub.sessionClients[sessionID][client] = true
	hub.mu.Unlock()
	return client
}

func readEnvelope(t *testing.T, client *SocketClient) socketEnvelope {
	t.Helper()
	select {
	case message := <-client.Send:
		var envelope socketEnvelope
		if err := json.Unmarshal(message, &envelope); err != nil {
			t.Fatalf("decode envelope: %v", err)
		}
		return envelope
	case <-time.After(time.Second):
		t.Fatal("no websocket message delivered")
		return socketEnvelope{}
	}
}

func TestFanoutDeliversToastOverBothTransports(t *testing.T) {
	logger := quietLogger(t)
	sse := NewSSEBroadcaster(logger)
	hub := NewSocketHub()
	fanout := NewFanoutBroadcaster(sse, hub)

	sseCh := sse.AddClient("s1")
	defer sse.RemoveClient(sseCh, "s1")
	client := attach(hub, "s1")

	toast := &notifications.Notification{ID: "t1", Message: "¡Bienvenido de vuelta!", Kind: notifications.KindSuccess}
	fanout.BroadcastToast("s1", toast)

	envelope := readEnvelope(t, client)
	if envelope.Event != "toast" {
		t.Errorf("websocket event = %q, want toast", envelope.Event)
	}
	var got notifications.Notification
	if err := json.Unmarshal(envelope.Payload, &got); err != nil {
		t.Fatalf("decode toast payload: %v", err)
	}
	if got.ID != "t1" || got.Message != "¡Bienvenido de vuelta!" {
		t.Errorf("websocket toast = %+v", got)
	}

	select {
	case message := <-sseCh:
		if !strings.Contains(message, "event: toast") {
			t.Errorf("SSE message = %q", message)
		}
	case <-time.After(time.Second):
		t.Error("no SSE message delivered")
	}
}

func TestFanoutDeliversDismissAndSessionEvents(t *testing.T) {
	logger := quietLogger(t)
	sse := NewSSEBroadcaster(logger)
	hub := NewSocketHub()
	fanout := NewFanoutBroadcaster(sse, hub)

	client := attach(hub, "s2")

	fanout.BroadcastToastDismissed("s2", "t9")
	envelope := readEnvelope(t, client)
	if envelope.Event != "toast_dismissed" {
		t.Errorf("event = %q, want toast_dismissed", envelope.Event)
	}
	var dismissed map[string]string
	if err := json.Unmarshal(envelope.Payload, &dismissed); err != nil {
		t.Fatalf("decode dismiss payload: %v", err)
	}
	if dismissed["id"] != "t9" {
		t.Errorf("dismissed id = %q, want t9", dismissed["id"])
	}

	fanout.BroadcastSession("s2", session.Snapshot{User: &user.Identity{ID: "u1"}, Loading: false})
	envelope = readEnvelope(t, client)
	if envelope.Event != "session_changed" {
		t.Errorf("event = %q, want session_changed", envelope.Event)
	}
	var snap session.Snapshot
	if err := json.Unmarshal(envelope.Payload, &snap); err != nil {
		t.Fatalf("decode session payload: %v", err)
	}
	if snap.User == nil || snap.User.ID != "u1" {
		t.Errorf("session payload = %+v", snap)
	}
}

func TestFanoutSkipsOtherSessions(t *testing.T) {
	logger := quietLogger(t)
	sse := NewSSEBroadcaster(logger)
	hub := NewSocketHub()
	fanout := NewFanoutBroadcaster(sse, hub)

	other := attach(hub, "s3")
	fanout.BroadcastToastDismissed("s4", "t1")

	select {
	case message := <-other.Send:
		t.Errorf("unrelated session received %s", message)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestFanoutConnectionCountSpansTransports(t *testing.T) {
	logger := quietLogger(t)
	sse := NewSSEBroadcaster(logger)
	hub := NewSocketHub()
	fanout := NewFanoutBroadcaster(sse, hub)

	sseCh := sse.AddClient("s5")
	defer sse.RemoveClient(sseCh, "s5")
	attach(hub, "s5")

	if got := fanout.GetSessionConnectionCount("s5"); got != 2 {
		t.Errorf("connection count = %d, want 2", got)
	}
}
