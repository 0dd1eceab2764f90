package telemetry

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"planetview/internal/frame"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func TestHubSendsHelloAndFrames(t *testing.T) {
	hub := NewHub(Session{Palette: "verdant", RotationMode: "inertial", Stars: 20000})
	hub.Interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)

	hello := readMessage(t, conn)
	if hello.Type != "hello" || hello.Session == nil {
		t.Fatalf("first message = %+v, want hello", hello)
	}
	if hello.Session.Palette != "verdant" || hello.Session.Stars != 20000 {
		t.Errorf("session = %+v", hello.Session)
	}

	hub.Observe(frame.Snapshot{Frame: 1, AnimTime: 0.01})
	hub.Observe(frame.Snapshot{Frame: 2, AnimTime: 0.02, Phase: "dragging"})

	// Only the newest snapshot per interval is sent.
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		msg := readMessage(t, conn)
		if msg.Type != "frame" || msg.Frame == nil {
			t.Fatalf("unexpected message %+v", msg)
		}
		if msg.Frame.Frame == 2 {
			if msg.Frame.Phase != "dragging" {
				t.Errorf("phase = %q, want dragging", msg.Frame.Phase)
			}
			return
		}
	}
	t.Fatal("frame 2 never arrived")
}

func TestObserveNeverBlocks(t *testing.T) {
	hub := NewHub(Session{})

	done := make(chan struct{})
	go func() {
		for i := 0; i < feedCapacity*4; i++ {
			hub.Observe(frame.Snapshot{Frame: uint64(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Observe blocked without a running hub")
	}

	if got := hub.Dropped(); got != uint64(feedCapacity*3) {
		t.Errorf("Dropped() = %d, want %d", got, feedCapacity*3)
	}
}

func TestHubClosesClientsOnShutdown(t *testing.T) {
	hub := NewHub(Session{})
	hub.Interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	readMessage(t, conn)

	cancel()
	<-stopped

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected the connection to be closed")
	}
	if n := hub.ClientCount(); n != 0 {
		t.Errorf("ClientCount() = %d after shutdown", n)
	}
}
