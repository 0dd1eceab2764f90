package telemetry

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"planetview/internal/frame"
	"planetview/internal/utils"
)

const (
	DefaultInterval = 100 * time.Millisecond
	feedCapacity    = 64
	writeTimeout    = time.Second
)

// Session describes the running scene; it is sent once to every new client.
type Session struct {
	Palette      string    `json:"palette"`
	RotationMode string    `json:"rotationMode"`
	Stars        int       `json:"stars"`
	Shells       []Shell   `json:"shells"`
	StartedAt    time.Time `json:"startedAt"`
}

type Shell struct {
	Kind       string  `json:"kind"`
	Radius     float32 `json:"radius"`
	Resolution int     `json:"resolution"`
}

type Message struct {
	Type    string          `json:"type"`
	Session *Session        `json:"session,omitempty"`
	Frame   *frame.Snapshot `json:"frame,omitempty"`
}

// Hub fans frame snapshots out to websocket clients. The render loop only
// calls Observe, which never blocks.
type Hub struct {
	Interval time.Duration

	upgrader     websocket.Upgrader
	clients      map[*websocket.Conn]*sync.Mutex
	clientsMutex sync.RWMutex

	session Session
	feed    chan frame.Snapshot
	dropped atomic.Uint64
}

func NewHub(session Session) *Hub {
	return &Hub{
		Interval: DefaultInterval,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // local dashboards
			},
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
		session: session,
		feed:    make(chan frame.Snapshot, feedCapacity),
	}
}

// Observe queues a snapshot, dropping it when the feed is full.
func (h *Hub) Observe(snap frame.Snapshot) {
	select {
	case h.feed <- snap:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hub) Dropped() uint64 { return h.dropped.Load() }

func (h *Hub) ClientCount() int {
	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()
	return len(h.clients)
}

// Run broadcasts the newest snapshot every Interval until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	interval := h.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var latest frame.Snapshot
	pending := false

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case snap := <-h.feed:
			latest = snap
			pending = true
		case <-ticker.C:
			if pending {
				snap := latest
				h.broadcast(Message{Type: "frame", Frame: &snap})
				pending = false
			}
		}
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		utils.Warn("Telemetry: websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	connMutex := &sync.Mutex{}
	h.clientsMutex.Lock()
	h.clients[conn] = connMutex
	h.clientsMutex.Unlock()
	defer h.remove(conn)

	utils.Debug("Telemetry: client connected from %s", r.RemoteAddr)

	session := h.session
	connMutex.Lock()
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	err = conn.WriteJSON(Message{Type: "hello", Session: &session})
	connMutex.Unlock()
	if err != nil {
		utils.Warn("Telemetry: hello failed: %v", err)
		return
	}

	// The feed is read-only; incoming messages are drained to notice closes.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			utils.Debug("Telemetry: client %s gone: %v", r.RemoteAddr, err)
			return
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.clientsMutex.Lock()
	delete(h.clients, conn)
	h.clientsMutex.Unlock()
}

func (h *Hub) broadcast(msg Message) {
	h.clientsMutex.RLock()
	clientsToRemove := []*websocket.Conn{}
	for client, mutex := range h.clients {
		mutex.Lock()
		client.SetWriteDeadline(time.Now().Add(writeTimeout))
		err := client.WriteJSON(msg)
		mutex.Unlock()
		if err != nil {
			utils.Debug("Telemetry: write failed: %v", err)
			clientsToRemove = append(clientsToRemove, client)
		}
	}
	h.clientsMutex.RUnlock()

	// Remove failed clients
	if len(clientsToRemove) > 0 {
		h.clientsMutex.Lock()
		for _, client := range clientsToRemove {
			delete(h.clients, client)
			client.Close()
		}
		h.clientsMutex.Unlock()
	}
}

func (h *Hub) closeAll() {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()
	for client, mutex := range h.clients {
		mutex.Lock()
		client.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(writeTimeout))
		mutex.Unlock()
		client.Close()
		delete(h.clients, client)
	}
}

// ListenAndServe serves the feed at /ws on addr until ctx is done.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go h.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	utils.Info("Telemetry feed on ws://%s/ws", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
