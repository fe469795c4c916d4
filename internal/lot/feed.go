package lot

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/ipqbbqgyy/parking-system/internal/logger"
	"github.com/ipqbbqgyy/parking-system/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type snapshotter interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// Feed pushes the availability map to websocket clients whenever stays
// change. All writes to client connections happen on the Run goroutine.
type Feed struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	changed    chan struct{}
	done       chan struct{}
	mu         sync.RWMutex
}

func NewFeed() *Feed {
	return &Feed{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		changed:    make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
}

// StaysChanged schedules a broadcast. It never blocks; signals arriving while
// one is pending are merged.
func (f *Feed) StaysChanged(ctx context.Context) {
	select {
	case f.changed <- struct{}{}:
	default:
	}
}

func (f *Feed) Clients() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.clients)
}

// Run serves clients with snapshots from source until ctx is cancelled. It
// must be called once.
func (f *Feed) Run(ctx context.Context, source snapshotter) {
	defer close(f.done)

	for {
		select {
		case <-ctx.Done():
			f.mu.Lock()
			for conn := range f.clients {
				conn.Close()
				delete(f.clients, conn)
			}
			f.mu.Unlock()
			metrics.FeedClients.Set(0)
			return

		case conn := <-f.register:
			f.mu.Lock()
			f.clients[conn] = true
			total := len(f.clients)
			f.mu.Unlock()
			metrics.FeedClients.Set(float64(total))
			logger.Debug("availability client connected", "total", total)

			if msg, ok := f.render(ctx, source); ok {
				f.write(conn, msg)
			}

		case conn := <-f.unregister:
			f.drop(conn)

		case <-f.changed:
			msg, ok := f.render(ctx, source)
			if !ok {
				continue
			}

			f.mu.RLock()
			conns := make([]*websocket.Conn, 0, len(f.clients))
			for conn := range f.clients {
				conns = append(conns, conn)
			}
			f.mu.RUnlock()

			for _, conn := range conns {
				f.write(conn, msg)
			}
		}
	}
}

func (f *Feed) render(ctx context.Context, source snapshotter) ([]byte, bool) {
	snap, err := source.Snapshot(ctx)
	if err != nil {
		logger.Error("availability snapshot failed", "error", err)
		return nil, false
	}

	msg, err := json.Marshal(snap)
	if err != nil {
		logger.Error("availability snapshot encoding failed", "error", err)
		return nil, false
	}

	return msg, true
}

func (f *Feed) write(conn *websocket.Conn, msg []byte) {
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		logger.Debug("availability client write failed", "error", err)
		f.drop(conn)
	}
}

func (f *Feed) drop(conn *websocket.Conn) {
	f.mu.Lock()
	if _, ok := f.clients[conn]; ok {
		delete(f.clients, conn)
		conn.Close()
	}
	total := len(f.clients)
	f.mu.Unlock()
	metrics.FeedClients.Set(float64(total))
}

// Serve upgrades the request and keeps reading until the client goes away.
func (f *Feed) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	select {
	case f.register <- conn:
	case <-f.done:
		conn.Close()
		return
	}

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					logger.Debug("websocket closed", "error", err)
				}
				break
			}
		}
		select {
		case f.unregister <- conn:
		case <-f.done:
		}
	}()
}
