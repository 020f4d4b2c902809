package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yourusername/flash-convert-go/internal/domain"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now
	},
}

const (
	// clientSendBuffer bounds the per-client backlog; a client that
	// falls this far behind is dropped.
	clientSendBuffer = 32

	writeTimeout = 10 * time.Second
)

// ProgressHub fans download and conversion progress out to connected
// WebSocket clients. Each client has its own buffered send queue
// drained by a writer goroutine; Broadcast never blocks on a client,
// it drops any client whose queue is full.
type ProgressHub struct {
	logger  *zap.Logger
	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte
}

// NewProgressHub creates a progress hub
func NewProgressHub(logger *zap.Logger) *ProgressHub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressHub{
		logger:  logger,
		clients: make(map[*websocket.Conn]chan []byte),
	}
}

// Broadcast queues ev for every connected client. A client whose
// queue has no room left is dropped on the spot; the caller is never
// delayed by a stalled connection.
func (h *ProgressHub) Broadcast(ev domain.ProgressEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("Failed to marshal progress event", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, send := range h.clients {
		select {
		case send <- data:
		default:
			h.logger.Warn("Dropping slow WebSocket client",
				zap.String("remote_addr", conn.RemoteAddr().String()))
			delete(h.clients, conn)
			close(send)
		}
	}
}

// HandleWebSocket handles GET /ws/progress
func (h *ProgressHub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade WebSocket", zap.Error(err))
		return
	}

	send := make(chan []byte, clientSendBuffer)
	h.mu.Lock()
	h.clients[conn] = send
	h.mu.Unlock()

	go h.writeLoop(conn, send)

	h.logger.Info("WebSocket client connected",
		zap.String("remote_addr", c.Request.RemoteAddr))

	// Read loop for ping/pong; the client disconnecting ends it
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(conn)
}

// writeLoop drains a client's send queue onto the connection. It ends
// when the queue is closed (client dropped or disconnected) or a
// write fails.
func (h *ProgressHub) writeLoop(conn *websocket.Conn, send chan []byte) {
	defer conn.Close()
	for data := range send {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Warn("WebSocket write failed, dropping client", zap.Error(err))
			h.remove(conn)
			return
		}
	}
}

// remove unregisters conn. Safe to call from both the read and write
// loops; only the first call closes the send queue.
func (h *ProgressHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if send, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(send)
	}
	h.mu.Unlock()
	conn.Close()
}

// ClientCount returns the number of connected clients
func (h *ProgressHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
