package server

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"B3Radar/internal/model"
	"B3Radar/internal/radar"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Message types pushed over the websocket.
const (
	MessageSnapshot = "snapshot"
	MessageUpdate   = "update"
)

// Message is the websocket payload.
type Message struct {
	Type      string                    `json:"type"`
	At        time.Time                 `json:"at"`
	Timeframe model.Timeframe           `json:"timeframe"`
	Top       []model.OpportunityRecord `json:"opportunities"`
	Alerts    []model.Alert             `json:"alerts"`
}

func newUpdateMessage(u radar.Update) *Message {
	return &Message{
		Type:      MessageUpdate,
		At:        u.At,
		Timeframe: u.Timeframe,
		Top:       u.Top,
		Alerts:    u.Alerts,
	}
}

// Hub fans radar updates out to websocket clients.
type Hub struct {
	clients    map[*Client]struct{}
	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu          sync.RWMutex
	latest      *Message
	connections atomic.Int32

	logger *zap.Logger
}

// NewHub creates a hub. Call Run to start delivering.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan *Message, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run is the hub loop. It owns the client set and returns when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return

		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.connections.Add(1)
			if snap := h.snapshot(); snap != nil {
				client.send <- snap
			}

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
			}

		case msg := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					// Slow consumer.
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.send)
	h.connections.Add(-1)
}

// Broadcast records msg as the latest state and queues it for delivery.
// It never blocks; updates are dropped when the queue is full.
func (h *Hub) Broadcast(msg *Message) {
	h.mu.Lock()
	h.latest = msg
	h.mu.Unlock()

	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("broadcast queue full, update dropped")
	}
}

// snapshot returns a copy of the latest message typed as a snapshot.
func (h *Hub) snapshot() *Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.latest == nil {
		return nil
	}
	snap := *h.latest
	snap.Type = MessageSnapshot
	return &snap
}

// Connections returns the number of connected clients.
func (h *Hub) Connections() int {
	return int(h.connections.Load())
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// GET /ws
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan *Message, 16),
	}
	select {
	case s.hub.register <- client:
	case <-s.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
