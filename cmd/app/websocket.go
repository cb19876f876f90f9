// WebSocket hub for sync status diagnostics (local UI only). Log data
// itself is never pushed; clients fetch the log over REST and these
// events just tell the UI when a sync cycle ran.
package main

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/liftbook/liftbook/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Local app surface only.
		return true
	},
}

// Sync event types broadcast to connected clients.
const (
	EventSyncStarted   = "sync.started"
	EventSyncCompleted = "sync.completed"
	EventSyncFailed    = "sync.failed"
)

// WSEnvelope wraps all WebSocket messages.
type WSEnvelope struct {
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data"`
	Timestamp int64                  `json:"timestamp"`
}

// WSClient represents one connected client.
type WSClient struct {
	conn *websocket.Conn
	send chan []byte
	hub  *WSHub
}

// WSHub maintains active client connections and broadcasts events.
type WSHub struct {
	clients    map[*WSClient]bool
	broadcast  chan []byte
	register   chan *WSClient
	unregister chan *WSClient
	done       chan struct{}
	mu         sync.Mutex
	closed     bool
}

// NewWSHub creates a new hub.
func NewWSHub() *WSHub {
	return &WSHub{
		clients:    make(map[*WSClient]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *WSClient),
		unregister: make(chan *WSClient),
		done:       make(chan struct{}),
	}
}

// Run processes register/unregister/broadcast events until Close.
func (h *WSHub) Run() {
	for {
		select {
		case <-h.done:
			for client := range h.clients {
				close(client.send)
				client.conn.Close()
			}
			return
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow client, drop it.
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// Close shuts the hub down.
func (h *WSHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.closed {
		h.closed = true
		close(h.done)
	}
}

// HandleWS upgrades a request to a WebSocket connection.
func (h *WSHub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("websocket upgrade failed", logging.Fields{"error": err.Error()})
		return
	}

	client := &WSClient{conn: conn, send: make(chan []byte, 16), hub: h}
	h.register <- client

	go client.writeLoop()
	go client.readLoop()
}

func (c *WSClient) writeLoop() {
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			break
		}
	}
	c.conn.Close()
}

func (c *WSClient) readLoop() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		// Clients never send anything meaningful; reads only detect
		// disconnects.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *WSHub) emit(eventType string, data map[string]interface{}) {
	envelope := WSEnvelope{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}
	message, err := json.Marshal(envelope)
	if err != nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
	}
}

// SyncStarted implements sync.EventSink.
func (h *WSHub) SyncStarted() {
	h.emit(EventSyncStarted, nil)
}

// SyncCompleted implements sync.EventSink.
func (h *WSHub) SyncCompleted(entries int, duration time.Duration) {
	h.emit(EventSyncCompleted, map[string]interface{}{
		"entries":     entries,
		"duration_ms": duration.Milliseconds(),
	})
}

// SyncFailed implements sync.EventSink.
func (h *WSHub) SyncFailed(reason string) {
	h.emit(EventSyncFailed, map[string]interface{}{
		"reason": reason,
	})
}
