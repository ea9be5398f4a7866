package services

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// FeedEvent is what dashboard clients receive on the live feed.
type FeedEvent struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

// feedConn is one dashboard WebSocket connection.
type feedConn struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// FeedManager broadcasts chat activity to connected dashboard clients.
// Slow clients are skipped, never waited on.
type FeedManager struct {
	mu        sync.RWMutex
	conns     map[string]*feedConn
	broadcast chan FeedEvent
}

// NewFeedManager creates the manager and starts its broadcast loop.
func NewFeedManager() *FeedManager {
	m := &FeedManager{
		conns:     make(map[string]*feedConn),
		broadcast: make(chan FeedEvent, 100),
	}
	go m.run()
	return m
}

// Broadcast queues an event for all connected clients. It never
// blocks: when the queue is full the event is dropped.
func (m *FeedManager) Broadcast(eventType string, data interface{}) {
	select {
	case m.broadcast <- FeedEvent{Type: eventType, Data: data, Timestamp: time.Now().Unix()}:
	default:
		slog.Warn("Feed broadcast queue full, dropping event", "type", eventType)
	}
}

func (m *FeedManager) run() {
	for event := range m.broadcast {
		jsonData, err := json.Marshal(event)
		if err != nil {
			slog.Error("Failed to marshal feed event", "error", err)
			continue
		}

		m.mu.RLock()
		for _, c := range m.conns {
			select {
			case c.send <- jsonData:
			default:
				slog.Warn("Feed connection buffer full, skipping", "connectionID", c.id)
			}
		}
		m.mu.RUnlock()
	}
}

// HandleConnection serves one dashboard WebSocket until it closes.
// Intended to be wrapped with websocket.New in the router.
func (m *FeedManager) HandleConnection(conn *websocket.Conn) {
	c := &feedConn{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, 16),
	}

	m.mu.Lock()
	m.conns[c.id] = c
	total := len(m.conns)
	m.mu.Unlock()

	slog.Info("Feed connection registered", "connectionID", c.id, "totalConnections", total)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for data := range c.send {
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}()

	// Discard client frames; the feed is one-way
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	m.mu.Lock()
	delete(m.conns, c.id)
	m.mu.Unlock()
	close(c.send)
	<-done

	slog.Info("Feed connection unregistered", "connectionID", c.id)
}
