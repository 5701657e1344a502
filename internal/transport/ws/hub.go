package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    string          `json:"type"`
	Channel string          `json:"channel"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans messages out to the connections subscribed to each channel
type Hub struct {
	// channel -> connections
	channels map[string]map[*Connection]struct{}

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	done       chan struct{}
	stopped    chan struct{}
	closeOnce  sync.Once

	logger *zap.Logger
}

// Connection represents a WebSocket subscriber
type Connection struct {
	Channel string
	UserID  string // empty for anonymous forum readers
	Send    chan []byte
}

// NewConnection creates a subscriber with a buffered send queue.
func NewConnection(channel, userID string) *Connection {
	return &Connection{
		Channel: channel,
		UserID:  userID,
		Send:    make(chan []byte, 256),
	}
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	Channel string
	Data    []byte
}

// NewHub creates a new WebSocket hub and starts its run loop
func NewHub(logger *zap.Logger) *Hub {
	h := &Hub{
		channels:   make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
		logger:     logger,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	defer close(h.stopped)
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.channels[conn.Channel] == nil {
				h.channels[conn.Channel] = make(map[*Connection]struct{})
			}
			h.channels[conn.Channel][conn] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug("ws subscriber joined", zap.String("channel", conn.Channel), zap.String("userId", conn.UserID))

		case conn := <-h.unregister:
			h.mu.Lock()
			if subs, ok := h.channels[conn.Channel]; ok {
				if _, ok := subs[conn]; ok {
					delete(subs, conn)
					close(conn.Send)
					h.logger.Debug("ws subscriber left", zap.String("channel", conn.Channel), zap.String("userId", conn.UserID))
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			for conn := range h.channels[msg.Channel] {
				select {
				case conn.Send <- msg.Data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for _, subs := range h.channels {
				for conn := range subs {
					close(conn.Send)
				}
			}
			h.channels = make(map[string]map[*Connection]struct{})
			h.mu.Unlock()
			return
		}
	}
}

// Register adds a connection. It is a no-op once the hub is closed.
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Broadcast sends payload to every subscriber of channel (implements service.Broadcaster)
func (h *Hub) Broadcast(channel, msgType string, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("marshal ws payload failed", zap.String("type", msgType), zap.Error(err))
		return
	}
	data, _ := json.Marshal(&Message{
		Type:    msgType,
		Channel: channel,
		Payload: body,
	})

	select {
	case h.broadcast <- &BroadcastMessage{Channel: channel, Data: data}:
	case <-h.done:
	}
}

// Subscribers returns the number of connections on channel.
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

// Close stops the run loop and closes every subscriber's send queue.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
	<-h.stopped
}
