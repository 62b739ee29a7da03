// Package events pushes committed booking changes to websocket clients
// subscribed to the affected rooms.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"roombooking/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

const (
	EventBookingCreated = "booking.created"
	EventBookingUpdated = "booking.updated"
	EventBookingDeleted = "booking.deleted"
)

// Event is the message pushed to subscribers.
type Event struct {
	Type    string          `json:"type"`
	RoomID  uuid.UUID       `json:"room_id"`
	Booking *domain.Booking `json:"booking"`
}

type client struct {
	conn  *websocket.Conn
	send  chan []byte
	rooms map[uuid.UUID]bool
}

// Hub tracks connected clients and their room subscriptions. It implements
// booking.Notifier.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		log:     log,
	}
}

func (h *Hub) BookingCreated(_ context.Context, b *domain.Booking) {
	h.Broadcast(Event{Type: EventBookingCreated, RoomID: b.RoomID, Booking: b})
}

// BookingUpdated notifies the new room, and the old one too when the
// booking moved.
func (h *Hub) BookingUpdated(_ context.Context, before, after *domain.Booking) {
	h.Broadcast(Event{Type: EventBookingUpdated, RoomID: after.RoomID, Booking: after})
	if before != nil && before.RoomID != after.RoomID {
		h.Broadcast(Event{Type: EventBookingUpdated, RoomID: before.RoomID, Booking: after})
	}
}

func (h *Hub) BookingDeleted(_ context.Context, b *domain.Booking) {
	h.Broadcast(Event{Type: EventBookingDeleted, RoomID: b.RoomID, Booking: b})
}

// Broadcast queues ev for every client subscribed to ev.RoomID. Slow
// clients whose buffer is full miss the event.
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("marshal event", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if !c.rooms[ev.RoomID] {
			continue
		}
		select {
		case c.send <- data:
		default:
			h.log.Warn("dropping event for slow client",
				zap.String("type", ev.Type),
				zap.String("room_id", ev.RoomID.String()),
			)
		}
	}
}

// Subscribers returns how many clients currently follow roomID.
func (h *Hub) Subscribers(roomID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for c := range h.clients {
		if c.rooms[roomID] {
			n++
		}
	}
	return n
}

// ServeWS registers conn for rooms and blocks until the client goes away.
func (h *Hub) ServeWS(conn *websocket.Conn, rooms []uuid.UUID) {
	c := &client{
		conn:  conn,
		send:  make(chan []byte, sendBuffer),
		rooms: make(map[uuid.UUID]bool, len(rooms)),
	}
	for _, id := range rooms {
		c.rooms[id] = true
	}

	if !h.register(c) {
		_ = conn.Close()
		return
	}

	go h.writePump(c)
	h.readPump(c)
}

// Close disconnects every client. Later connections are refused.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// readPump handles subscribe/unsubscribe requests and keeps the read
// deadline fresh.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("websocket closed", zap.Error(err))
			}
			return
		}

		var req struct {
			Type   string `json:"type"`
			RoomID string `json:"room_id"`
		}
		if err := json.Unmarshal(msg, &req); err != nil {
			continue
		}
		id, err := uuid.Parse(req.RoomID)
		if err != nil {
			continue
		}

		switch req.Type {
		case "subscribe":
			h.mu.Lock()
			c.rooms[id] = true
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(c.rooms, id)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
