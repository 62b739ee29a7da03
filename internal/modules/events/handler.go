package events

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"roombooking/internal/domain"
	"roombooking/internal/pkg/response"
)

// RoomFinder resolves a room id; it returns an error wrapping
// domain.ErrNotFound for unknown rooms.
type RoomFinder interface {
	GetRoom(ctx context.Context, id uuid.UUID) (*domain.Room, error)
}

type Handler struct {
	hub      *Hub
	rooms    RoomFinder
	upgrader websocket.Upgrader
}

// NewHandler builds the websocket endpoint. checkOrigin may be nil to allow
// any origin.
func NewHandler(hub *Hub, rooms RoomFinder, checkOrigin func(*http.Request) bool) *Handler {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Handler{
		hub:   hub,
		rooms: rooms,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/bookings", h.Subscribe)
}

// Subscribe handles GET /ws/bookings?room_id=ID[,ID...]
// room_id may also be repeated.
func (h *Handler) Subscribe(c *gin.Context) {
	var rooms []uuid.UUID
	for _, raw := range c.QueryArray("room_id") {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room_id")
				return
			}
			if _, err := h.rooms.GetRoom(c.Request.Context(), id); err != nil {
				response.FromError(c, err)
				return
			}
			rooms = append(rooms, id)
		}
	}
	if len(rooms) == 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "room_id is required")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error.
		return
	}
	h.hub.ServeWS(conn, rooms)
}
