package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"roombooking/internal/pkg/response"
	"roombooking/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers building and room routes. Room availability is
// served by the booking module under the same /rooms prefix.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	buildings := r.Group("/buildings")
	{
		buildings.GET("", h.ListBuildings)
		buildings.POST("", h.CreateBuilding)
		buildings.GET("/:id", h.GetBuilding)
		buildings.PUT("/:id", h.UpdateBuilding)
		buildings.DELETE("/:id", h.DeleteBuilding)
	}

	rooms := r.Group("/rooms")
	{
		rooms.GET("", h.ListRooms) // GET /api/v1/rooms?building_id=...
		rooms.POST("", h.CreateRoom)
		rooms.GET("/:id", h.GetRoom)
		rooms.PUT("/:id", h.UpdateRoom)
		rooms.DELETE("/:id", h.DeleteRoom)
	}
}

/* ---------- BUILDING HANDLERS ---------- */

func (h *Handler) ListBuildings(c *gin.Context) {
	buildings, err := h.service.ListBuildings(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"buildings": buildings})
}

func (h *Handler) GetBuilding(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, err := h.service.GetBuilding(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"building": b})
}

func (h *Handler) CreateBuilding(c *gin.Context) {
	var req BuildingRequest
	if !bind(c, &req) {
		return
	}
	b, err := h.service.CreateBuilding(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"building": b})
}

func (h *Handler) UpdateBuilding(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req BuildingRequest
	if !bind(c, &req) {
		return
	}
	b, err := h.service.UpdateBuilding(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"building": b})
}

func (h *Handler) DeleteBuilding(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, err := h.service.DeleteBuilding(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"building": b})
}

/* ---------- ROOM HANDLERS ---------- */

func (h *Handler) ListRooms(c *gin.Context) {
	buildingID := uuid.Nil
	if raw := c.Query("building_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid building_id")
			return
		}
		buildingID = id
	}
	rooms, err := h.service.ListRooms(c.Request.Context(), buildingID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

func (h *Handler) GetRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	room, err := h.service.GetRoom(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) CreateRoom(c *gin.Context) {
	var req RoomRequest
	if !bind(c, &req) {
		return
	}
	room, err := h.service.CreateRoom(c.Request.Context(), req.Input())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"room": room})
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req RoomRequest
	if !bind(c, &req) {
		return
	}
	room, err := h.service.UpdateRoom(c.Request.Context(), id, req.Input())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) DeleteRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	room, err := h.service.DeleteRoom(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return false
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return false
	}
	return true
}
