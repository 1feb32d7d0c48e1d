package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	r "coderoom/internal/room"
)

type RoomHandlers struct {
	service *r.Service
}

func NewRoomHandlers(db *gorm.DB) *RoomHandlers {
	return &RoomHandlers{
		service: r.NewService(db),
	}
}

type CreateRoomRequest struct {
	Name     string `json:"name"`
	Language string `json:"language"`
}

// CreateRoomHandler creates a room and returns it, ID included, so the
// frontend can build the shareable room link.
func (h *RoomHandlers) CreateRoomHandler(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Language == "" {
		req.Language = "javascript"
	}

	room, err := h.service.Create(req.Name, req.Language)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
		return
	}

	c.JSON(http.StatusCreated, room)
}

func (h *RoomHandlers) ListRoomsHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	rooms, err := h.service.List(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rooms"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

type CodeResponse struct {
	IniCode string `json:"iniCode"`
}

// GetCodeHandler returns the persisted code for a room. Clients call it
// once at startup; unknown rooms yield an empty blob.
func (h *RoomHandlers) GetCodeHandler(c *gin.Context) {
	roomID := c.Param("roomId")

	code, err := h.service.GetCode(roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load code"})
		return
	}

	c.JSON(http.StatusOK, CodeResponse{IniCode: code})
}

type UpdateCodeRequest struct {
	RoomID string `json:"roomId" binding:"required"`
	Code   string `json:"code"`
}

// UpdateCodeHandler persists the current code for a room. Called on
// every local edit, independent of the relay's broadcast path.
func (h *RoomHandlers) UpdateCodeHandler(c *gin.Context) {
	var req UpdateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "roomId is required"})
		return
	}

	if err := h.service.SaveCode(req.RoomID, req.Code); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
