package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ws "coderoom/internal/websocket"
)

type WebSocketHandler struct {
	relay *ws.Relay
}

func NewWebSocketHandler(relay *ws.Relay) *WebSocketHandler {
	return &WebSocketHandler{relay: relay}
}

// HandleWebSocket upgrades the connection and hands it to the relay.
// Identity and room come from the handshake query parameters, both
// optional and neither validated.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	h.relay.ServeWS(c.Writer, c.Request)
}

type StatsResponse struct {
	Rooms      int            `json:"rooms"`
	Clients    int            `json:"clients"`
	Identities int            `json:"identities"`
	PerRoom    map[string]int `json:"per_room"`
}

func (h *WebSocketHandler) StatsHandler(c *gin.Context) {
	hub := h.relay.Hub()
	c.JSON(http.StatusOK, StatsResponse{
		Rooms:      hub.RoomCount(),
		Clients:    hub.ClientCount(),
		Identities: h.relay.Registry().Len(),
		PerRoom:    hub.ActiveRooms(),
	})
}
