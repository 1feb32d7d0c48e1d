package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"coderoom/internal/runner"
	ws "coderoom/internal/websocket"
)

type Router struct {
	rh *RoomHandlers
	eh *ExecuteHandlers
	wh *WebSocketHandler
}

func NewRouter(db *gorm.DB, relay *ws.Relay, run *runner.Runner) *Router {
	return &Router{
		rh: NewRoomHandlers(db),
		eh: NewExecuteHandlers(run),
		wh: NewWebSocketHandler(relay),
	}
}

func (r *Router) RegisterRoutes(router *gin.Engine) {
	{
		unprotected := router.Group("/")
		unprotected.GET("/hc", HealthCheckHandler)
		unprotected.GET("/ws", r.wh.HandleWebSocket)
		unprotected.GET("/stats", r.wh.StatsHandler)
	}

	{
		api := router.Group("/api")
		api.POST("/rooms", r.rh.CreateRoomHandler)
		api.GET("/rooms", r.rh.ListRoomsHandler)
		api.GET("/rooms/get-code/:roomId", r.rh.GetCodeHandler)
		api.POST("/rooms/update-code", r.rh.UpdateCodeHandler)
		api.POST("/execute", r.eh.ExecuteHandler)
	}
}

func HealthCheckHandler(c *gin.Context) {
	c.String(200, "Running")
}
