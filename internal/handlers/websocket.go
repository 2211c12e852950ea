package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/travelnest/backend/internal/services"
)

// WebSocketHandler upgrades an authenticated request to a websocket
// connection and hands it to the hub.
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		role := c.GetString("role")
		services.ServeWS(hub, c.Writer, c.Request, userID, role)
	}
}
