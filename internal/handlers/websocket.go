package handlers

import (
	"github.com/fitzone/fitzone-backend/internal/middleware"
	"github.com/fitzone/fitzone-backend/internal/models"
	"github.com/fitzone/fitzone-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// WebSocketHandler streams booking events to the authenticated caller.
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin := middleware.CurrentRole(c) == models.RoleAdmin
		services.HandleWebSocket(hub, c.Writer, c.Request, middleware.CurrentUserID(c), isAdmin)
	}
}
