package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type ClientCounter interface {
	ConnectedClients() int
}

func Health(db Pinger, clients ClientCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status, code := "ok", http.StatusOK
		database := "up"
		if err := db.PingContext(ctx); err != nil {
			status, code, database = "degraded", http.StatusServiceUnavailable, "down"
		}

		c.JSON(code, gin.H{
			"status":           status,
			"database":         database,
			"websocketClients": clients.ConnectedClients(),
			"time":             time.Now().UTC(),
		})
	}
}
