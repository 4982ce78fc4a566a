package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/findmymess/internal/models"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func Health(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store != nil {
			if err := store.Ping(c.Request.Context()); err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusServiceUnavailable, models.ErrorWithDetails("Store unavailable", "ping failed"))
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"service": "findmymess-api",
		})
	}
}
