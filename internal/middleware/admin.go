package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/findmymess/internal/models"
)

const (
	AdminKeyHeader = "x-admin-key"
	ContextIsAdmin = "is_admin"
)

// KeyMatches compares a supplied admin key with the configured secret in
// constant time. An unset secret never matches.
func KeyMatches(secret, provided string) bool {
	if secret == "" || provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(provided)) == 1
}

// AdminAuth admits only requests carrying the configured admin key. With no
// key configured it fails closed.
func AdminAuth(secret string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			logger.Error("ADMIN_KEY is not set in environment variables",
				"path", c.Request.URL.Path,
			)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Internal server error: Admin configuration missing"))
			c.Abort()
			return
		}

		if !KeyMatches(secret, c.GetHeader(AdminKeyHeader)) {
			requestID, _ := c.Get("request_id")
			logger.Warn("Rejected admin request",
				"request_id", requestID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP(),
			)
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("Unauthorized: Invalid admin key"))
			c.Abort()
			return
		}

		c.Set(ContextIsAdmin, true)
		c.Next()
	}
}

// DetectAdmin marks requests that carry a valid admin key without rejecting
// the others.
func DetectAdmin(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextIsAdmin, KeyMatches(secret, c.GetHeader(AdminKeyHeader)))
		c.Next()
	}
}

func IsAdmin(c *gin.Context) bool {
	return c.GetBool(ContextIsAdmin)
}
