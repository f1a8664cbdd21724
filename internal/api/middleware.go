package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/youruser/tarotapp/internal/session"
)

const (
	SessionHeader = "X-Session-ID"
	sessionKey    = "tarot_session_id"
)

// sessionMiddleware resolves the caller's session from the X-Session-ID
// header, falling back to the shared default deck.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(SessionHeader))
		if id == "" {
			id = session.DefaultID
		}
		if !session.ValidID(id) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "invalid session id: use 1-64 letters, digits, '-' or '_'",
			})
			return
		}
		c.Set(sessionKey, id)
		c.Header(SessionHeader, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	if id := c.GetString(sessionKey); id != "" {
		return id
	}
	return session.DefaultID
}

// corsMiddleware allows the configured origins to call /api. Preflight
// requests are answered directly.
func corsMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(o, "/")] = true
	}
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Next()
			return
		}
		origin := c.GetHeader("Origin")
		if origin != "" && (allowed[origin] || allowed["*"]) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, "+SessionHeader)
			h.Set("Access-Control-Expose-Headers", SessionHeader)
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
