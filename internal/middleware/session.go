package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const FlashesKey = "flashes"

// LoadFlashes pops pending flash messages from the session into the context.
func LoadFlashes() gin.HandlerFunc {
	return func(c *gin.Context) {
		// JSON API 不使用 session
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		session := sessions.Default(c)
		if flashes := session.Flashes(); len(flashes) > 0 {
			messages := make([]string, 0, len(flashes))
			for _, f := range flashes {
				if s, ok := f.(string); ok {
					messages = append(messages, s)
				}
			}
			c.Set(FlashesKey, messages)
			_ = session.Save()
		}
		c.Next()
	}
}

// AddFlash queues a message for the next rendered page.
func AddFlash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	_ = session.Save()
}

// ResetRequired hides the reset route unless enabled.
func ResetRequired(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.Next()
	}
}
