package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UserRequired is a Gin middleware that reads the acting user from X-Sharer-User-Id.
// A missing or malformed header is a client error.
func UserRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := ParseUserID(c.GetHeader(UserHeader))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}

		c.Set(userIDKey, id)

		c.Next()
	}
}

// ServiceTokenRequired rejects requests that did not pass through the gateway.
func ServiceTokenRequired(tm *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.GetHeader(TokenHeader)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing " + TokenHeader + " header",
			})
			return
		}

		if err := tm.Verify(tokenStr, c.GetHeader(UserHeader)); err != nil {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("service token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired service token",
			})
			return
		}

		c.Next()
	}
}
