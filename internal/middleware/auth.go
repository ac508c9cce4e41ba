package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const tokenContextKey = "bearerToken"

// BearerToken extracts the bearer credential and stores it for the handlers.
// Verification itself happens in the services, once per operation.
func BearerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		c.Set(tokenContextKey, parts[1])
		c.Next()
	}
}

// Token returns the bearer token stored by BearerToken.
func Token(c *gin.Context) string {
	return c.GetString(tokenContextKey)
}
