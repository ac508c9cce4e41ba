package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"consult-chat/internal/telemetry"
)

// RequestID propagates the inbound X-Request-ID, generating one when absent,
// and makes it available on the request context for audit emission.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Request = c.Request.WithContext(telemetry.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}
