package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "requestID"

// RequestID assigns a correlation ID to each request and echoes it back in
// the X-Request-ID response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// GetRequestID returns the request's correlation ID, or "" when none was assigned.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
