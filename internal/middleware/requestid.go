package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	contextRequest  = "request_id"
)

// RequestIDMiddleware keeps an incoming X-Request-ID or assigns a new one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" || len(reqID) > 128 {
			reqID = uuid.NewString()
		}

		c.Set(contextRequest, reqID)
		c.Writer.Header().Set(requestIDHeader, reqID)

		c.Next()
	}
}

func RequestID(c *gin.Context) string {
	return c.GetString(contextRequest)
}
