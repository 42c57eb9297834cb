package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"job-board-backend/internal/domain"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, reusing the caller's when sent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" || len(reqID) > 64 {
			reqID = uuid.NewString()
		}
		c.Set(string(domain.KeyRequestID), reqID)
		c.Header(RequestIDHeader, reqID)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(string(domain.KeyRequestID))
}
