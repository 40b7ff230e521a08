package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIdHeader = "X-Request-ID"
	requestIdKey    = "requestId"
)

// RequestId keeps the incoming request id or creates one.
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIdHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(requestIdKey, id)
		c.Header(RequestIdHeader, id)
		c.Next()
	}
}

// GetRequestId returns the id of the current request.
func GetRequestId(c *gin.Context) string {
	return c.GetString(requestIdKey)
}
