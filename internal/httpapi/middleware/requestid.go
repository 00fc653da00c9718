package middleware

import (
	"github.com/gin-gonic/gin"

	"chatkiosk/internal/common"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with a ULID so log lines can be
// correlated across handlers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			if v, err := common.NewULID(); err == nil {
				id = v
			}
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
