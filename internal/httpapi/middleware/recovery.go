package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"chatkiosk/internal/common"
)

// Recovery converts handler panics into the standard error envelope
// instead of a dropped connection.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("panic recovered", "err", r, "path", c.Request.URL.Path)
				common.Fail(c, http.StatusInternalServerError, 50000, "internal error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
