package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"chatkiosk/internal/auth"
	"chatkiosk/internal/common"
)

// AdminCookie carries the JWT minted at admin login.
const AdminCookie = "admin_token"

// AdminRequired gates the admin surface. The token is read from the
// session cookie or a bearer header.
func AdminRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(AdminCookie)
		if token == "" {
			h := c.GetHeader("Authorization")
			if strings.HasPrefix(h, "Bearer ") {
				token = strings.TrimPrefix(h, "Bearer ")
			}
		}
		if token == "" || auth.VerifyAdminToken(secret, token) != nil {
			common.Fail(c, http.StatusUnauthorized, 40100, "admin login required")
			c.Abort()
			return
		}
		c.Next()
	}
}
