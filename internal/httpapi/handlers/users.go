package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ConsentCookie = "consent"
	UserCookie    = "user_id"

	cookieMaxAge = 365 * 24 * 60 * 60
)

// secureCookie drops the Secure flag for localhost hosts so cookies
// work over plain HTTP during development.
func secureCookie(c *gin.Context) bool {
	host := c.Request.Host
	return !strings.HasPrefix(host, "127.0.0.1") && !strings.HasPrefix(host, "localhost")
}

// AcceptCookies sets the consent flag and, on first contact, mints an
// opaque user id and persists the user row. The consent cookie stays
// readable by the banner script; the user id is httponly.
func (h *Handler) AcceptCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ConsentCookie, "true", cookieMaxAge, "/", "", secureCookie(c), false)

	if v, err := c.Cookie(UserCookie); err != nil || v == "" {
		userID := uuid.NewString()
		if err := h.Repo.EnsureUser(c.Request.Context(), userID, ""); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
			return
		}
		c.SetCookie(UserCookie, userID, cookieMaxAge, "/", "", secureCookie(c), true)
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) DeclineCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ConsentCookie, "false", cookieMaxAge, "/", "", secureCookie(c), false)
	c.Redirect(http.StatusFound, "/")
}

// ClearCookies is a development helper: drop consent and user id and
// go back to the index.
func (h *Handler) ClearCookies(c *gin.Context) {
	c.SetCookie(ConsentCookie, "", -1, "/", "", secureCookie(c), false)
	c.SetCookie(UserCookie, "", -1, "/", "", secureCookie(c), true)
	c.Redirect(http.StatusFound, "/")
}

// CurrentUser describes the cookie user for the frontend, with a
// short display id so the full UUID is not rendered everywhere.
func (h *Handler) CurrentUser(c *gin.Context) {
	userID, err := c.Cookie(UserCookie)
	if err != nil || userID == "" {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	info := ""
	if u, err := h.Repo.GetUser(c.Request.Context(), userID); err == nil {
		info = u.Info
	}

	short := userID
	if i := strings.IndexByte(userID, '-'); i > 0 {
		short = userID[:i]
	}
	c.JSON(http.StatusOK, gin.H{"user": gin.H{"id": userID, "short": short, "info": info}})
}
