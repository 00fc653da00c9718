package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chatkiosk/internal/auth"
	"chatkiosk/internal/chat"
	"chatkiosk/internal/common"
	"chatkiosk/internal/httpapi/middleware"
)

const (
	adminSessionTTL = 12 * time.Hour

	transcriptLimit = 500
	exportLimit     = 10000
)

func (h *Handler) AdminLogin(c *gin.Context) {
	password := c.PostForm("password")
	if password == "" {
		var body struct {
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			password = body.Password
		}
	}

	if !auth.CheckPassword(h.Cfg.AdminPasswordHash, h.Cfg.AdminPassword, password) {
		common.Fail(c, http.StatusUnauthorized, 40101, "invalid password")
		return
	}

	jti, err := common.NewULID()
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}
	token, err := auth.SignAdminToken(h.Cfg.JWTSecret, adminSessionTTL, jti)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AdminCookie, token, int(adminSessionTTL.Seconds()), "/", "", secureCookie(c), true)
	common.OK(c, gin.H{"token": token})
}

func (h *Handler) AdminLogout(c *gin.Context) {
	c.SetCookie(middleware.AdminCookie, "", -1, "/", "", secureCookie(c), true)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) AdminUsers(c *gin.Context) {
	users, err := h.Repo.ListUsers(c.Request.Context())
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50002, "storage unavailable")
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{"id": u.ID, "info": u.Info})
	}
	common.OK(c, gin.H{"users": out})
}

// adminUserID resolves the target user from the query or form, or
// falls back to the caller's own cookie.
func adminUserID(c *gin.Context) string {
	if v := c.Query("user_id"); v != "" {
		return v
	}
	if v := c.PostForm("user_id"); v != "" {
		return v
	}
	if v, err := c.Cookie(UserCookie); err == nil {
		return v
	}
	return ""
}

func transcriptLabel(kind string) string {
	switch kind {
	case chat.KindChatUser:
		return "User"
	case chat.KindChatLLM:
		return "Assistant"
	case chat.KindAnnotation:
		return "Annotation"
	default:
		return kind
	}
}

// AdminTranscript returns a user's timeline oldest-first with display
// labels, annotations included.
func (h *Handler) AdminTranscript(c *gin.Context) {
	userID := adminUserID(c)
	if userID == "" {
		common.Fail(c, http.StatusBadRequest, 10001, "no user_id provided or cookie set")
		return
	}

	events, err := h.Repo.Recent(c.Request.Context(), userID, transcriptLimit)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50002, "storage unavailable")
		return
	}

	turns := make([]gin.H, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		ev := events[i]
		turns = append(turns, gin.H{
			"role":      transcriptLabel(ev.Kind),
			"kind":      ev.Kind,
			"content":   ev.Content,
			"timestamp": ev.CreatedAt,
		})
	}
	common.OK(c, gin.H{"user_id": userID, "transcript": turns})
}

// AdminExport streams a user's events as CSV, oldest-first.
func (h *Handler) AdminExport(c *gin.Context) {
	userID := adminUserID(c)
	if userID == "" {
		common.Fail(c, http.StatusBadRequest, 10001, "no user_id provided or cookie set")
		return
	}

	events, err := h.Repo.Recent(c.Request.Context(), userID, exportLimit)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50002, "storage unavailable")
		return
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"event_type", "content", "timestamp"})
	for i := len(events) - 1; i >= 0; i-- {
		ev := events[i]
		_ = w.Write([]string{ev.Kind, ev.Content, ev.CreatedAt.Format(time.RFC3339)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		common.Fail(c, http.StatusInternalServerError, 50003, "export failed")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=events_%s.csv", userID))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// AdminClear bulk-deletes a user's events. Clearing an already-empty
// timeline succeeds.
func (h *Handler) AdminClear(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		userID = c.PostForm("user_id")
	}
	if userID == "" {
		var body struct {
			UserID string `json:"user_id"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			userID = body.UserID
		}
	}
	if userID == "" {
		if v, err := c.Cookie(UserCookie); err == nil {
			userID = v
		}
	}
	if userID == "" {
		common.Fail(c, http.StatusBadRequest, 10001, "no user_id provided")
		return
	}

	if err := h.Repo.Clear(c.Request.Context(), userID); err != nil {
		common.Fail(c, http.StatusInternalServerError, 50002, "storage unavailable")
		return
	}
	common.OK(c, gin.H{"cleared": userID})
}
