package httpapi

import (
	"net/http"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"chatkiosk/internal/common"
	"chatkiosk/internal/config"
	"chatkiosk/internal/httpapi/handlers"
	"chatkiosk/internal/httpapi/middleware"
)

func NewRouter(cfg config.Config, h *handlers.Handler) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(cors.Default())

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	if cfg.StaticDir != "" {
		r.Static("/static", cfg.StaticDir)
		r.StaticFile("/", filepath.Join(cfg.StaticDir, "index.html"))
	}

	r.GET("/ping", func(c *gin.Context) { common.OK(c, gin.H{"pong": true}) })

	// consent / identity
	r.GET("/accept_cookies", h.AcceptCookies)
	r.GET("/decline_cookies", h.DeclineCookies)
	r.GET("/clear_cookies", h.ClearCookies)
	r.GET("/current_user", h.CurrentUser)

	// chat surface
	r.POST("/bot", h.Bot)
	r.GET("/ai/status", h.AIStatus)
	r.POST("/tts", h.TTS)
	r.POST("/api/annotate", h.Annotate)

	// admin surface
	r.POST("/admin/login", h.AdminLogin)
	r.GET("/admin/logout", h.AdminLogout)
	admin := r.Group("/admin")
	admin.Use(middleware.AdminRequired(cfg.JWTSecret))
	admin.GET("/users", h.AdminUsers)
	admin.GET("/transcript", h.AdminTranscript)
	admin.GET("/export", h.AdminExport)
	admin.POST("/clear", h.AdminClear)

	return r
}
