package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/santhosh0728/edutask-exam-gateway/internal/config"
	"github.com/santhosh0728/edutask-exam-gateway/internal/handler"
	"github.com/santhosh0728/edutask-exam-gateway/internal/middleware"
	"github.com/santhosh0728/edutask-exam-gateway/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Session *handler.SessionHandler
	Stream  *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── Portal Session API (JWT) ──────────────────────────────────────
	api := router.Group("/api/v1/portal")
	api.Use(middleware.RequirePortalJWT(cfg.JWTSecret))
	{
		api.POST("/exams/:exam_id/session", handlers.Session.CreateSession)

		sessions := api.Group("/sessions/:session_id")
		{
			sessions.GET("", handlers.Session.GetSession)
			sessions.DELETE("", handlers.Session.TeardownSession)
			sessions.POST("/start", handlers.Session.StartSession)
			sessions.POST("/answers", handlers.Session.SelectAnswer)
			sessions.POST("/navigation", handlers.Session.Navigate)
			sessions.POST("/submit-request", handlers.Session.RequestSubmit)
			sessions.POST("/submit-confirm", handlers.Session.ConfirmSubmit)
			sessions.POST("/submit-cancel", handlers.Session.CancelSubmit)
		}
	}

	// ─── WebSocket Group (WS Auth via query token) ─────────────────────
	wsGroup := router.Group("/ws/v1")
	wsGroup.Use(middleware.RequirePortalWSAuth(cfg.JWTSecret))
	{
		wsGroup.GET("/sessions/:session_id/stream", handlers.Stream.SessionStream)
	}

	return router
}
