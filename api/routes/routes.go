package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/bridgetunes/draw-console-backend/internal/config"
	"github.com/bridgetunes/draw-console-backend/internal/handlers"
	"github.com/bridgetunes/draw-console-backend/internal/middleware"
)

// HandlerDependencies groups the handlers the router wires up
type HandlerDependencies struct {
	AuthHandler    *handlers.AuthHandler
	ConsoleHandler *handlers.ConsoleHandler
	AuditHandler   *handlers.AuditHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
		}
	}

	// Protected routes
	protected := router.Group("/api/v1/console")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		draws := protected.Group("/draws")
		{
			draws.GET("/state", deps.ConsoleHandler.GetState)
			draws.POST("/schedule", deps.ConsoleHandler.Schedule)
			draws.POST("/execute", deps.ConsoleHandler.Execute)
			draws.POST("/winners/refresh", deps.ConsoleHandler.RefreshWinners)
			draws.POST("/digits/toggle", deps.ConsoleHandler.ToggleDigit)
			draws.POST("/digits/select-all", deps.ConsoleHandler.SelectAllDigits)
			draws.POST("/digits/clear", deps.ConsoleHandler.ClearDigits)
			draws.POST("/digits/use-defaults", deps.ConsoleHandler.SetUseDefaults)
		}

		protected.PUT("/winners/:id/status", deps.ConsoleHandler.UpdateWinnerStatus)
		protected.GET("/default-digits/:day", deps.ConsoleHandler.GetDefaultDigits)

		audit := protected.Group("/audit")
		{
			audit.GET("", deps.AuditHandler.ListEvents)
			audit.GET("/date/:date", deps.AuditHandler.EventsForDate)
		}
	}

	return router
}
