package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/flash-convert-go/api/handlers"
	"github.com/yourusername/flash-convert-go/api/middleware"
	"github.com/yourusername/flash-convert-go/internal/app"
)

// SetupRouter sets up the HTTP router
func SetupRouter(engine *app.Engine, hub *handlers.ProgressHub, log *zap.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(engine.Bridge)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Progress stream
	router.GET("/ws/progress", hub.HandleWebSocket)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		videoHandler := handlers.NewVideoHandler(engine.Resolver, log)
		v1.POST("/video-info", videoHandler.GetVideoInfo)

		downloadHandler := handlers.NewDownloadHandler(engine.Orchestrator, hub, log)
		v1.POST("/downloads", downloadHandler.AddDownload)

		convertHandler := handlers.NewConvertHandler(engine.Converter, hub, log)
		v1.POST("/conversions", convertHandler.AddConversion)

		directoryHandler := handlers.NewDirectoryHandler(engine.Directories)
		directories := v1.Group("/directories")
		{
			directories.GET("", directoryHandler.ListDirectories)
			directories.POST("", directoryHandler.CreateDirectory)
		}

		logHandler := handlers.NewLogHandler(engine.History)
		logs := v1.Group("/logs")
		{
			logs.GET("", logHandler.GetLogs)
			logs.DELETE("", logHandler.ClearLogs)
		}
	}

	return router
}
