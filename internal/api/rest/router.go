package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/palemoky/dynasty-timeline/internal/api/middleware"
	"github.com/palemoky/dynasty-timeline/internal/api/rest/handler"
	"github.com/palemoky/dynasty-timeline/internal/config"
	"github.com/palemoky/dynasty-timeline/internal/logger"
	"github.com/palemoky/dynasty-timeline/internal/search"
	"github.com/palemoky/dynasty-timeline/internal/store"
)

// SetupRouter sets up the Gin router with all routes
func SetupRouter(cfg *config.Config, st *store.Store, backend handler.Pinger) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	router := gin.New()
	router.Use(logger.GinMiddleware())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	if cfg.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		router.Use(rateLimiter.Middleware())
	}

	paging := handler.Paging{
		DefaultPageSize: cfg.Search.DefaultPageSize,
		MaxPageSize:     cfg.Search.MaxPageSize,
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handler.HealthHandler(backend))
		v1.GET("/stats", handler.StatsHandler(st))

		// Dynasty routes
		dynastyHandler := handler.NewDynastyHandler(st, paging)
		v1.GET("/dynasties", dynastyHandler.ListDynasties)
		v1.POST("/dynasties", dynastyHandler.CreateDynasty)
		v1.GET("/dynasties/:id", dynastyHandler.GetDynasty)
		v1.PATCH("/dynasties/:id", dynastyHandler.UpdateDynasty)
		v1.DELETE("/dynasties/:id", dynastyHandler.DeleteDynasty)
		v1.GET("/dynasties/:id/kings", dynastyHandler.ListDynastyKings)

		// King routes
		kingHandler := handler.NewKingHandler(st, paging)
		v1.GET("/kings", kingHandler.ListKings)
		v1.POST("/kings", kingHandler.CreateKing)
		v1.GET("/kings/:id", kingHandler.GetKing)
		v1.PATCH("/kings/:id", kingHandler.UpdateKing)
		v1.DELETE("/kings/:id", kingHandler.DeleteKing)
		v1.GET("/kings/:id/events", kingHandler.ListKingEvents)
		v1.GET("/kings/:id/wars", kingHandler.ListKingWars)

		// Event routes
		eventHandler := handler.NewEventHandler(st, paging)
		v1.GET("/events", eventHandler.ListEvents)
		v1.POST("/events", eventHandler.CreateEvent)
		v1.GET("/events/:id", eventHandler.GetEvent)
		v1.PATCH("/events/:id", eventHandler.UpdateEvent)
		v1.DELETE("/events/:id", eventHandler.DeleteEvent)

		// War routes
		warHandler := handler.NewWarHandler(st, paging)
		v1.GET("/wars", warHandler.ListWars)
		v1.POST("/wars", warHandler.CreateWar)
		v1.GET("/wars/:id", warHandler.GetWar)
		v1.PATCH("/wars/:id", warHandler.UpdateWar)
		v1.DELETE("/wars/:id", warHandler.DeleteWar)

		// Settings and warnings
		settingsHandler := handler.NewSettingsHandler(st)
		v1.GET("/settings", settingsHandler.GetSettings)
		v1.PATCH("/settings", settingsHandler.UpdateSettings)
		v1.PUT("/settings", settingsHandler.UpdateSettings)
		v1.GET("/warnings", settingsHandler.ListWarnings)

		// Whole-dataset operations
		transferHandler := handler.NewTransferHandler(st)
		v1.GET("/export", transferHandler.Export)
		v1.POST("/import", transferHandler.Import)
		v1.POST("/reset", transferHandler.Reset)
		v1.POST("/clear", transferHandler.Clear)

		// Timeline layout and search
		viewHandler := handler.NewViewHandler(st, search.NewEngine(st), paging)
		v1.GET("/timeline", viewHandler.Timeline)
		v1.GET("/search", viewHandler.Search)
	}

	return router
}
