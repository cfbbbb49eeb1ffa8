package router

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workspace-board-api/internal/client"
	"workspace-board-api/internal/config"
	"workspace-board-api/internal/handler"
	"workspace-board-api/internal/metrics"
	"workspace-board-api/internal/middleware"
	"workspace-board-api/internal/realtime"
	"workspace-board-api/internal/repository"
	"workspace-board-api/internal/service"
)

// Setup wires repositories, services, handlers and routes into the engine
func Setup(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.Metrics(m))

	// Repositories
	workspaceRepo := repository.NewWorkspaceRepository(db)
	bookRepo := repository.NewBookRepository(db)
	cacheRepo := repository.NewBookCacheRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	// External catalog
	catalogClient := client.NewCatalogClient(
		cfg.Catalog.BaseURL,
		cfg.Catalog.Timeout,
		cfg.Catalog.MaxRetries,
		logger,
		m,
	)

	// Realtime
	registry := realtime.NewRegistry()
	hub := realtime.NewHub(registry, logger, m)

	// Services
	bookService := service.NewBookService(
		catalogClient,
		bookRepo,
		cacheRepo,
		redisClient,
		cfg.Catalog.CacheTTL,
		cfg.Catalog.SearchCacheTTL,
		logger,
		m,
	)
	workspaceService := service.NewWorkspaceService(
		workspaceRepo,
		bookService,
		activityRepo,
		hub,
		cfg.Board.Columns,
		logger,
		m,
	)
	activityService := service.NewActivityService(activityRepo)
	noteService := service.NewNoteService(noteRepo, hub, logger)

	// Handlers
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService)
	bookHandler := handler.NewBookHandler(bookService)
	activityHandler := handler.NewActivityHandler(activityService)
	noteHandler := handler.NewNoteHandler(noteService)
	healthHandler := handler.NewHealthHandler(db, redisClient)
	wsHandler := handler.NewWSHandler(workspaceService, registry, cfg.JWT.Secret, logger)

	// Health and metrics (no auth)
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Workspace routes under the base path
	api := r.Group(cfg.Server.BasePath)
	{
		api.GET("/health", healthHandler.Health)
		api.GET("/ready", healthHandler.Ready)

		// Websocket gateway validates its own token query parameter
		api.GET("/ws", wsHandler.HandleWebSocket)

		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(cfg.JWT.Secret))
		{
			authenticated.POST("", workspaceHandler.CreateWorkspace)
			authenticated.GET("", workspaceHandler.ListWorkspaces)
			authenticated.GET("/:workspaceId", workspaceHandler.GetWorkspace)
			authenticated.DELETE("/:workspaceId", workspaceHandler.DeleteWorkspace)

			authenticated.POST("/:workspaceId/cards", workspaceHandler.AddCard)
			authenticated.PUT("/:workspaceId/cards/move", workspaceHandler.MoveCard)
			authenticated.DELETE("/:workspaceId/columns/:columnId/cards/:cardId", workspaceHandler.DeleteCard)

			authenticated.GET("/:workspaceId/activity", activityHandler.ListActivity)
		}
	}

	// Book routes
	books := r.Group("/api/books")
	books.Use(middleware.Auth(cfg.JWT.Secret))
	{
		books.GET("/search", bookHandler.SearchBooks)
		books.POST("", bookHandler.SaveBook)
		books.GET("", bookHandler.ListSavedBooks)
		books.GET("/cache/stats", bookHandler.CacheStats)
	}

	// Research note routes; reading a book's notes needs no auth
	notes := r.Group("/api/notes")
	{
		notes.GET("/book/:volumeId", noteHandler.ListNotesByBook)

		authed := notes.Group("")
		authed.Use(middleware.Auth(cfg.JWT.Secret))
		{
			authed.POST("", noteHandler.CreateNote)
			authed.PATCH("/:noteId", noteHandler.UpdateNote)
			authed.DELETE("/:noteId", noteHandler.DeleteNote)
		}
	}

	return r
}
