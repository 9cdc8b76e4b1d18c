// internal/routes/routes.go
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"qo100-console/internal/config"
	"qo100-console/internal/database"
	"qo100-console/internal/handler"
	"qo100-console/internal/middleware"
	"qo100-console/internal/service"
	"qo100-console/internal/utils"
)

// Router holds all dependencies for routing
type Router struct {
	config           *config.Config
	logger           *zap.Logger
	db               *database.DB
	consoleService   *service.ConsoleService
	discoveryService *service.DiscoveryService
	eventBus         *handler.EventBus
}

// NewRouter creates a new router instance. db may be nil when the
// traffic log runs in memory.
func NewRouter(
	config *config.Config,
	logger *zap.Logger,
	db *database.DB,
	consoleService *service.ConsoleService,
	discoveryService *service.DiscoveryService,
	eventBus *handler.EventBus,
) *Router {
	return &Router{
		config:           config,
		logger:           logger,
		db:               db,
		consoleService:   consoleService,
		discoveryService: discoveryService,
		eventBus:         eventBus,
	}
}

// SetupRouter creates and configures the Gin router
func (r *Router) SetupRouter() *gin.Engine {
	// Set Gin mode
	if r.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Create Gin engine
	router := gin.New()

	// Add middleware
	r.addMiddleware(router)

	// Add routes
	r.addRoutes(router)

	return router
}

// addMiddleware adds middleware to the router
func (r *Router) addMiddleware(router *gin.Engine) {
	// Recovery middleware
	router.Use(middleware.RecoveryMiddleware(r.logger))

	// Request ID middleware
	router.Use(middleware.RequestIDMiddleware())

	// Logging middleware
	serviceLogger := utils.NewServiceLogger(r.logger, "http-server")
	router.Use(middleware.LoggingMiddleware(serviceLogger))

	// CORS middleware
	router.Use(middleware.CORSMiddleware(&r.config.Security))

	r.logger.Info("Middleware configured")
}

// addRoutes sets up all application routes
func (r *Router) addRoutes(router *gin.Engine) {
	// Create handlers
	healthHandler := handler.NewHealthHandler(r.db, r.consoleService, r.discoveryService, r.config, r.logger)
	consoleHandler := handler.NewConsoleHandler(r.consoleService, r.logger)
	tunerHandler := handler.NewTunerHandler(r.consoleService, r.logger)
	sessionHandler := handler.NewSessionHandler(r.consoleService, r.logger)
	discoveryHandler := handler.NewDiscoveryHandler(r.discoveryService, r.logger)
	wsHandler := handler.NewWebSocketHandler(r.consoleService, r.discoveryService, r.eventBus, r.config, r.logger)

	// Health check routes (no auth required)
	r.addHealthRoutes(router, healthHandler)

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	r.addConsoleRoutes(apiV1, consoleHandler)
	r.addTunerRoutes(apiV1, tunerHandler)
	r.addSessionRoutes(apiV1, sessionHandler)
	r.addDiscoveryRoutes(apiV1, discoveryHandler)

	// WebSocket routes
	r.addWebSocketRoutes(router, wsHandler)

	// Documentation routes
	r.addDocumentationRoutes(router)

	r.logger.Info("All routes configured successfully")
}

// addHealthRoutes sets up health check routes
func (r *Router) addHealthRoutes(router *gin.Engine, handler *handler.HealthHandler) {
	handler.RegisterRoutes(router.Group(""))
}

// addConsoleRoutes sets up console session and feed routes
func (r *Router) addConsoleRoutes(api *gin.RouterGroup, handler *handler.ConsoleHandler) {
	console := api.Group("/console")
	{
		console.GET("", handler.Snapshot)
		console.POST("/connect", handler.Connect)
		console.POST("/disconnect", handler.Disconnect)
		console.POST("/command", handler.Command)
		console.POST("/status", handler.RequestStatus)
		console.POST("/diag", handler.RunDiagnostics)
		console.POST("/help", handler.Help)
		console.POST("/sync", handler.Sync)
		console.GET("/feed", handler.Feed)
		console.GET("/stats", handler.Stats)
	}
}

// addTunerRoutes sets up DSP and RF parameter routes
func (r *Router) addTunerRoutes(api *gin.RouterGroup, handler *handler.TunerHandler) {
	tuner := api.Group("/tuner")
	{
		tuner.GET("/params", handler.ListParams)
		tuner.PUT("/frequency", handler.SetFrequency)
		tuner.PUT("/params/:name", handler.SetParam)
		tuner.PUT("/ppm", handler.SetPPM)
		tuner.PUT("/txpower", handler.SetTxPower)
		tuner.PUT("/jitter", handler.SetJitter)
		tuner.PUT("/sections/:section", handler.SetSection)
		tuner.POST("/tx", handler.SetTX)
		tuner.POST("/carrier", handler.Carrier)
	}
}

// addSessionRoutes sets up session history routes
func (r *Router) addSessionRoutes(api *gin.RouterGroup, handler *handler.SessionHandler) {
	sessions := api.Group("/sessions")
	{
		sessions.GET("", handler.ListSessions)
		sessions.GET("/latest", handler.GetLatestSession)
		sessions.GET("/:session_id", handler.GetSession)
		sessions.GET("/:session_id/feed", handler.GetSessionFeed)
	}
}

// addDiscoveryRoutes sets up serial port discovery routes
func (r *Router) addDiscoveryRoutes(api *gin.RouterGroup, handler *handler.DiscoveryHandler) {
	ports := api.Group("/ports")
	{
		ports.GET("", handler.ListPorts)
		ports.GET("/scanners", handler.GetScanners)
	}
}

// addWebSocketRoutes sets up WebSocket routes
func (r *Router) addWebSocketRoutes(router *gin.Engine, handler *handler.WebSocketHandler) {
	handler.RegisterRoutes(router.Group("/ws"))
}

// addDocumentationRoutes sets up documentation routes
func (r *Router) addDocumentationRoutes(router *gin.Engine) {
	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	// Swagger redirect for convenience
	router.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
}
