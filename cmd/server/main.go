// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "qo100-console/docs"
	"qo100-console/internal/config"
	"qo100-console/internal/database"
	"qo100-console/internal/handler"
	"qo100-console/internal/model"
	"qo100-console/internal/repository"
	"qo100-console/internal/routes"
	"qo100-console/internal/service"
	"qo100-console/internal/transport"
	"qo100-console/internal/utils"
)

// Application represents the main application
type Application struct {
	config   *config.Config
	logger   *zap.Logger
	server   *http.Server
	database *database.DB // nil when the traffic log runs in memory

	// Services
	consoleService   *service.ConsoleService
	discoveryService *service.DiscoveryService

	// Event fan-out to WebSocket clients
	eventBus *handler.EventBus

	// Repositories
	sessionRepo repository.SessionRepository
	feedRepo    repository.FeedRepository
}

// @title QO-100 Console API
// @version 1.0.0
// @description Operator console service for an SX1280-based QO-100 SSB transmitter. Tunes DSP parameters over a USB CDC serial link and streams the console feed to clients.

// @contact.name QO-100 Console Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8090
// @BasePath /api/v1
func main() {
	// Initialize application
	app, err := NewApplication()
	if err != nil {
		fmt.Printf("Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	// Start the application
	if err := app.Start(); err != nil {
		app.logger.Fatal("Failed to start application", zap.Error(err))
	}
}

// NewApplication creates a new application instance
func NewApplication() (*Application, error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger, err := utils.NewLogger(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Create service logger
	serviceLogger := utils.NewServiceLogger(logger, "qo100-console")
	serviceLogger.LogServiceStart(cfg.App.Version, cfg)

	app := &Application{
		config: cfg,
		logger: logger,
	}

	// Initialize components
	if err := app.initializeStorage(); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if err := app.recoverSessions(); err != nil {
		return nil, fmt.Errorf("failed to recover sessions: %w", err)
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := app.initializeServer(); err != nil {
		return nil, fmt.Errorf("failed to initialize server: %w", err)
	}

	return app, nil
}

// initializeStorage sets up the traffic log repositories. Postgres when
// configured and reachable, otherwise the in-memory fallback so the
// console stays usable on a bench machine without a database.
func (app *Application) initializeStorage() error {
	if !app.config.Database.Enabled {
		app.useMemoryStorage("database disabled")
		return nil
	}

	db, err := database.NewConnection(app.config, app.logger)
	if err != nil {
		app.logger.Warn("Database unreachable, falling back to in-memory traffic log", zap.Error(err))
		app.useMemoryStorage("database unreachable")
		return nil
	}

	// Run migrations
	migrator := database.NewMigrator(db, app.logger, &app.config.Database)
	if err := migrator.Up(); err != nil {
		db.Close()
		app.logger.Warn("Database migration failed, falling back to in-memory traffic log", zap.Error(err))
		app.useMemoryStorage("migration failed")
		return nil
	}

	app.database = db
	app.sessionRepo = repository.NewSessionRepository(db, app.logger)
	app.feedRepo = repository.NewFeedRepository(db, app.logger)

	app.logger.Info("Database initialized successfully")
	return nil
}

// useMemoryStorage wires the in-memory repositories
func (app *Application) useMemoryStorage(reason string) {
	app.sessionRepo = repository.NewMemorySessionRepository()
	app.feedRepo = repository.NewMemoryFeedRepository(app.config.Console.FeedHistory)

	app.logger.Info("Traffic log running in memory",
		zap.String("reason", reason),
		zap.Int("feed_history", app.config.Console.FeedHistory),
	)
}

// recoverSessions closes sessions a previous process left open, e.g.
// after a crash or power loss
func (app *Application) recoverSessions() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	closed, err := app.sessionRepo.CloseAllOpen(ctx, time.Now(), model.CloseReasonShutdown)
	if err != nil {
		return fmt.Errorf("failed to close stale sessions: %w", err)
	}
	if closed > 0 {
		app.logger.Warn("Closed sessions left open by a previous run", zap.Int64("count", closed))
	}

	return nil
}

// initializeServices creates the event bus, the serial link and the
// service instances
func (app *Application) initializeServices() error {
	app.eventBus = handler.NewEventBus(app.logger)

	// Create serial link
	link := transport.NewSerialLink(transport.Config{
		BaudRate:    app.config.Serial.BaudRate,
		ReadTimeout: app.config.Serial.ReadTimeout,
		ChunkSize:   app.config.Serial.ChunkSize,
		IdleSleep:   app.config.Serial.IdleSleep,
	}, app.logger)

	// Create console service
	consoleService, err := service.NewConsoleService(
		link,
		app.sessionRepo,
		app.feedRepo,
		app.eventBus,
		app.config,
		app.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create console service: %w", err)
	}
	app.consoleService = consoleService

	// Create discovery service
	discoveryService, err := service.NewDiscoveryService(
		app.eventBus,
		app.config,
		app.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create discovery service: %w", err)
	}
	app.discoveryService = discoveryService

	app.logger.Info("Services initialized successfully")
	return nil
}

// initializeServer sets up HTTP server and routes
func (app *Application) initializeServer() error {
	// Create router
	routerManager := routes.NewRouter(
		app.config,
		app.logger,
		app.database,
		app.consoleService,
		app.discoveryService,
		app.eventBus,
	)

	// Setup router with all routes
	router := routerManager.SetupRouter()

	// Create HTTP server
	app.server = &http.Server{
		Addr:         app.config.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  app.config.Server.ReadTimeout,
		WriteTimeout: app.config.Server.WriteTimeout,
		IdleTimeout:  app.config.Server.IdleTimeout,
	}

	app.logger.Info("HTTP server initialized",
		zap.String("address", app.config.GetServerAddr()),
		zap.Bool("tls_enabled", app.config.Server.TLS.Enabled),
	)

	return nil
}

// startBackgroundServices starts background services
func (app *Application) startBackgroundServices() {
	// Start feed retention cleanup
	go app.startFeedRetention()

	app.logger.Info("Background services started")
}

// startFeedRetention prunes old feed entries and sessions once an hour
func (app *Application) startFeedRetention() {
	defer utils.LogPanic(app.logger)

	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	app.logger.Info("Feed retention started")

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)

		// Cleanup old feed entries (30 days)
		oldDate := time.Now().AddDate(0, 0, -30)
		deleted, err := app.feedRepo.DeleteOlderThan(ctx, oldDate)
		if err != nil {
			app.logger.Error("Failed to cleanup old feed entries", zap.Error(err))
		} else if deleted > 0 {
			app.logger.Info("Cleaned up old feed entries", zap.Int64("deleted", deleted))
		}

		cancel()
	}
}

// waitForShutdown waits for shutdown signal and performs graceful shutdown
func (app *Application) waitForShutdown() {
	// Create channel to receive OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Wait for signal
	sig := <-quit
	app.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	// Perform graceful shutdown
	app.shutdown()
}

// shutdown performs graceful shutdown
func (app *Application) shutdown() {
	serviceLogger := utils.NewServiceLogger(app.logger, "qo100-console")
	serviceLogger.LogServiceStop("shutdown signal received")

	// Shutdown HTTP server
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		app.logger.Info("HTTP server stopped")
	}

	// Stop services; the console service closes any open session first
	app.consoleService.Stop()
	app.discoveryService.Stop()
	app.eventBus.Stop()

	// Close database connection
	if app.database != nil {
		if err := app.database.Close(); err != nil {
			app.logger.Error("Database close error", zap.Error(err))
		} else {
			app.logger.Info("Database connection closed")
		}
	}

	// Flush logger
	if err := utils.CloseLogger(app.logger); err != nil {
		fmt.Printf("Logger close error: %v\n", err)
	}

	app.logger.Info("Application shutdown completed")
}

func (app *Application) Start() error {
	// Start event fan-out before anything can publish
	go app.eventBus.Start()

	// Start the inbox poll loop and the port scan loop
	app.consoleService.Start()
	app.discoveryService.Start()

	// Start server in goroutine
	go func() {
		app.logger.Info("Starting HTTP server",
			zap.String("address", app.server.Addr),
		)

		var err error
		if app.config.Server.TLS.Enabled {
			err = app.server.ListenAndServeTLS(
				app.config.Server.TLS.CertFile,
				app.config.Server.TLS.KeyFile,
			)
		} else {
			err = app.server.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			app.logger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Start background services
	app.startBackgroundServices()

	// Wait for interrupt signal
	app.waitForShutdown()

	return nil
}
