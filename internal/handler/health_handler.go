// internal/handler/health_handler.go
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"qo100-console/internal/config"
	"qo100-console/internal/database"
	"qo100-console/internal/service"
	"qo100-console/internal/utils"
)

// HealthHandler handles health check requests. db is nil when the
// traffic log runs on the in-memory store.
type HealthHandler struct {
	db               *database.DB
	consoleService   *service.ConsoleService
	discoveryService *service.DiscoveryService
	config           *config.Config
	logger           *utils.ServiceLogger
	startTime        time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(
	db *database.DB,
	consoleService *service.ConsoleService,
	discoveryService *service.DiscoveryService,
	config *config.Config,
	logger *zap.Logger,
) *HealthHandler {
	return &HealthHandler{
		db:               db,
		consoleService:   consoleService,
		discoveryService: discoveryService,
		config:           config,
		logger:           utils.NewServiceLogger(logger, "health-handler"),
		startTime:        time.Now(),
	}
}

// RegisterRoutes registers health check routes
func (h *HealthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.HealthCheck)
	router.GET("/health/db", h.DatabaseHealthCheck)
	router.GET("/ready", h.ReadinessCheck)
	router.GET("/live", h.LivenessCheck)
}

// HealthCheck performs general health check
// @Summary Health check
// @Description Get overall service health including traffic log storage, serial link and discovery backends
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} HealthResponse "Service is healthy"
// @Failure 503 {object} HealthResponse "Service is unhealthy"
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	health := &HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Service:   h.config.App.Name,
		Version:   h.config.App.Version,
		Uptime:    time.Since(h.startTime).String(),
		Checks:    make(map[string]CheckResult),
	}

	// Traffic log storage
	if h.db == nil {
		health.Checks["storage"] = CheckResult{
			Status:  "healthy",
			Message: "In-memory traffic log",
		}
	} else if err := h.db.HealthCheck(c.Request.Context()); err != nil {
		health.Status = "unhealthy"
		health.Checks["storage"] = CheckResult{
			Status:  "unhealthy",
			Message: err.Error(),
		}
	} else {
		stats := h.db.GetStats()
		health.Checks["storage"] = CheckResult{
			Status:  "healthy",
			Message: "Database connection OK",
			Data: map[string]interface{}{
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
				"idle":             stats.Idle,
			},
		}
	}

	// Serial link
	snapshot := h.consoleService.Snapshot(c.Request.Context())
	linkCheck := CheckResult{
		Status:  "healthy",
		Message: "No session open",
	}
	if snapshot.Connected {
		linkCheck.Message = "Session open"
		linkCheck.Data = map[string]interface{}{
			"port":       snapshot.Link.Port,
			"lines_read": snapshot.Link.LinesRead,
			"lines_sent": snapshot.Link.LinesSent,
		}
	}
	health.Checks["serial_link"] = linkCheck

	// Discovery backends
	scanners := h.discoveryService.AvailableScanners()
	scannerCheck := CheckResult{
		Status: "healthy",
		Data:   map[string]interface{}{"available": scanners},
	}
	if len(scanners) == 0 {
		scannerCheck.Status = "unhealthy"
		scannerCheck.Message = "No discovery backend available"
		health.Status = "unhealthy"
	}
	health.Checks["discovery"] = scannerCheck

	statusCode := http.StatusOK
	if health.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, health)
}

// DatabaseHealthCheck checks database connectivity
// @Summary Database health check
// @Description Check traffic log database connectivity and pool statistics
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse "Database is healthy"
// @Failure 503 {object} utils.APIResponse "Database is unhealthy"
// @Router /health/db [get]
func (h *HealthHandler) DatabaseHealthCheck(c *gin.Context) {
	if h.db == nil {
		utils.SuccessResponse(c, http.StatusOK, "Traffic log runs in memory", gin.H{
			"status": "disabled",
		})
		return
	}

	startTime := time.Now()

	if err := h.db.HealthCheck(c.Request.Context()); err != nil {
		h.logger.Error("Database health check failed", zap.Error(err))
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "Database unhealthy", err)
		return
	}

	stats := h.db.GetStats()
	response := gin.H{
		"status":           "healthy",
		"response_time_ms": time.Since(startTime).Milliseconds(),
		"stats": gin.H{
			"open_connections":    stats.OpenConnections,
			"in_use":              stats.InUse,
			"idle":                stats.Idle,
			"wait_count":          stats.WaitCount,
			"wait_duration":       stats.WaitDuration,
			"max_idle_closed":     stats.MaxIdleClosed,
			"max_lifetime_closed": stats.MaxLifetimeClosed,
		},
	}

	utils.SuccessResponse(c, http.StatusOK, "Database is healthy", response)
}

// ReadinessCheck for Kubernetes readiness probe
// @Summary Readiness check
// @Description Check if service is ready to accept traffic
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} object{status=string,timestamp=string} "Service is ready"
// @Failure 503 {object} object{status=string,reason=string} "Service is not ready"
// @Router /ready [get]
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	if h.db != nil {
		if err := h.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": "database not available",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now(),
	})
}

// LivenessCheck for Kubernetes liveness probe
// @Summary Liveness check
// @Description Check if service is alive
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} object{status=string,timestamp=string} "Service is alive"
// @Router /live [get]
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now(),
	})
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Service   string                 `json:"service"`
	Version   string                 `json:"version"`
	Uptime    string                 `json:"uptime"`
	Checks    map[string]CheckResult `json:"checks"`
}

// CheckResult represents individual check result
type CheckResult struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
}
