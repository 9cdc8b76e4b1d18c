// internal/handler/discovery_handler.go
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"qo100-console/internal/service"
	"qo100-console/internal/utils"
)

// DiscoveryHandler handles serial port discovery requests
type DiscoveryHandler struct {
	discoveryService *service.DiscoveryService
	logger           *utils.ServiceLogger
}

// NewDiscoveryHandler creates a new discovery handler
func NewDiscoveryHandler(discoveryService *service.DiscoveryService, logger *zap.Logger) *DiscoveryHandler {
	return &DiscoveryHandler{
		discoveryService: discoveryService,
		logger:           utils.NewServiceLogger(logger, "discovery-handler"),
	}
}

// ListPorts scans for serial port candidates
// @Summary List serial ports
// @Description Scan for serial ports. Ports recognized as the transmitter sort first and carry a star label.
// @Tags Discovery
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse{data=object{ports_found=int,ports=[]model.PortInfo}} "Port scan completed"
// @Failure 500 {object} utils.APIResponse "Scan failed"
// @Router /ports [get]
func (h *DiscoveryHandler) ListPorts(c *gin.Context) {
	ports, err := h.discoveryService.ListPorts(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to scan ports", zap.Error(err))
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to scan ports", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Port scan completed", gin.H{
		"ports_found": len(ports),
		"ports":       ports,
	})
}

// GetScanners returns the usable scanner backends
// @Summary List scanner backends
// @Description Get the discovery backends available on this host
// @Tags Discovery
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse{data=object{scanners=[]string}} "Scanners retrieved"
// @Router /ports/scanners [get]
func (h *DiscoveryHandler) GetScanners(c *gin.Context) {
	scanners := h.discoveryService.AvailableScanners()
	utils.SuccessResponse(c, http.StatusOK, "Scanners retrieved", gin.H{"scanners": scanners})
}
