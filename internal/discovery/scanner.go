// internal/discovery/scanner.go
package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"qo100-console/internal/model"
)

// PortScanner finds serial port candidates for the transmitter
type PortScanner interface {
	Scan(ctx context.Context) ([]model.PortInfo, error)
	GetScannerType() string
	IsAvailable() bool
}

// ScannerManager fans a scan out over all registered scanners and merges
// the results into one ranked port list
type ScannerManager struct {
	scanners map[string]PortScanner
	logger   *zap.Logger
}

// NewScannerManager creates a new scanner manager
func NewScannerManager(logger *zap.Logger) *ScannerManager {
	return &ScannerManager{
		scanners: make(map[string]PortScanner),
		logger:   logger,
	}
}

// RegisterScanner registers a port scanner
func (sm *ScannerManager) RegisterScanner(scanner PortScanner) {
	scannerType := scanner.GetScannerType()
	sm.scanners[scannerType] = scanner
	sm.logger.Info("Scanner registered", zap.String("type", scannerType))
}

// ScanAll runs every available scanner and merges the results
func (sm *ScannerManager) ScanAll(ctx context.Context) ([]model.PortInfo, error) {
	var allPorts []model.PortInfo

	for scannerType, scanner := range sm.scanners {
		if !scanner.IsAvailable() {
			sm.logger.Debug("Scanner not available, skipping", zap.String("type", scannerType))
			continue
		}

		ports, err := scanner.Scan(ctx)
		if err != nil {
			sm.logger.Error("Scanner failed", zap.String("type", scannerType), zap.Error(err))
			continue
		}

		allPorts = append(allPorts, ports...)
		sm.logger.Debug("Scanner completed",
			zap.String("type", scannerType),
			zap.Int("ports_found", len(ports)),
		)
	}

	return MergePorts(allPorts), nil
}

// ScanByType runs one specific scanner
func (sm *ScannerManager) ScanByType(ctx context.Context, scannerType string) ([]model.PortInfo, error) {
	scanner, exists := sm.scanners[scannerType]
	if !exists {
		return nil, fmt.Errorf("scanner type not found: %s", scannerType)
	}

	if !scanner.IsAvailable() {
		return nil, fmt.Errorf("scanner not available: %s", scannerType)
	}

	return scanner.Scan(ctx)
}

// GetAvailableScanners returns list of available scanner types
func (sm *ScannerManager) GetAvailableScanners() []string {
	var available []string
	for scannerType, scanner := range sm.scanners {
		if scanner.IsAvailable() {
			available = append(available, scannerType)
		}
	}
	return available
}

// MergePorts deduplicates and ranks scan results. Radio ports sort
// first, bus-probe entries without a device path are dropped once a
// matching serial port confirms the radio.
func MergePorts(ports []model.PortInfo) []model.PortInfo {
	radioSeen := false
	byDevice := make(map[string]model.PortInfo)
	var busOnly []model.PortInfo

	for _, port := range ports {
		if port.Device == "" {
			busOnly = append(busOnly, port)
			continue
		}
		if existing, ok := byDevice[port.Device]; ok {
			// Keep the richer entry for the same device path
			if !existing.IsRadio && port.IsRadio {
				byDevice[port.Device] = port
			}
			continue
		}
		byDevice[port.Device] = port
		if port.IsRadio {
			radioSeen = true
		}
	}

	merged := make([]model.PortInfo, 0, len(byDevice)+len(busOnly))
	for _, port := range byDevice {
		merged = append(merged, port)
	}
	if !radioSeen {
		merged = append(merged, busOnly...)
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].IsRadio != merged[j].IsRadio {
			return merged[i].IsRadio
		}
		return strings.Compare(merged[i].Device, merged[j].Device) < 0
	})

	return merged
}
