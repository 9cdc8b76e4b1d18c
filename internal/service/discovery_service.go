// internal/service/discovery_service.go
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"qo100-console/internal/config"
	"qo100-console/internal/discovery"
	serialscanner "qo100-console/internal/discovery/serial"
	usbscanner "qo100-console/internal/discovery/usb"
	"qo100-console/internal/model"
	"qo100-console/internal/utils"
)

// DiscoveryService keeps track of serial ports the transmitter could be
// on. It scans on demand and periodically, broadcasting a PORTS_UPDATE
// event whenever the list changes.
type DiscoveryService struct {
	scannerManager *discovery.ScannerManager
	publisher      EventPublisher
	config         *config.Config
	logger         *utils.ServiceLogger

	mu        sync.Mutex
	lastPorts []model.PortInfo

	scanStop chan struct{}
	scanDone chan struct{}
	stopOnce sync.Once
}

// NewDiscoveryService creates a new discovery service
func NewDiscoveryService(
	publisher EventPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) (*DiscoveryService, error) {
	serviceLogger := utils.NewServiceLogger(logger, "discovery-service")

	ds := &DiscoveryService{
		scannerManager: discovery.NewScannerManager(logger),
		publisher:      publisher,
		config:         cfg,
		logger:         serviceLogger,
		scanStop:       make(chan struct{}),
		scanDone:       make(chan struct{}),
	}

	if err := ds.initializeScanners(); err != nil {
		return nil, err
	}

	return ds, nil
}

// initializeScanners registers all available scanners
func (ds *DiscoveryService) initializeScanners() error {
	serialScanner := serialscanner.NewScanner(
		ds.logger.Logger,
		ds.config.Discovery.USBVID,
		ds.config.Discovery.USBPID,
	)
	if serialScanner.IsAvailable() {
		ds.scannerManager.RegisterScanner(serialScanner)
	}

	if ds.config.Discovery.USBProbe {
		usbScanner, err := usbscanner.NewScanner(
			ds.logger.Logger,
			ds.config.Discovery.USBVID,
			ds.config.Discovery.USBPID,
		)
		if err != nil {
			return err
		}
		if usbScanner.IsAvailable() {
			ds.scannerManager.RegisterScanner(usbScanner)
		}
	}

	ds.logger.Info("Discovery scanners initialized",
		zap.Strings("available_scanners", ds.scannerManager.GetAvailableScanners()),
	)
	return nil
}

// Start launches the periodic port scan loop
func (ds *DiscoveryService) Start() {
	go ds.scanLoop()
	ds.logger.Info("Discovery service started",
		zap.Duration("scan_interval", ds.config.Discovery.ScanInterval),
	)
}

// Stop halts the periodic scan loop
func (ds *DiscoveryService) Stop() {
	ds.stopOnce.Do(func() {
		close(ds.scanStop)
		<-ds.scanDone
		ds.logger.LogServiceStop("shutdown requested")
	})
}

// ListPorts scans all registered scanners and returns the ranked port
// list
func (ds *DiscoveryService) ListPorts(ctx context.Context) ([]model.PortInfo, error) {
	ports, err := ds.scannerManager.ScanAll(ctx)
	if err != nil {
		return nil, err
	}

	ds.mu.Lock()
	ds.lastPorts = ports
	ds.mu.Unlock()

	return ports, nil
}

// AvailableScanners returns the scanner types currently usable
func (ds *DiscoveryService) AvailableScanners() []string {
	return ds.scannerManager.GetAvailableScanners()
}

// scanLoop rescans on an interval and publishes when the list changes
func (ds *DiscoveryService) scanLoop() {
	defer close(ds.scanDone)

	ticker := time.NewTicker(ds.config.Discovery.ScanInterval)
	defer ticker.Stop()

	ds.rescan()

	for {
		select {
		case <-ds.scanStop:
			return
		case <-ticker.C:
			ds.rescan()
		}
	}
}

func (ds *DiscoveryService) rescan() {
	ctx, cancel := context.WithTimeout(context.Background(), ds.config.Discovery.ScanInterval)
	defer cancel()

	ports, err := ds.scannerManager.ScanAll(ctx)
	if err != nil {
		ds.logger.Error("Port scan failed", zap.Error(err))
		return
	}

	ds.mu.Lock()
	changed := !portListsEqual(ds.lastPorts, ports)
	ds.lastPorts = ports
	ds.mu.Unlock()

	if !changed {
		return
	}

	ds.logger.Info("Port list changed", zap.Int("ports", len(ports)))
	if ds.publisher != nil {
		ds.publisher.Publish(&model.ConsoleEvent{
			ID:        uuid.New(),
			EventType: model.EventPortsUpdate,
			Data:      &model.PortsEventData{Ports: ports},
			Timestamp: time.Now(),
			Source:    "discovery-service",
		})
	}
}

func portListsEqual(a, b []model.PortInfo) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
