// internal/discovery/usb/scanner.go
package usb

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/google/gousb"
	"go.uber.org/zap"

	"qo100-console/internal/model"
)

// Scanner probes the USB bus for the transmitter's vendor/product ID.
// It catches the case where the board is attached but no CDC serial
// port showed up, usually a driver or cable problem.
type Scanner struct {
	logger   *zap.Logger
	radioVID gousb.ID
	radioPID gousb.ID
}

// NewScanner creates a USB bus probe for one vendor/product pair.
// vid and pid are hex strings without 0x prefix, e.g. "cafe" / "4073".
func NewScanner(logger *zap.Logger, vid, pid string) (*Scanner, error) {
	radioVID, err := parseID(vid)
	if err != nil {
		return nil, fmt.Errorf("invalid usb vendor id %q: %w", vid, err)
	}
	radioPID, err := parseID(pid)
	if err != nil {
		return nil, fmt.Errorf("invalid usb product id %q: %w", pid, err)
	}

	return &Scanner{
		logger:   logger,
		radioVID: radioVID,
		radioPID: radioPID,
	}, nil
}

// GetScannerType returns the scanner type identifier
func (s *Scanner) GetScannerType() string {
	return "usb"
}

// IsAvailable checks if USB scanning is available on this platform
func (s *Scanner) IsAvailable() bool {
	switch runtime.GOOS {
	case "linux", "darwin", "windows":
		return true
	default:
		return false
	}
}

// Scan reports a placeholder entry when the radio is on the bus. The
// entry carries no device path; the manager drops it as soon as a
// serial scanner confirms a real port.
func (s *Scanner) Scan(ctx context.Context) ([]model.PortInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	usbCtx := gousb.NewContext()
	defer usbCtx.Close()

	attached := 0

	// The filter never opens a device, it only counts descriptors.
	_, err := usbCtx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		if desc.Vendor == s.radioVID && desc.Product == s.radioPID {
			attached++
		}
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("usb bus enumeration failed: %w", err)
	}

	if attached == 0 {
		return nil, nil
	}

	s.logger.Debug("Radio present on USB bus",
		zap.String("vid", s.radioVID.String()),
		zap.String("pid", s.radioPID.String()),
		zap.Int("count", attached),
	)

	port := model.PortInfo{
		Description: "SX1280 radio attached, no serial port",
		USBVID:      s.radioVID.String(),
		USBPID:      s.radioPID.String(),
		IsRadio:     true,
		Label:       fmt.Sprintf("★ usb %s:%s (no serial port)", s.radioVID, s.radioPID),
	}

	return []model.PortInfo{port}, nil
}

func parseID(raw string) (gousb.ID, error) {
	cleaned := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(raw)), "0x")
	v, err := strconv.ParseUint(cleaned, 16, 16)
	if err != nil {
		return 0, err
	}
	return gousb.ID(v), nil
}
