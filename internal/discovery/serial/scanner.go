// internal/discovery/serial/scanner.go
package serial

import (
	"context"
	"fmt"
	"strings"

	"go.bug.st/serial/enumerator"
	"go.uber.org/zap"

	"qo100-console/internal/model"
)

// radioProductTag marks the transmitter firmware's USB product string
const radioProductTag = "SX1280"

// Scanner enumerates serial ports and flags the ones that look like the
// transmitter board
type Scanner struct {
	logger   *zap.Logger
	radioVID string
	radioPID string
}

// NewScanner creates a serial port scanner. radioVID and radioPID are
// lowercase hex strings without 0x prefix, e.g. "cafe" / "4073".
func NewScanner(logger *zap.Logger, radioVID, radioPID string) *Scanner {
	return &Scanner{
		logger:   logger,
		radioVID: strings.ToLower(radioVID),
		radioPID: strings.ToLower(radioPID),
	}
}

// GetScannerType returns the scanner type identifier
func (s *Scanner) GetScannerType() string {
	return "serial"
}

// IsAvailable reports whether serial enumeration works on this platform
func (s *Scanner) IsAvailable() bool {
	return true
}

// Scan lists serial ports with USB metadata where available
func (s *Scanner) Scan(ctx context.Context) ([]model.PortInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate serial ports: %w", err)
	}

	ports := make([]model.PortInfo, 0, len(details))
	for _, d := range details {
		port := s.toPortInfo(d)
		ports = append(ports, port)

		if port.IsRadio {
			s.logger.Debug("Radio port detected",
				zap.String("device", port.Device),
				zap.String("vid", port.USBVID),
				zap.String("pid", port.USBPID),
			)
		}
	}

	return ports, nil
}

func (s *Scanner) toPortInfo(d *enumerator.PortDetails) model.PortInfo {
	description := d.Product
	if description == "" {
		description = "n/a"
	}

	port := model.PortInfo{
		Device:      d.Name,
		Description: description,
	}
	if d.IsUSB {
		port.USBVID = strings.ToLower(d.VID)
		port.USBPID = strings.ToLower(d.PID)
		port.SerialNumber = d.SerialNumber
	}

	port.IsRadio = s.isRadio(port)
	port.Label = FormatLabel(port)
	return port
}

// isRadio matches on the firmware's product string or its USB identity
func (s *Scanner) isRadio(port model.PortInfo) bool {
	if strings.Contains(strings.ToUpper(port.Description), radioProductTag) {
		return true
	}
	if s.radioVID != "" && s.radioPID != "" {
		return port.USBVID == s.radioVID && port.USBPID == s.radioPID
	}
	return false
}

// FormatLabel renders the list label shown in port pickers. Radio ports
// get a star prefix.
func FormatLabel(port model.PortInfo) string {
	label := fmt.Sprintf("%s (%s)", port.Device, port.Description)
	if port.IsRadio {
		return "★ " + label
	}
	return label
}
