// internal/discovery/scanner_test.go
package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"qo100-console/internal/model"
)

type stubScanner struct {
	scannerType string
	available   bool
	ports       []model.PortInfo
	err         error
}

func (s *stubScanner) Scan(ctx context.Context) ([]model.PortInfo, error) {
	return s.ports, s.err
}

func (s *stubScanner) GetScannerType() string { return s.scannerType }
func (s *stubScanner) IsAvailable() bool      { return s.available }

func TestScanAllMergesAndSkips(t *testing.T) {
	manager := NewScannerManager(zap.NewNop())
	manager.RegisterScanner(&stubScanner{
		scannerType: "serial",
		available:   true,
		ports: []model.PortInfo{
			{Device: "/dev/ttyUSB0", Description: "FTDI adapter"},
			{Device: "/dev/ttyACM0", Description: "SX1280 TX", IsRadio: true},
		},
	})
	manager.RegisterScanner(&stubScanner{
		scannerType: "usb",
		available:   true,
		ports: []model.PortInfo{
			{Description: "SX1280 radio attached, no serial port", IsRadio: true},
		},
	})
	manager.RegisterScanner(&stubScanner{
		scannerType: "offline",
		available:   false,
		ports:       []model.PortInfo{{Device: "/dev/never"}},
	})

	ports, err := manager.ScanAll(context.Background())
	require.NoError(t, err)
	require.Len(t, ports, 2)
	assert.Equal(t, "/dev/ttyACM0", ports[0].Device)
	assert.True(t, ports[0].IsRadio)
	assert.Equal(t, "/dev/ttyUSB0", ports[1].Device)
}

func TestScanAllToleratesScannerFailure(t *testing.T) {
	manager := NewScannerManager(zap.NewNop())
	manager.RegisterScanner(&stubScanner{
		scannerType: "serial",
		available:   true,
		err:         errors.New("enumeration failed"),
	})
	manager.RegisterScanner(&stubScanner{
		scannerType: "usb",
		available:   true,
		ports:       []model.PortInfo{{Device: "/dev/ttyACM1"}},
	})

	ports, err := manager.ScanAll(context.Background())
	require.NoError(t, err)
	require.Len(t, ports, 1)
	assert.Equal(t, "/dev/ttyACM1", ports[0].Device)
}

func TestScanByType(t *testing.T) {
	manager := NewScannerManager(zap.NewNop())
	manager.RegisterScanner(&stubScanner{
		scannerType: "serial",
		available:   true,
		ports:       []model.PortInfo{{Device: "/dev/ttyACM0"}},
	})

	ports, err := manager.ScanByType(context.Background(), "serial")
	require.NoError(t, err)
	assert.Len(t, ports, 1)

	_, err = manager.ScanByType(context.Background(), "tcp")
	assert.Error(t, err)
}

func TestGetAvailableScanners(t *testing.T) {
	manager := NewScannerManager(zap.NewNop())
	manager.RegisterScanner(&stubScanner{scannerType: "serial", available: true})
	manager.RegisterScanner(&stubScanner{scannerType: "usb", available: false})

	available := manager.GetAvailableScanners()
	assert.Equal(t, []string{"serial"}, available)
}

func TestMergePorts(t *testing.T) {
	t.Run("radio ports sort first", func(t *testing.T) {
		merged := MergePorts([]model.PortInfo{
			{Device: "/dev/ttyS0"},
			{Device: "/dev/ttyACM0", IsRadio: true},
			{Device: "/dev/ttyUSB0"},
		})
		require.Len(t, merged, 3)
		assert.Equal(t, "/dev/ttyACM0", merged[0].Device)
		assert.Equal(t, "/dev/ttyS0", merged[1].Device)
		assert.Equal(t, "/dev/ttyUSB0", merged[2].Device)
	})

	t.Run("duplicate device keeps radio entry", func(t *testing.T) {
		merged := MergePorts([]model.PortInfo{
			{Device: "/dev/ttyACM0"},
			{Device: "/dev/ttyACM0", IsRadio: true},
		})
		require.Len(t, merged, 1)
		assert.True(t, merged[0].IsRadio)
	})

	t.Run("bus probe dropped when serial port confirms radio", func(t *testing.T) {
		merged := MergePorts([]model.PortInfo{
			{Device: "/dev/ttyACM0", IsRadio: true},
			{Description: "SX1280 radio attached, no serial port", IsRadio: true},
		})
		require.Len(t, merged, 1)
		assert.Equal(t, "/dev/ttyACM0", merged[0].Device)
	})

	t.Run("bus probe kept when no serial port found", func(t *testing.T) {
		merged := MergePorts([]model.PortInfo{
			{Device: "/dev/ttyUSB0"},
			{Description: "SX1280 radio attached, no serial port", IsRadio: true},
		})
		require.Len(t, merged, 2)
		assert.True(t, merged[0].IsRadio)
		assert.Empty(t, merged[0].Device)
	})
}
