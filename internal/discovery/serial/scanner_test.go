// internal/discovery/serial/scanner_test.go
package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.bug.st/serial/enumerator"
	"go.uber.org/zap"

	"qo100-console/internal/model"
)

func TestToPortInfoMatchesRadioByID(t *testing.T) {
	scanner := NewScanner(zap.NewNop(), "CAFE", "4073")

	port := scanner.toPortInfo(&enumerator.PortDetails{
		Name:         "/dev/ttyACM0",
		IsUSB:        true,
		VID:          "CAFE",
		PID:          "4073",
		SerialNumber: "QO100-0042",
		Product:      "QO-100 TX",
	})

	assert.True(t, port.IsRadio)
	assert.Equal(t, "cafe", port.USBVID)
	assert.Equal(t, "4073", port.USBPID)
	assert.Equal(t, "QO100-0042", port.SerialNumber)
	assert.Equal(t, "★ /dev/ttyACM0 (QO-100 TX)", port.Label)
}

func TestToPortInfoMatchesRadioByProduct(t *testing.T) {
	scanner := NewScanner(zap.NewNop(), "cafe", "4073")

	port := scanner.toPortInfo(&enumerator.PortDetails{
		Name:    "/dev/ttyACM1",
		IsUSB:   true,
		VID:     "1209",
		PID:     "0001",
		Product: "sx1280 ssb exciter",
	})

	assert.True(t, port.IsRadio)
	assert.Equal(t, "★ /dev/ttyACM1 (sx1280 ssb exciter)", port.Label)
}

func TestToPortInfoPlainPort(t *testing.T) {
	scanner := NewScanner(zap.NewNop(), "cafe", "4073")

	port := scanner.toPortInfo(&enumerator.PortDetails{
		Name:  "/dev/ttyS0",
		IsUSB: false,
	})

	assert.False(t, port.IsRadio)
	assert.Empty(t, port.USBVID)
	assert.Equal(t, "n/a", port.Description)
	assert.Equal(t, "/dev/ttyS0 (n/a)", port.Label)
}

func TestFormatLabel(t *testing.T) {
	plain := model.PortInfo{Device: "/dev/ttyUSB0", Description: "FTDI adapter"}
	assert.Equal(t, "/dev/ttyUSB0 (FTDI adapter)", FormatLabel(plain))

	radio := model.PortInfo{Device: "/dev/ttyACM0", Description: "QO-100 TX", IsRadio: true}
	assert.Equal(t, "★ /dev/ttyACM0 (QO-100 TX)", FormatLabel(radio))
}
