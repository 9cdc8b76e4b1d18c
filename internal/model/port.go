// internal/model/port.go
package model

// PortInfo describes a discovered serial port. Ports recognized as the
// SX1280 transmitter sort first in listings.
type PortInfo struct {
	Device       string `json:"device"`
	Description  string `json:"description,omitempty"`
	USBVID       string `json:"usb_vid,omitempty"`
	USBPID       string `json:"usb_pid,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
	IsRadio      bool   `json:"is_radio"`
	Label        string `json:"label"`
}
