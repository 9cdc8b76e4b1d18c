// internal/model/session.go
package model

import (
	"time"

	"github.com/google/uuid"

	"qo100-console/internal/firmware"
)

// SessionState represents the lifecycle state of a serial session
type SessionState string

const (
	SessionStateConnected    SessionState = "CONNECTED"
	SessionStateDisconnected SessionState = "DISCONNECTED"
)

// CloseReason records why a session ended
type CloseReason string

const (
	CloseReasonRequested CloseReason = "REQUESTED"
	CloseReasonReadError CloseReason = "READ_ERROR"
	CloseReasonShutdown  CloseReason = "SHUTDOWN"
)

// Session represents one serial connection to the transmitter, from port
// open to close. A new session starts with every successful connect.
type Session struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	Port        string           `json:"port" db:"port"`
	BaudRate    int              `json:"baud_rate" db:"baud_rate"`
	Variant     firmware.Variant `json:"variant" db:"variant"`
	State       SessionState     `json:"state" db:"state"`
	OpenedAt    time.Time        `json:"opened_at" db:"opened_at"`
	ClosedAt    *time.Time       `json:"closed_at,omitempty" db:"closed_at"`
	CloseReason CloseReason      `json:"close_reason,omitempty" db:"close_reason"`
}

// IsConnected checks whether the session is still open
func (s *Session) IsConnected() bool {
	return s.State == SessionStateConnected
}
