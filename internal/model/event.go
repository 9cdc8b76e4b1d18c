// internal/model/event.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of event
type EventType string

const (
	EventSessionConnected    EventType = "SESSION_CONNECTED"
	EventSessionDisconnected EventType = "SESSION_DISCONNECTED"
	EventFeedAppend          EventType = "FEED_APPEND"
	EventSettingsUpdate      EventType = "SETTINGS_UPDATE"
	EventPortsUpdate         EventType = "PORTS_UPDATE"
)

// ConsoleEvent represents an event in the system
type ConsoleEvent struct {
	ID        uuid.UUID   `json:"id"`
	EventType EventType   `json:"event_type"`
	SessionID *uuid.UUID  `json:"session_id,omitempty"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
	Source    string      `json:"source"`
}

// EventData structures for different event types

// SessionEventData describes a session state change
type SessionEventData struct {
	Session Session `json:"session"`
	Reason  string  `json:"reason,omitempty"`
}

// FeedEventData carries a batch of appended feed entries in order
type FeedEventData struct {
	Entries []FeedEntry `json:"entries"`
}

// PortsEventData carries a refreshed port listing
type PortsEventData struct {
	Ports []PortInfo `json:"ports"`
}
