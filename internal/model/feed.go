// internal/model/feed.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// FeedDirection tags where a console feed line came from
type FeedDirection string

const (
	// FeedDirectionSent marks a command echoed into the feed as "> cmd".
	FeedDirectionSent FeedDirection = "SENT"
	// FeedDirectionRecv marks a line received from the firmware.
	FeedDirectionRecv FeedDirection = "RECV"
	// FeedDirectionInfo marks console bookkeeping such as connect notes.
	FeedDirectionInfo FeedDirection = "INFO"
	// FeedDirectionError marks dispatch and transport failures.
	FeedDirectionError FeedDirection = "ERROR"
)

// FeedEntry is one line of the console feed. Seq increases monotonically
// across the process lifetime so clients can detect gaps after a
// reconnect.
type FeedEntry struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	SessionID *uuid.UUID    `json:"session_id,omitempty" db:"session_id"`
	Seq       uint64        `json:"seq" db:"seq"`
	Direction FeedDirection `json:"direction" db:"direction"`
	Text      string        `json:"text" db:"line"`
	IsStatus  bool          `json:"is_status" db:"is_status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
}
