// internal/repository/interfaces.go
package repository

import (
	"context"
	"time"

	"qo100-console/internal/model"

	"github.com/google/uuid"
)

// SessionRepository defines session data access operations
type SessionRepository interface {
	// CRUD operations
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error)
	Close(ctx context.Context, id uuid.UUID, closedAt time.Time, reason model.CloseReason) error

	// Listing and filtering
	List(ctx context.Context, filter *SessionFilter) ([]*model.Session, int, error)
	Latest(ctx context.Context) (*model.Session, error)

	// Startup recovery, closes sessions left open by a crash
	CloseAllOpen(ctx context.Context, closedAt time.Time, reason model.CloseReason) (int64, error)
}

// FeedRepository defines traffic feed data access operations
type FeedRepository interface {
	// Append stores feed entries in order
	Append(ctx context.Context, entries ...*model.FeedEntry) error

	// Listing and filtering
	List(ctx context.Context, filter *FeedFilter) ([]*model.FeedEntry, int, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]*model.FeedEntry, error)

	// Analytics
	GetTrafficStats(ctx context.Context, sessionID *uuid.UUID) (*TrafficStats, error)

	// Cleanup
	DeleteOlderThan(ctx context.Context, olderThan time.Time) (int64, error)
}

// Filter structures

// SessionFilter represents session listing filters
type SessionFilter struct {
	State     *model.SessionState `json:"state,omitempty"`
	Port      *string             `json:"port,omitempty"`
	Page      int                 `json:"page"`
	PerPage   int                 `json:"per_page"`
	SortBy    string              `json:"sort_by"`
	SortOrder string              `json:"sort_order"`
}

// FeedFilter represents feed listing filters
type FeedFilter struct {
	SessionID  *uuid.UUID           `json:"session_id,omitempty"`
	Direction  *model.FeedDirection `json:"direction,omitempty"`
	OnlyStatus *bool                `json:"only_status,omitempty"`
	SinceSeq   *uint64              `json:"since_seq,omitempty"`
	Page       int                  `json:"page"`
	PerPage    int                  `json:"per_page"`
}

// Statistics structures

// TrafficStats represents aggregated feed statistics
type TrafficStats struct {
	TotalEntries  int        `json:"total_entries"`
	SentCommands  int        `json:"sent_commands"`
	ReceivedLines int        `json:"received_lines"`
	ErrorLines    int        `json:"error_lines"`
	FirstEntry    *time.Time `json:"first_entry,omitempty"`
	LastEntry     *time.Time `json:"last_entry,omitempty"`
}
