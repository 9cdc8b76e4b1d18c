// internal/repository/memory_repository.go
package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"qo100-console/internal/model"
)

// memorySessionRepository keeps sessions in memory. It backs the console
// when the traffic database is disabled or unreachable.
type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*model.Session
}

// NewMemorySessionRepository creates an in-memory session repository
func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[uuid.UUID]*model.Session),
	}
}

func (r *memorySessionRepository) Create(ctx context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; exists {
		return fmt.Errorf("session already exists with id: %s", session.ID)
	}

	r.sessions[session.ID] = cloneSession(session)
	return nil
}

func (r *memorySessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[id]
	if !exists {
		return nil, fmt.Errorf("session not found with id: %s", id)
	}

	return cloneSession(session), nil
}

func (r *memorySessionRepository) Close(ctx context.Context, id uuid.UUID, closedAt time.Time, reason model.CloseReason) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, exists := r.sessions[id]
	if !exists || session.State != model.SessionStateConnected {
		return fmt.Errorf("open session not found with id: %s", id)
	}

	closed := closedAt
	session.State = model.SessionStateDisconnected
	session.ClosedAt = &closed
	session.CloseReason = reason
	return nil
}

func (r *memorySessionRepository) List(ctx context.Context, filter *SessionFilter) ([]*model.Session, int, error) {
	r.mu.RLock()
	matched := []*model.Session{}
	for _, session := range r.sessions {
		if filter.State != nil && session.State != *filter.State {
			continue
		}
		if filter.Port != nil && session.Port != *filter.Port {
			continue
		}
		matched = append(matched, cloneSession(session))
	}
	r.mu.RUnlock()

	// Newest first, matching the database default ordering
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].OpenedAt.After(matched[j].OpenedAt)
	})
	if filter.SortOrder == "asc" {
		for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
			matched[i], matched[j] = matched[j], matched[i]
		}
	}

	total := len(matched)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 20
	}

	start := (page - 1) * perPage
	if start >= total {
		return []*model.Session{}, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return matched[start:end], total, nil
}

func (r *memorySessionRepository) Latest(ctx context.Context) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *model.Session
	for _, session := range r.sessions {
		if latest == nil || session.OpenedAt.After(latest.OpenedAt) {
			latest = session
		}
	}

	if latest == nil {
		return nil, fmt.Errorf("no sessions recorded")
	}

	return cloneSession(latest), nil
}

func (r *memorySessionRepository) CloseAllOpen(ctx context.Context, closedAt time.Time, reason model.CloseReason) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var closed int64
	for _, session := range r.sessions {
		if session.State != model.SessionStateConnected {
			continue
		}
		ts := closedAt
		session.State = model.SessionStateDisconnected
		session.ClosedAt = &ts
		session.CloseReason = reason
		closed++
	}

	return closed, nil
}

// memoryFeedRepository keeps a bounded feed history in memory. Oldest
// entries are dropped once maxEntries is reached.
type memoryFeedRepository struct {
	mu         sync.RWMutex
	entries    []*model.FeedEntry
	maxEntries int
}

// NewMemoryFeedRepository creates an in-memory feed repository retaining
// at most maxEntries lines
func NewMemoryFeedRepository(maxEntries int) FeedRepository {
	if maxEntries < 1 {
		maxEntries = 2000
	}
	return &memoryFeedRepository{
		entries:    make([]*model.FeedEntry, 0, 64),
		maxEntries: maxEntries,
	}
}

func (r *memoryFeedRepository) Append(ctx context.Context, entries ...*model.FeedEntry) error {
	if len(entries) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range entries {
		r.entries = append(r.entries, cloneEntry(entry))
	}

	if excess := len(r.entries) - r.maxEntries; excess > 0 {
		r.entries = append(r.entries[:0:0], r.entries[excess:]...)
	}

	return nil
}

func (r *memoryFeedRepository) List(ctx context.Context, filter *FeedFilter) ([]*model.FeedEntry, int, error) {
	r.mu.RLock()
	matched := []*model.FeedEntry{}
	for _, entry := range r.entries {
		if !matchEntry(entry, filter) {
			continue
		}
		matched = append(matched, cloneEntry(entry))
	}
	r.mu.RUnlock()

	total := len(matched)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 100
	}

	start := (page - 1) * perPage
	if start >= total {
		return []*model.FeedEntry{}, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return matched[start:end], total, nil
}

func (r *memoryFeedRepository) ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]*model.FeedEntry, error) {
	if limit < 1 {
		limit = 100
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []*model.FeedEntry{}
	for _, entry := range r.entries {
		if entry.SessionID != nil && *entry.SessionID == sessionID {
			matched = append(matched, cloneEntry(entry))
		}
	}

	if len(matched) > limit {
		matched = matched[len(matched)-limit:]
	}

	return matched, nil
}

func (r *memoryFeedRepository) GetTrafficStats(ctx context.Context, sessionID *uuid.UUID) (*TrafficStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &TrafficStats{}
	for _, entry := range r.entries {
		if sessionID != nil && (entry.SessionID == nil || *entry.SessionID != *sessionID) {
			continue
		}

		stats.TotalEntries++
		switch entry.Direction {
		case model.FeedDirectionSent:
			stats.SentCommands++
		case model.FeedDirectionRecv:
			stats.ReceivedLines++
		case model.FeedDirectionError:
			stats.ErrorLines++
		}

		created := entry.CreatedAt
		if stats.FirstEntry == nil || created.Before(*stats.FirstEntry) {
			stats.FirstEntry = &created
		}
		if stats.LastEntry == nil || created.After(*stats.LastEntry) {
			stats.LastEntry = &created
		}
	}

	return stats, nil
}

func (r *memoryFeedRepository) DeleteOlderThan(ctx context.Context, olderThan time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.entries[:0]
	var deleted int64
	for _, entry := range r.entries {
		if entry.CreatedAt.Before(olderThan) {
			deleted++
			continue
		}
		kept = append(kept, entry)
	}
	r.entries = kept

	return deleted, nil
}

// matchEntry applies a feed filter to one entry
func matchEntry(entry *model.FeedEntry, filter *FeedFilter) bool {
	if filter.SessionID != nil {
		if entry.SessionID == nil || *entry.SessionID != *filter.SessionID {
			return false
		}
	}
	if filter.Direction != nil && entry.Direction != *filter.Direction {
		return false
	}
	if filter.OnlyStatus != nil && *filter.OnlyStatus && !entry.IsStatus {
		return false
	}
	if filter.SinceSeq != nil && entry.Seq <= *filter.SinceSeq {
		return false
	}
	return true
}

func cloneSession(session *model.Session) *model.Session {
	clone := *session
	if session.ClosedAt != nil {
		ts := *session.ClosedAt
		clone.ClosedAt = &ts
	}
	return &clone
}

func cloneEntry(entry *model.FeedEntry) *model.FeedEntry {
	clone := *entry
	if entry.SessionID != nil {
		id := *entry.SessionID
		clone.SessionID = &id
	}
	return &clone
}
