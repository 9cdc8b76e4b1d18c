package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qo100-console/internal/firmware"
	"qo100-console/internal/model"
)

func newTestSession(port string, openedAt time.Time) *model.Session {
	return &model.Session{
		ID:       uuid.New(),
		Port:     port,
		BaudRate: 115200,
		Variant:  firmware.VariantRevB,
		State:    model.SessionStateConnected,
		OpenedAt: openedAt,
	}
}

func newTestEntry(seq uint64, direction model.FeedDirection, text string, sessionID *uuid.UUID, createdAt time.Time) *model.FeedEntry {
	return &model.FeedEntry{
		ID:        uuid.New(),
		SessionID: sessionID,
		Seq:       seq,
		Direction: direction,
		Text:      text,
		CreatedAt: createdAt,
	}
}

func TestMemorySessionLifecycle(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	session := newTestSession("/dev/ttyACM0", time.Now())
	require.NoError(t, repo.Create(ctx, session))

	got, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, "/dev/ttyACM0", got.Port)
	assert.True(t, got.IsConnected())

	// Returned sessions are copies, mutating them must not leak back
	got.Port = "changed"
	again, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyACM0", again.Port)

	closedAt := time.Now()
	require.NoError(t, repo.Close(ctx, session.ID, closedAt, model.CloseReasonRequested))

	closed, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionStateDisconnected, closed.State)
	assert.Equal(t, model.CloseReasonRequested, closed.CloseReason)
	require.NotNil(t, closed.ClosedAt)

	// Closing twice fails, the session is no longer open
	err = repo.Close(ctx, session.ID, time.Now(), model.CloseReasonRequested)
	assert.Error(t, err)
}

func TestMemorySessionCreateDuplicate(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	session := newTestSession("/dev/ttyACM0", time.Now())
	require.NoError(t, repo.Create(ctx, session))
	assert.Error(t, repo.Create(ctx, session))
}

func TestMemorySessionListAndLatest(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	base := time.Now()
	oldest := newTestSession("/dev/ttyACM0", base.Add(-2*time.Hour))
	middle := newTestSession("/dev/ttyACM1", base.Add(-time.Hour))
	newest := newTestSession("/dev/ttyACM0", base)

	require.NoError(t, repo.Create(ctx, oldest))
	require.NoError(t, repo.Create(ctx, middle))
	require.NoError(t, repo.Create(ctx, newest))
	require.NoError(t, repo.Close(ctx, oldest.ID, base.Add(-90*time.Minute), model.CloseReasonRequested))

	all, total, err := repo.List(ctx, &SessionFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, all, 3)
	assert.Equal(t, newest.ID, all[0].ID)
	assert.Equal(t, oldest.ID, all[2].ID)

	state := model.SessionStateConnected
	open, total, err := repo.List(ctx, &SessionFilter{State: &state})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, open, 2)

	port := "/dev/ttyACM1"
	byPort, total, err := repo.List(ctx, &SessionFilter{Port: &port})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, byPort, 1)
	assert.Equal(t, middle.ID, byPort[0].ID)

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, newest.ID, latest.ID)

	paged, total, err := repo.List(ctx, &SessionFilter{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, paged, 1)
}

func TestMemorySessionLatestEmpty(t *testing.T) {
	repo := NewMemorySessionRepository()

	_, err := repo.Latest(context.Background())
	assert.Error(t, err)
}

func TestMemorySessionCloseAllOpen(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	first := newTestSession("/dev/ttyACM0", time.Now().Add(-time.Hour))
	second := newTestSession("/dev/ttyACM1", time.Now())
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Close(ctx, first.ID, time.Now(), model.CloseReasonRequested))

	closed, err := repo.CloseAllOpen(ctx, time.Now(), model.CloseReasonShutdown)
	require.NoError(t, err)
	assert.Equal(t, int64(1), closed)

	got, err := repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CloseReasonShutdown, got.CloseReason)

	// First session keeps its original close reason
	got, err = repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CloseReasonRequested, got.CloseReason)
}

func TestMemoryFeedAppendAndFilter(t *testing.T) {
	repo := NewMemoryFeedRepository(100)
	ctx := context.Background()

	sessionID := uuid.New()
	now := time.Now()

	require.NoError(t, repo.Append(ctx,
		newTestEntry(1, model.FeedDirectionSent, "> get", &sessionID, now),
		newTestEntry(2, model.FeedDirectionRecv, "OK freq=2400100000 Hz", &sessionID, now.Add(time.Millisecond)),
		newTestEntry(3, model.FeedDirectionError, "[SEND ERROR] write failed", &sessionID, now.Add(2*time.Millisecond)),
	))

	all, total, err := repo.List(ctx, &FeedFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, all, 3)
	assert.Equal(t, uint64(1), all[0].Seq)
	assert.Equal(t, uint64(3), all[2].Seq)

	recv := model.FeedDirectionRecv
	received, total, err := repo.List(ctx, &FeedFilter{Direction: &recv})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, received, 1)
	assert.Equal(t, "OK freq=2400100000 Hz", received[0].Text)

	since := uint64(1)
	tail, total, err := repo.List(ctx, &FeedFilter{SinceSeq: &since})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, tail, 2)
	assert.Equal(t, uint64(2), tail[0].Seq)
}

func TestMemoryFeedStatusFilter(t *testing.T) {
	repo := NewMemoryFeedRepository(100)
	ctx := context.Background()

	status := newTestEntry(1, model.FeedDirectionRecv, "CFG: freq=2400100000", nil, time.Now())
	status.IsStatus = true
	require.NoError(t, repo.Append(ctx,
		status,
		newTestEntry(2, model.FeedDirectionRecv, "OK", nil, time.Now()),
	))

	only := true
	entries, total, err := repo.List(ctx, &FeedFilter{OnlyStatus: &only})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsStatus)
}

func TestMemoryFeedCapDropsOldest(t *testing.T) {
	repo := NewMemoryFeedRepository(5)
	ctx := context.Background()

	for seq := uint64(1); seq <= 8; seq++ {
		require.NoError(t, repo.Append(ctx,
			newTestEntry(seq, model.FeedDirectionRecv, "line", nil, time.Now()),
		))
	}

	entries, total, err := repo.List(ctx, &FeedFilter{})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, entries, 5)
	assert.Equal(t, uint64(4), entries[0].Seq)
	assert.Equal(t, uint64(8), entries[4].Seq)
}

func TestMemoryFeedListBySession(t *testing.T) {
	repo := NewMemoryFeedRepository(100)
	ctx := context.Background()

	mine := uuid.New()
	other := uuid.New()
	now := time.Now()

	for seq := uint64(1); seq <= 6; seq++ {
		owner := &mine
		if seq%2 == 0 {
			owner = &other
		}
		require.NoError(t, repo.Append(ctx,
			newTestEntry(seq, model.FeedDirectionRecv, "line", owner, now),
		))
	}

	entries, err := repo.ListBySession(ctx, mine, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, uint64(3), entries[0].Seq)
	assert.Equal(t, uint64(5), entries[1].Seq)
}

func TestMemoryFeedTrafficStats(t *testing.T) {
	repo := NewMemoryFeedRepository(100)
	ctx := context.Background()

	sessionID := uuid.New()
	otherID := uuid.New()
	base := time.Now()

	require.NoError(t, repo.Append(ctx,
		newTestEntry(1, model.FeedDirectionSent, "> freq 2400100000", &sessionID, base),
		newTestEntry(2, model.FeedDirectionRecv, "OK freq=2400100000 Hz", &sessionID, base.Add(time.Second)),
		newTestEntry(3, model.FeedDirectionRecv, "OK", &sessionID, base.Add(2*time.Second)),
		newTestEntry(4, model.FeedDirectionError, "[SERIAL ERROR] read failed", &otherID, base.Add(3*time.Second)),
	))

	all, err := repo.GetTrafficStats(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, all.TotalEntries)
	assert.Equal(t, 1, all.SentCommands)
	assert.Equal(t, 2, all.ReceivedLines)
	assert.Equal(t, 1, all.ErrorLines)
	require.NotNil(t, all.FirstEntry)
	require.NotNil(t, all.LastEntry)
	assert.True(t, all.LastEntry.After(*all.FirstEntry))

	scoped, err := repo.GetTrafficStats(ctx, &sessionID)
	require.NoError(t, err)
	assert.Equal(t, 3, scoped.TotalEntries)
	assert.Equal(t, 0, scoped.ErrorLines)
}

func TestMemoryFeedDeleteOlderThan(t *testing.T) {
	repo := NewMemoryFeedRepository(100)
	ctx := context.Background()

	base := time.Now()
	require.NoError(t, repo.Append(ctx,
		newTestEntry(1, model.FeedDirectionRecv, "old", nil, base.Add(-time.Hour)),
		newTestEntry(2, model.FeedDirectionRecv, "new", nil, base),
	))

	deleted, err := repo.DeleteOlderThan(ctx, base.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	entries, total, err := repo.List(ctx, &FeedFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, entries, 1)
	assert.Equal(t, "new", entries[0].Text)
}
