// internal/repository/feed_repository.go
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"qo100-console/internal/database"
	"qo100-console/internal/model"
	"qo100-console/internal/utils"
)

// feedRepository implements FeedRepository interface
type feedRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(db *database.DB, logger *zap.Logger) FeedRepository {
	return &feedRepository{
		db:     db,
		logger: logger,
	}
}

// Append stores feed entries in one transaction. The poll loop batches
// every line drained from the link into a single call.
func (r *feedRepository) Append(ctx context.Context, entries ...*model.FeedEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO feed_entries (
			id, session_id, seq, direction, line, is_status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		_, err := stmt.ExecContext(ctx,
			entry.ID, entry.SessionID, entry.Seq, entry.Direction,
			entry.Text, entry.IsStatus, entry.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to insert feed entry", zap.Error(err), zap.Uint64("seq", entry.Seq))
			return fmt.Errorf("failed to insert feed entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit feed entries: %w", err)
	}

	return nil
}

// List retrieves feed entries with filtering and pagination
func (r *feedRepository) List(ctx context.Context, filter *FeedFilter) ([]*model.FeedEntry, int, error) {
	// Build WHERE clause
	whereConditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.SessionID != nil {
		whereConditions = append(whereConditions, fmt.Sprintf("session_id = $%d", argIndex))
		args = append(args, *filter.SessionID)
		argIndex++
	}

	if filter.Direction != nil {
		whereConditions = append(whereConditions, fmt.Sprintf("direction = $%d", argIndex))
		args = append(args, *filter.Direction)
		argIndex++
	}

	if filter.OnlyStatus != nil && *filter.OnlyStatus {
		whereConditions = append(whereConditions, "is_status = TRUE")
	}

	if filter.SinceSeq != nil {
		whereConditions = append(whereConditions, fmt.Sprintf("seq > $%d", argIndex))
		args = append(args, *filter.SinceSeq)
		argIndex++
	}

	whereClause := ""
	if len(whereConditions) > 0 {
		whereClause = "WHERE " + strings.Join(whereConditions, " AND ")
	}

	// Count total records
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM feed_entries %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count feed entries: %w", err)
	}

	// Build main query with pagination, oldest first so clients replay in order
	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 100
	}
	offset := (page - 1) * perPage

	query := fmt.Sprintf(`
		SELECT id, session_id, seq, direction, line, is_status, created_at
		FROM feed_entries %s
		ORDER BY seq ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)

	args = append(args, perPage, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list feed entries", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list feed entries: %w", err)
	}
	defer rows.Close()

	entries := []*model.FeedEntry{}
	for rows.Next() {
		entry, err := r.scanEntry(rows)
		if err != nil {
			r.logger.Error("Failed to scan feed entry row", zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate feed entry rows: %w", err)
	}

	return entries, total, nil
}

// ListBySession retrieves the newest entries for one session
func (r *feedRepository) ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]*model.FeedEntry, error) {
	if limit < 1 {
		limit = 100
	}

	query := `
		SELECT id, session_id, seq, direction, line, is_status, created_at
		FROM (
			SELECT id, session_id, seq, direction, line, is_status, created_at
			FROM feed_entries WHERE session_id = $1
			ORDER BY seq DESC LIMIT $2
		) tail
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list session feed: %w", err)
	}
	defer rows.Close()

	entries := []*model.FeedEntry{}
	for rows.Next() {
		entry, err := r.scanEntry(rows)
		if err != nil {
			r.logger.Error("Failed to scan feed entry row", zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feed entry rows: %w", err)
	}

	return entries, nil
}

// GetTrafficStats aggregates feed counters, optionally for one session
func (r *feedRepository) GetTrafficStats(ctx context.Context, sessionID *uuid.UUID) (*TrafficStats, error) {
	whereClause := ""
	args := []interface{}{}
	if sessionID != nil {
		whereClause = "WHERE session_id = $1"
		args = append(args, *sessionID)
	}

	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE direction = 'SENT'),
			COUNT(*) FILTER (WHERE direction = 'RECV'),
			COUNT(*) FILTER (WHERE direction = 'ERROR'),
			MIN(created_at),
			MAX(created_at)
		FROM feed_entries %s
	`, whereClause)

	stats := &TrafficStats{}
	var first, last sql.NullTime

	start := time.Now()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalEntries, &stats.SentCommands, &stats.ReceivedLines,
		&stats.ErrorLines, &first, &last,
	)
	utils.NewServiceLogger(r.logger, "feed-repository").
		LogDatabaseQuery(query, args, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to get traffic stats: %w", err)
	}

	if first.Valid {
		stats.FirstEntry = &first.Time
	}
	if last.Valid {
		stats.LastEntry = &last.Time
	}

	return stats, nil
}

// DeleteOlderThan removes old feed entries
func (r *feedRepository) DeleteOlderThan(ctx context.Context, olderThan time.Time) (int64, error) {
	query := `DELETE FROM feed_entries WHERE created_at < $1`

	result, err := r.db.ExecContext(ctx, query, olderThan)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old feed entries: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if deleted > 0 {
		r.logger.Info("Deleted old feed entries", zap.Int64("count", deleted))
	}

	return deleted, nil
}

// scanEntry reads one feed entry row
func (r *feedRepository) scanEntry(rows *sql.Rows) (*model.FeedEntry, error) {
	entry := &model.FeedEntry{}
	var sessionID uuid.NullUUID

	err := rows.Scan(
		&entry.ID, &sessionID, &entry.Seq, &entry.Direction,
		&entry.Text, &entry.IsStatus, &entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if sessionID.Valid {
		entry.SessionID = &sessionID.UUID
	}

	return entry, nil
}
