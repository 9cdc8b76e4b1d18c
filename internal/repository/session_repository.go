// internal/repository/session_repository.go
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
)

// sessionRepository implements SessionRepository interface
type sessionRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *database.DB, logger *zap.Logger) SessionRepository {
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new session
func (r *sessionRepository) Create(ctx context.Context, session *model.Session) error {
	query := `
		INSERT INTO sessions (
			id, port, baud_rate, variant, state, opened_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		session.ID, session.Port, session.BaudRate,
		session.Variant, session.State, session.OpenedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create session", zap.Error(err), zap.String("session_id", session.ID.String()))
		return fmt.Errorf("failed to create session: %w", err)
	}

	r.logger.Info("Session created", zap.String("session_id", session.ID.String()), zap.String("port", session.Port))
	return nil
}

// GetByID retrieves a session by its UUID
func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	query := `
		SELECT id, port, baud_rate, variant, state, opened_at, closed_at, close_reason
		FROM sessions WHERE id = $1
	`

	session, err := r.scanSession(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session not found with id: %s", id)
		}
		r.logger.Error("Failed to get session by ID", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// Close marks a session as disconnected
func (r *sessionRepository) Close(ctx context.Context, id uuid.UUID, closedAt time.Time, reason model.CloseReason) error {
	query := `
		UPDATE sessions SET state = $2, closed_at = $3, close_reason = $4
		WHERE id = $1 AND state = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		id, model.SessionStateDisconnected, closedAt, reason, model.SessionStateConnected,
	)
	if err != nil {
		r.logger.Error("Failed to close session", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("failed to close session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("open session not found with id: %s", id)
	}

	return nil
}

// List retrieves sessions with filtering and pagination
func (r *sessionRepository) List(ctx context.Context, filter *SessionFilter) ([]*model.Session, int, error) {
	// Build WHERE clause
	whereConditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.State != nil {
		whereConditions = append(whereConditions, fmt.Sprintf("state = $%d", argIndex))
		args = append(args, *filter.State)
		argIndex++
	}

	if filter.Port != nil {
		whereConditions = append(whereConditions, fmt.Sprintf("port = $%d", argIndex))
		args = append(args, *filter.Port)
		argIndex++
	}

	whereClause := ""
	if len(whereConditions) > 0 {
		whereClause = "WHERE " + strings.Join(whereConditions, " AND ")
	}

	// Count total records
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM sessions %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	// Build ORDER BY clause
	orderBy := "opened_at DESC"
	if filter.SortBy != "" {
		order := "ASC"
		if filter.SortOrder == "desc" {
			order = "DESC"
		}
		orderBy = fmt.Sprintf("%s %s", filter.SortBy, order)
	}

	// Build main query with pagination
	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 20
	}
	offset := (page - 1) * perPage

	query := fmt.Sprintf(`
		SELECT id, port, baud_rate, variant, state, opened_at, closed_at, close_reason
		FROM sessions %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, whereClause, orderBy, argIndex, argIndex+1)

	args = append(args, perPage, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list sessions", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*model.Session{}
	for rows.Next() {
		session, err := r.scanSession(rows)
		if err != nil {
			r.logger.Error("Failed to scan session row", zap.Error(err))
			continue
		}
		sessions = append(sessions, session)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate session rows: %w", err)
	}

	return sessions, total, nil
}

// Latest retrieves the most recently opened session
func (r *sessionRepository) Latest(ctx context.Context) (*model.Session, error) {
	query := `
		SELECT id, port, baud_rate, variant, state, opened_at, closed_at, close_reason
		FROM sessions ORDER BY opened_at DESC LIMIT 1
	`

	session, err := r.scanSession(r.db.QueryRowContext(ctx, query))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("no sessions recorded")
		}
		return nil, fmt.Errorf("failed to get latest session: %w", err)
	}

	return session, nil
}

// CloseAllOpen closes every session still marked connected. Used on
// startup so sessions orphaned by a crash do not stay open forever.
func (r *sessionRepository) CloseAllOpen(ctx context.Context, closedAt time.Time, reason model.CloseReason) (int64, error) {
	query := `
		UPDATE sessions SET state = $1, closed_at = $2, close_reason = $3
		WHERE state = $4
	`

	result, err := r.db.ExecContext(ctx, query,
		model.SessionStateDisconnected, closedAt, reason, model.SessionStateConnected,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to close open sessions: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected > 0 {
		r.logger.Warn("Closed sessions left open by previous run", zap.Int64("count", rowsAffected))
	}

	return rowsAffected, nil
}

// rowScanner covers both sql.Row and sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSession reads one session row, mapping nullable columns
func (r *sessionRepository) scanSession(row rowScanner) (*model.Session, error) {
	session := &model.Session{}
	var closedAt sql.NullTime
	var closeReason sql.NullString

	err := row.Scan(
		&session.ID, &session.Port, &session.BaudRate, &session.Variant,
		&session.State, &session.OpenedAt, &closedAt, &closeReason,
	)
	if err != nil {
		return nil, err
	}

	if closedAt.Valid {
		session.ClosedAt = &closedAt.Time
	}
	if closeReason.Valid {
		session.CloseReason = model.CloseReason(closeReason.String)
	}

	return session, nil
}
