package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/alutalk/channel/internal/biz/domain"
	"github.com/alutalk/channel/internal/biz/repo"

	_ "modernc.org/sqlite"
)

const defaultAuditLimit = 50

// auditRepo implements the moderation audit repository on SQLite
type auditRepo struct {
	db *sql.DB
}

// NewAuditRepo creates a moderation audit repository
func NewAuditRepo(dbPath string) (repo.AuditRepo, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS moderation_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at INTEGER NOT NULL,
			sender TEXT NOT NULL,
			action TEXT NOT NULL,
			masked_tokens INTEGER NOT NULL DEFAULT 0,
			attempts INTEGER NOT NULL DEFAULT 0,
			fallback INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create moderation_events table: %w", err)
	}

	_, _ = db.Exec(`CREATE INDEX IF NOT EXISTS idx_moderation_created ON moderation_events(created_at)`)

	return &auditRepo{db: db}, nil
}

// Record stores one moderation decision
func (r *auditRepo) Record(ctx context.Context, event domain.ModerationEvent) error {
	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query, args, err := sq.Insert("moderation_events").
		Columns("created_at", "sender", "action", "masked_tokens", "attempts", "fallback").
		Values(createdAt.UnixNano(), event.Sender, string(event.Action), event.MaskedTokens, event.Attempts, event.Fallback).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to record moderation event: %w", err)
	}
	return nil
}

// List returns the latest moderation decisions, newest first
func (r *auditRepo) List(ctx context.Context, limit int) ([]domain.ModerationEvent, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}

	query, args, err := sq.Select("id", "created_at", "sender", "action", "masked_tokens", "attempts", "fallback").
		From("moderation_events").
		OrderBy("id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list moderation events: %w", err)
	}
	defer rows.Close()

	var events []domain.ModerationEvent
	for rows.Next() {
		var (
			e         domain.ModerationEvent
			createdAt int64
			action    string
		)
		if err := rows.Scan(&e.ID, &createdAt, &e.Sender, &action, &e.MaskedTokens, &e.Attempts, &e.Fallback); err != nil {
			return nil, fmt.Errorf("failed to scan moderation event: %w", err)
		}
		e.CreatedAt = time.Unix(0, createdAt)
		e.Action = domain.ModerationAction(action)
		events = append(events, e)
	}
	return events, rows.Err()
}

// Close closes the database
func (r *auditRepo) Close() error {
	return r.db.Close()
}
