package analyticsrepo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/yanqian/weather-advisor/internal/domain/analytics"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS analytics_events (
	id             TEXT PRIMARY KEY,
	type           TEXT NOT NULL,
	visitor_id     TEXT NOT NULL DEFAULT '',
	link_url       TEXT NOT NULL DEFAULT '',
	code           TEXT NOT NULL DEFAULT '',
	message        TEXT NOT NULL DEFAULT '',
	duration_ms    REAL NOT NULL DEFAULT 0,
	target_date    TEXT NOT NULL DEFAULT '',
	city           TEXT NOT NULL DEFAULT '',
	country        TEXT NOT NULL DEFAULT '',
	occurred_at_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analytics_events_occurred_at ON analytics_events (occurred_at_ms);
`

// sqliteEvent stores timestamps as unix milliseconds so range scans compare integers.
type sqliteEvent struct {
	ID           string  `db:"id"`
	Type         string  `db:"type"`
	VisitorID    string  `db:"visitor_id"`
	LinkURL      string  `db:"link_url"`
	Code         string  `db:"code"`
	Message      string  `db:"message"`
	DurationMs   float64 `db:"duration_ms"`
	TargetDate   string  `db:"target_date"`
	City         string  `db:"city"`
	Country      string  `db:"country"`
	OccurredAtMs int64   `db:"occurred_at_ms"`
}

// SQLiteRepository implements analytics.Repository on a local database file.
type SQLiteRepository struct {
	db *sqlx.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepository, error) {
	dsn, err := sqliteDSN(path)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate analytics_events: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// Close releases the database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Append inserts an event; redelivered IDs are ignored.
func (r *SQLiteRepository) Append(ctx context.Context, ev analytics.Event) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT OR IGNORE INTO analytics_events
			(id, type, visitor_id, link_url, code, message, duration_ms, target_date, city, country, occurred_at_ms)
		VALUES
			(:id, :type, :visitor_id, :link_url, :code, :message, :duration_ms, :target_date, :city, :country, :occurred_at_ms)
	`, toSQLiteEvent(ev))
	return err
}

// ListSince returns events at or after since, oldest first.
func (r *SQLiteRepository) ListSince(ctx context.Context, since time.Time) ([]analytics.Event, error) {
	var rows []sqliteEvent
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, type, visitor_id, link_url, code, message, duration_ms, target_date, city, country, occurred_at_ms
		FROM analytics_events
		WHERE occurred_at_ms >= ?
		ORDER BY occurred_at_ms
	`, since.UnixMilli())
	if err != nil {
		return nil, err
	}
	events := make([]analytics.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.toEvent())
	}
	return events, nil
}

func toSQLiteEvent(ev analytics.Event) sqliteEvent {
	return sqliteEvent{
		ID:           ev.ID,
		Type:         string(ev.Type),
		VisitorID:    ev.VisitorID,
		LinkURL:      ev.LinkURL,
		Code:         ev.Code,
		Message:      ev.Message,
		DurationMs:   ev.DurationMs,
		TargetDate:   ev.TargetDate,
		City:         ev.City,
		Country:      ev.Country,
		OccurredAtMs: ev.OccurredAt.UnixMilli(),
	}
}

func (e sqliteEvent) toEvent() analytics.Event {
	return analytics.Event{
		ID:         e.ID,
		Type:       analytics.EventType(e.Type),
		VisitorID:  e.VisitorID,
		LinkURL:    e.LinkURL,
		Code:       e.Code,
		Message:    e.Message,
		DurationMs: e.DurationMs,
		TargetDate: e.TargetDate,
		City:       e.City,
		Country:    e.Country,
		OccurredAt: time.UnixMilli(e.OccurredAtMs).UTC(),
	}
}

func sqliteDSN(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("sqlite path is empty")
	}
	params := "_busy_timeout=5000&_journal_mode=WAL"
	if strings.HasPrefix(path, "file:") {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + params, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	return fmt.Sprintf("file:%s?%s", path, params), nil
}

var _ analytics.Repository = (*SQLiteRepository)(nil)
