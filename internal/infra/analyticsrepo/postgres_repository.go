package analyticsrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/weather-advisor/internal/domain/analytics"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS analytics_events (
	id          TEXT PRIMARY KEY,
	type        TEXT NOT NULL,
	visitor_id  TEXT NOT NULL DEFAULT '',
	link_url    TEXT NOT NULL DEFAULT '',
	code        TEXT NOT NULL DEFAULT '',
	message     TEXT NOT NULL DEFAULT '',
	duration_ms DOUBLE PRECISION NOT NULL DEFAULT 0,
	target_date TEXT NOT NULL DEFAULT '',
	city        TEXT NOT NULL DEFAULT '',
	country     TEXT NOT NULL DEFAULT '',
	occurred_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analytics_events_occurred_at ON analytics_events (occurred_at);
`

// PostgresRepository implements analytics.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Migrate creates the events table when missing.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("migrate analytics_events: %w", err)
	}
	return nil
}

// Append inserts an event; redelivered IDs are ignored.
func (r *PostgresRepository) Append(ctx context.Context, ev analytics.Event) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO analytics_events
			(id, type, visitor_id, link_url, code, message, duration_ms, target_date, city, country, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`, ev.ID, string(ev.Type), ev.VisitorID, ev.LinkURL, ev.Code, ev.Message, ev.DurationMs,
		ev.TargetDate, ev.City, ev.Country, ev.OccurredAt.UTC())
	return err
}

// ListSince returns events at or after since, oldest first.
func (r *PostgresRepository) ListSince(ctx context.Context, since time.Time) ([]analytics.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, type, visitor_id, link_url, code, message, duration_ms, target_date, city, country, occurred_at
		FROM analytics_events
		WHERE occurred_at >= $1
		ORDER BY occurred_at
	`, since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []analytics.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func scanEvent(row pgx.Row) (analytics.Event, error) {
	var (
		ev  analytics.Event
		typ string
	)
	if err := row.Scan(&ev.ID, &typ, &ev.VisitorID, &ev.LinkURL, &ev.Code, &ev.Message,
		&ev.DurationMs, &ev.TargetDate, &ev.City, &ev.Country, &ev.OccurredAt); err != nil {
		return analytics.Event{}, err
	}
	ev.Type = analytics.EventType(typ)
	ev.OccurredAt = ev.OccurredAt.UTC()
	return ev, nil
}

var _ analytics.Repository = (*PostgresRepository)(nil)
