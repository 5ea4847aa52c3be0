package analytics

import (
	"context"
	"time"
)

// Repository persists events and lists them for reporting.
type Repository interface {
	Append(ctx context.Context, ev Event) error
	ListSince(ctx context.Context, since time.Time) ([]Event, error)
}

// Queue hands accepted events to a background writer.
type Queue interface {
	Enqueue(ctx context.Context, ev Event) error
}
