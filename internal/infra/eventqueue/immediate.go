package eventqueue

import (
	"context"
	"log/slog"

	"github.com/yanqian/weather-advisor/internal/domain/analytics"
)

// Handler stores a delivered event.
type Handler func(ctx context.Context, ev analytics.Event) error

// ImmediateQueue calls the handler in a goroutine on enqueue.
type ImmediateQueue struct {
	handler Handler
	logger  *slog.Logger
}

// NewImmediateQueue constructs the queue.
func NewImmediateQueue(handler Handler, logger *slog.Logger) *ImmediateQueue {
	return &ImmediateQueue{
		handler: handler,
		logger:  logger.With("component", "eventqueue.immediate"),
	}
}

// Enqueue invokes the handler asynchronously. The request context is detached
// so the write outlives the HTTP response.
func (q *ImmediateQueue) Enqueue(ctx context.Context, ev analytics.Event) error {
	if q.handler == nil {
		return nil
	}
	detached := context.WithoutCancel(ctx)
	go func() {
		if err := q.handler(detached, ev); err != nil {
			q.logger.Error("store analytics event failed", "id", ev.ID, "type", ev.Type, "error", err)
		}
	}()
	return nil
}

var _ analytics.Queue = (*ImmediateQueue)(nil)
