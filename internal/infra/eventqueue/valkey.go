package eventqueue

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/weather-advisor/internal/domain/analytics"
)

const defaultQueueKey = "analytics:events"

// ValkeyQueue persists events in a Valkey list and delivers them to a handler
// from a single worker.
type ValkeyQueue struct {
	client      valkey.Client
	queueKey    string
	handler     Handler
	logger      *slog.Logger
	pollTimeout time.Duration

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// NewValkeyQueue constructs a Valkey-backed queue. Call Start to begin
// consuming and Close to stop.
func NewValkeyQueue(client valkey.Client, queueKey string, handler Handler, logger *slog.Logger) *ValkeyQueue {
	if queueKey == "" {
		queueKey = defaultQueueKey
	}
	return &ValkeyQueue{
		client:      client,
		queueKey:    queueKey,
		handler:     handler,
		logger:      logger.With("component", "eventqueue.valkey"),
		pollTimeout: 5 * time.Second,
		done:        make(chan struct{}),
	}
}

// Start launches the worker loop.
func (q *ValkeyQueue) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	q.cancel = cancel
	go q.consume(ctx)
}

// Close stops the worker and waits for the in-flight event.
func (q *ValkeyQueue) Close() {
	q.once.Do(func() {
		if q.cancel == nil {
			return
		}
		q.cancel()
		<-q.done
	})
}

// Enqueue pushes an event onto the list.
func (q *ValkeyQueue) Enqueue(ctx context.Context, ev analytics.Event) error {
	encoded, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	cmd := q.client.B().Lpush().Key(q.queueKey).Element(string(encoded)).Build()
	return q.client.Do(ctx, cmd).Error()
}

func (q *ValkeyQueue) consume(ctx context.Context) {
	defer close(q.done)
	for {
		if ctx.Err() != nil {
			return
		}
		resp := q.client.Do(ctx, q.client.B().Brpop().Key(q.queueKey).Timeout(q.pollTimeout.Seconds()).Build())
		values, err := resp.ToArray()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if !valkey.IsValkeyNil(err) {
				q.logger.Warn("valkey queue pop failed", "error", err)
				time.Sleep(time.Second)
			}
			continue
		}
		if len(values) < 2 || q.handler == nil {
			continue
		}
		raw, err := values[1].ToString()
		if err != nil {
			q.logger.Warn("valkey queue payload decode failed", "error", err)
			continue
		}
		ev, err := decodeEvent(raw)
		if err != nil {
			q.logger.Warn("valkey queue unmarshal failed", "error", err)
			continue
		}
		if err := q.handler(context.WithoutCancel(ctx), ev); err != nil {
			q.logger.Error("store analytics event failed", "id", ev.ID, "type", ev.Type, "error", err)
		}
	}
}

func decodeEvent(raw string) (analytics.Event, error) {
	var ev analytics.Event
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		return analytics.Event{}, err
	}
	return ev, nil
}

var _ analytics.Queue = (*ValkeyQueue)(nil)
