package analyticsrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yanqian/weather-advisor/internal/domain/analytics"
)

// MemoryRepository keeps events in process memory. Used for tests/dev and as
// the fallback when a database is unavailable.
type MemoryRepository struct {
	mu     sync.RWMutex
	events []analytics.Event
	ids    map[string]struct{}
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{ids: make(map[string]struct{})}
}

// Append implements analytics.Repository. Duplicate IDs are ignored.
func (r *MemoryRepository) Append(_ context.Context, ev analytics.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ev.ID != "" {
		if _, ok := r.ids[ev.ID]; ok {
			return nil
		}
		r.ids[ev.ID] = struct{}{}
	}
	r.events = append(r.events, ev)
	return nil
}

// ListSince implements analytics.Repository.
func (r *MemoryRepository) ListSince(_ context.Context, since time.Time) ([]analytics.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]analytics.Event, 0, len(r.events))
	for _, ev := range r.events {
		if !ev.OccurredAt.Before(since) {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.Before(out[j].OccurredAt)
	})
	return out, nil
}

var _ analytics.Repository = (*MemoryRepository)(nil)
