package analyticsrepo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-advisor/internal/domain/analytics"
)

func sampleEvents(base time.Time) []analytics.Event {
	return []analytics.Event{
		{ID: "e2", Type: analytics.EventLinkClick, VisitorID: "v1", LinkURL: "https://yandex.ru/maps/", OccurredAt: base.Add(2 * time.Hour)},
		{ID: "e1", Type: analytics.EventPageView, VisitorID: "v1", OccurredAt: base.Add(time.Hour)},
		{ID: "e0", Type: analytics.EventPageView, VisitorID: "v0", OccurredAt: base.Add(-48 * time.Hour)},
		{ID: "e3", Type: analytics.EventPageLoad, DurationMs: 812.5, OccurredAt: base.Add(3 * time.Hour)},
		{ID: "e4", Type: analytics.EventCitySearch, City: "Москва", Country: "Россия", OccurredAt: base.Add(4 * time.Hour)},
	}
}

// exerciseRepository checks the behavior every backend must share.
func exerciseRepository(t *testing.T, repo analytics.Repository) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	for _, ev := range sampleEvents(base) {
		require.NoError(t, repo.Append(ctx, ev))
	}
	// redelivery of the same id is a no-op
	require.NoError(t, repo.Append(ctx, sampleEvents(base)[0]))

	events, err := repo.ListSince(ctx, base)
	require.NoError(t, err)
	require.Len(t, events, 4)
	require.Equal(t, []string{"e1", "e2", "e3", "e4"}, []string{events[0].ID, events[1].ID, events[2].ID, events[3].ID})
	require.Equal(t, analytics.EventLinkClick, events[1].Type)
	require.Equal(t, "https://yandex.ru/maps/", events[1].LinkURL)
	require.Equal(t, 812.5, events[2].DurationMs)
	require.Equal(t, "Москва", events[3].City)
	require.True(t, base.Add(4*time.Hour).Equal(events[3].OccurredAt))

	all, err := repo.ListSince(ctx, base.Add(-72*time.Hour))
	require.NoError(t, err)
	require.Len(t, all, 5)
	require.Equal(t, "e0", all[0].ID)
}

func TestMemoryRepository(t *testing.T) {
	exerciseRepository(t, NewMemoryRepository())
}

func TestSQLiteRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "analytics.db")
	repo, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	exerciseRepository(t, repo)
}

func TestSQLiteDSN(t *testing.T) {
	dsn, err := sqliteDSN("file:test.db?mode=memory")
	require.NoError(t, err)
	require.Equal(t, "file:test.db?mode=memory&_busy_timeout=5000&_journal_mode=WAL", dsn)

	_, err = sqliteDSN("  ")
	require.Error(t, err)
}
