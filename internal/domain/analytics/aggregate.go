package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/yanqian/weather-advisor/pkg/metrics"
	"github.com/yanqian/weather-advisor/pkg/util"
)

// BuildReport aggregates events into the dashboard payload. Events older than
// now minus the window are ignored.
func BuildReport(events []Event, now time.Time, cfg Config) Report {
	cfg = withDefaults(cfg)
	since := now.Add(-cfg.Window)

	var (
		visitorDays = make(map[string]map[string]struct{})
		links       = newCounter(false)
		errorCodes  = newCounter(false)
		views       = make(map[string]int)
		targetDates = make(map[string]int)
		cities      = newCounter(true)
		countries   = newCounter(true)
		durations   []float64
		errorEvents []Event
		clicks      int
	)

	for _, ev := range events {
		if ev.OccurredAt.Before(since) || ev.OccurredAt.After(now) {
			continue
		}
		day := util.DayKey(ev.OccurredAt)
		if ev.VisitorID != "" {
			days, ok := visitorDays[ev.VisitorID]
			if !ok {
				days = make(map[string]struct{})
				visitorDays[ev.VisitorID] = days
			}
			days[day] = struct{}{}
		}

		switch ev.Type {
		case EventPageView:
			views[day]++
		case EventLinkClick:
			clicks++
			links.add(ev.LinkURL)
		case EventError:
			code := ev.Code
			if code == "" {
				code = "unknown"
			}
			errorCodes.add(code)
			errorEvents = append(errorEvents, ev)
		case EventPageLoad:
			durations = append(durations, ev.DurationMs)
		case EventDateSelected:
			targetDates[ev.TargetDate]++
		case EventCitySearch:
			cities.add(ev.City)
			if ev.Country != "" {
				countries.add(ev.Country)
			}
		}
	}

	report := Report{
		GeneratedAt: now.UTC(),
		WindowDays:  int(cfg.Window / (24 * time.Hour)),
		Retention:   retention(visitorDays, util.DayKey(now)),
		LinkClicks:  LinkClicks{Total: clicks, TopLinks: []LinkCount{}},
		Errors: ErrorStats{
			Total:  len(errorEvents),
			ByCode: []CodeCount{},
			Recent: recentErrors(errorEvents, cfg.RecentErrors),
		},
		PageLoad:     metrics.Summarize(durations),
		ViewsByDay:   []DayCount{},
		DatesClicked: []TargetDateCount{},
		SearchGeo: SearchGeo{
			EnteredCities: []CityCount{},
			Countries:     []CountryCount{},
		},
	}
	for _, e := range links.top(cfg.TopLimit) {
		report.LinkClicks.TopLinks = append(report.LinkClicks.TopLinks, LinkCount{LinkURL: e.key, Count: e.count})
	}
	for _, e := range errorCodes.top(cfg.TopLimit) {
		report.Errors.ByCode = append(report.Errors.ByCode, CodeCount{Code: e.key, Count: e.count})
	}
	for _, e := range cities.top(cfg.TopLimit) {
		report.SearchGeo.EnteredCities = append(report.SearchGeo.EnteredCities, CityCount{City: e.key, Count: e.count})
	}
	for _, e := range countries.top(cfg.TopLimit) {
		report.SearchGeo.Countries = append(report.SearchGeo.Countries, CountryCount{Country: e.key, Count: e.count})
	}
	for _, day := range sortedKeys(views) {
		report.ViewsByDay = append(report.ViewsByDay, DayCount{Day: day, Count: views[day]})
	}
	for _, date := range sortedKeys(targetDates) {
		report.DatesClicked = append(report.DatesClicked, TargetDateCount{TargetDate: date, Count: targetDates[date]})
	}
	return report
}

func withDefaults(cfg Config) Config {
	if cfg.Window <= 0 {
		cfg.Window = 30 * 24 * time.Hour
	}
	if cfg.TopLimit <= 0 {
		cfg.TopLimit = 10
	}
	if cfg.RecentErrors < 0 {
		cfg.RecentErrors = 0
	}
	return cfg
}

// retention counts visitors seen on two or more UTC days and the share of
// visitors who came back the day after their first visit. Visitors first
// seen today are not yet eligible for D1.
func retention(visitorDays map[string]map[string]struct{}, today string) Retention {
	var returning, cohort, retained int
	for _, days := range visitorDays {
		if len(days) >= 2 {
			returning++
		}
		first := ""
		for day := range days {
			if first == "" || day < first {
				first = day
			}
		}
		if first >= today {
			continue
		}
		cohort++
		if _, ok := days[nextDay(first)]; ok {
			retained++
		}
	}
	return Retention{
		TotalUsers:      len(visitorDays),
		ReturningUsers:  returning,
		ReturningRate:   percent(returning, len(visitorDays)),
		D1RetentionRate: percent(retained, cohort),
	}
}

func nextDay(day string) string {
	t, err := time.Parse(util.DateLayout, day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, 1).Format(util.DateLayout)
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

func recentErrors(events []Event, limit int) []RecentError {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].OccurredAt.After(events[j].OccurredAt)
	})
	out := make([]RecentError, 0, min(limit, len(events)))
	for _, ev := range events {
		if len(out) >= limit {
			break
		}
		out = append(out, RecentError{
			TS:      ev.OccurredAt.UTC().Format(time.RFC3339),
			Message: ev.Message,
		})
	}
	return out
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type countEntry struct {
	key   string
	count int
}

// counter tallies keys. With fold set, keys are grouped case-insensitively
// and the first spelling seen is kept.
type counter struct {
	fold    bool
	entries map[string]*countEntry
}

func newCounter(fold bool) *counter {
	return &counter{fold: fold, entries: make(map[string]*countEntry)}
}

func (c *counter) add(key string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	norm := key
	if c.fold {
		norm = strings.ToLower(key)
	}
	if e, ok := c.entries[norm]; ok {
		e.count++
		return
	}
	c.entries[norm] = &countEntry{key: key, count: 1}
}

func (c *counter) top(limit int) []countEntry {
	out := make([]countEntry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].key < out[j].key
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
