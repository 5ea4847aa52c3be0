package analytics

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func at(day string, hour int) time.Time {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return t.Add(time.Duration(hour) * time.Hour)
}

func TestBuildReportRetention(t *testing.T) {
	now := at("2026-05-20", 12)
	events := []Event{
		// a: first 05-17, back 05-18 (D1 retained, returning)
		{Type: EventPageView, VisitorID: "a", OccurredAt: at("2026-05-17", 9)},
		{Type: EventPageView, VisitorID: "a", OccurredAt: at("2026-05-18", 9)},
		// b: first 05-17, back 05-19 (returning, not D1)
		{Type: EventPageView, VisitorID: "b", OccurredAt: at("2026-05-17", 10)},
		{Type: EventPageView, VisitorID: "b", OccurredAt: at("2026-05-19", 10)},
		// c: single day, same day twice
		{Type: EventPageView, VisitorID: "c", OccurredAt: at("2026-05-19", 1)},
		{Type: EventPageView, VisitorID: "c", OccurredAt: at("2026-05-19", 20)},
		// d: first seen today, excluded from D1 cohort
		{Type: EventPageView, VisitorID: "d", OccurredAt: at("2026-05-20", 8)},
		// anonymous
		{Type: EventPageView, OccurredAt: at("2026-05-20", 9)},
	}

	r := BuildReport(events, now, Config{})
	require.Equal(t, Retention{
		TotalUsers:      4,
		ReturningUsers:  2,
		ReturningRate:   50,
		D1RetentionRate: 33.3,
	}, r.Retention)
	require.Equal(t, []DayCount{
		{Day: "2026-05-17", Count: 2},
		{Day: "2026-05-18", Count: 1},
		{Day: "2026-05-19", Count: 3},
		{Day: "2026-05-20", Count: 2},
	}, r.ViewsByDay)
}

func TestBuildReportEmpty(t *testing.T) {
	r := BuildReport(nil, at("2026-05-20", 0), Config{})
	require.Zero(t, r.Retention.TotalUsers)
	require.Zero(t, r.Retention.ReturningRate)
	require.NotNil(t, r.LinkClicks.TopLinks)
	require.NotNil(t, r.Errors.Recent)
	require.NotNil(t, r.ViewsByDay)
	require.Zero(t, r.PageLoad.Samples)
}

func TestBuildReportWindow(t *testing.T) {
	now := at("2026-05-20", 12)
	events := []Event{
		{Type: EventLinkClick, LinkURL: "https://old", OccurredAt: now.Add(-31 * 24 * time.Hour)},
		{Type: EventLinkClick, LinkURL: "https://new", OccurredAt: now.Add(-time.Hour)},
	}
	r := BuildReport(events, now, Config{Window: 30 * 24 * time.Hour})
	require.Equal(t, 1, r.LinkClicks.Total)
	require.Equal(t, []LinkCount{{LinkURL: "https://new", Count: 1}}, r.LinkClicks.TopLinks)
}

func TestBuildReportTopListsOrderAndLimit(t *testing.T) {
	now := at("2026-05-20", 12)
	var events []Event
	add := func(url string, n int) {
		for i := 0; i < n; i++ {
			events = append(events, Event{Type: EventLinkClick, LinkURL: url, OccurredAt: now.Add(-time.Minute)})
		}
	}
	add("https://b", 2)
	add("https://a", 2)
	add("https://c", 5)
	for i := 0; i < 12; i++ {
		add(fmt.Sprintf("https://z%02d", i), 1)
	}

	r := BuildReport(events, now, Config{TopLimit: 10})
	require.Equal(t, 21, r.LinkClicks.Total)
	require.Len(t, r.LinkClicks.TopLinks, 10)
	require.Equal(t, LinkCount{LinkURL: "https://c", Count: 5}, r.LinkClicks.TopLinks[0])
	require.Equal(t, LinkCount{LinkURL: "https://a", Count: 2}, r.LinkClicks.TopLinks[1])
	require.Equal(t, LinkCount{LinkURL: "https://b", Count: 2}, r.LinkClicks.TopLinks[2])
	require.Equal(t, "https://z00", r.LinkClicks.TopLinks[3].LinkURL)
}

func TestBuildReportErrors(t *testing.T) {
	now := at("2026-05-20", 12)
	events := []Event{
		{Type: EventError, Code: "geo", Message: "first", OccurredAt: at("2026-05-18", 1)},
		{Type: EventError, Code: "geo", Message: "third", OccurredAt: at("2026-05-20", 1)},
		{Type: EventError, Message: "second", OccurredAt: at("2026-05-19", 1)},
	}
	r := BuildReport(events, now, Config{RecentErrors: 2})
	require.Equal(t, 3, r.Errors.Total)
	require.Equal(t, []CodeCount{{Code: "geo", Count: 2}, {Code: "unknown", Count: 1}}, r.Errors.ByCode)
	require.Equal(t, []RecentError{
		{TS: "2026-05-20T01:00:00Z", Message: "third"},
		{TS: "2026-05-19T01:00:00Z", Message: "second"},
	}, r.Errors.Recent)
}

func TestBuildReportPageLoadAndDates(t *testing.T) {
	now := at("2026-05-20", 12)
	events := []Event{
		{Type: EventPageLoad, DurationMs: 100, OccurredAt: now.Add(-time.Hour)},
		{Type: EventPageLoad, DurationMs: 300, OccurredAt: now.Add(-time.Hour)},
		{Type: EventDateSelected, TargetDate: "2026-05-25", OccurredAt: now.Add(-time.Hour)},
		{Type: EventDateSelected, TargetDate: "2026-05-21", OccurredAt: now.Add(-time.Hour)},
		{Type: EventDateSelected, TargetDate: "2026-05-25", OccurredAt: now.Add(-time.Hour)},
	}
	r := BuildReport(events, now, Config{})
	require.Equal(t, 2, r.PageLoad.Samples)
	require.Equal(t, 200.0, r.PageLoad.AvgMs)
	require.Equal(t, 300.0, r.PageLoad.P95Ms)
	require.Equal(t, []TargetDateCount{
		{TargetDate: "2026-05-21", Count: 1},
		{TargetDate: "2026-05-25", Count: 2},
	}, r.DatesClicked)
}

func TestBuildReportExtremePageLoadsStillEncode(t *testing.T) {
	now := at("2026-05-20", 12)
	events := []Event{
		{Type: EventPageLoad, DurationMs: 1e308, OccurredAt: now.Add(-time.Hour)},
		{Type: EventPageLoad, DurationMs: 1e308, OccurredAt: now.Add(-time.Hour)},
		{Type: EventPageLoad, DurationMs: math.Inf(1), OccurredAt: now.Add(-time.Hour)},
	}
	r := BuildReport(events, now, Config{})
	require.Equal(t, 2, r.PageLoad.Samples)
	require.False(t, math.IsInf(r.PageLoad.AvgMs, 0))

	_, err := json.Marshal(r)
	require.NoError(t, err)
}

func TestBuildReportSearchGeo(t *testing.T) {
	now := at("2026-05-20", 12)
	events := []Event{
		{Type: EventCitySearch, City: "Москва", Country: "Россия", OccurredAt: now.Add(-3 * time.Hour)},
		{Type: EventCitySearch, City: "москва", Country: "россия", OccurredAt: now.Add(-2 * time.Hour)},
		{Type: EventCitySearch, City: "Paris", OccurredAt: now.Add(-time.Hour)},
	}
	r := BuildReport(events, now, Config{})
	require.Equal(t, []CityCount{{City: "Москва", Count: 2}, {City: "Paris", Count: 1}}, r.SearchGeo.EnteredCities)
	require.Equal(t, []CountryCount{{Country: "Россия", Count: 2}}, r.SearchGeo.Countries)
}
