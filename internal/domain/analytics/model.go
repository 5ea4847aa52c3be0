package analytics

import (
	"time"

	"github.com/yanqian/weather-advisor/pkg/metrics"
)

// EventType enumerates the usage events the widget reports.
type EventType string

const (
	EventPageView     EventType = "page_view"
	EventLinkClick    EventType = "link_click"
	EventError        EventType = "error"
	EventPageLoad     EventType = "page_load"
	EventDateSelected EventType = "date_selected"
	EventCitySearch   EventType = "city_search"
)

func (t EventType) valid() bool {
	switch t {
	case EventPageView, EventLinkClick, EventError, EventPageLoad, EventDateSelected, EventCitySearch:
		return true
	}
	return false
}

// EventInput is the payload accepted from browsers.
type EventInput struct {
	Type       string   `json:"type"`
	VisitorID  string   `json:"visitorId"`
	LinkURL    string   `json:"linkUrl"`
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	DurationMs *float64 `json:"durationMs"`
	TargetDate string   `json:"targetDate"`
	City       string   `json:"city"`
	Country    string   `json:"country"`
}

// Event is a validated, server-stamped usage event.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	VisitorID  string    `json:"visitorId,omitempty"`
	LinkURL    string    `json:"linkUrl,omitempty"`
	Code       string    `json:"code,omitempty"`
	Message    string    `json:"message,omitempty"`
	DurationMs float64   `json:"durationMs,omitempty"`
	TargetDate string    `json:"targetDate,omitempty"`
	City       string    `json:"city,omitempty"`
	Country    string    `json:"country,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Report is the pre-aggregated dashboard payload.
type Report struct {
	GeneratedAt  time.Time              `json:"generatedAt"`
	WindowDays   int                    `json:"windowDays"`
	Retention    Retention              `json:"retention"`
	LinkClicks   LinkClicks             `json:"linkClicks"`
	Errors       ErrorStats             `json:"errors"`
	PageLoad     metrics.LatencySummary `json:"pageLoad"`
	ViewsByDay   []DayCount             `json:"viewsByDay"`
	DatesClicked []TargetDateCount      `json:"datesClicked"`
	SearchGeo    SearchGeo              `json:"searchGeo"`
}

// Retention summarizes returning visitors.
type Retention struct {
	TotalUsers      int     `json:"totalUsers"`
	ReturningUsers  int     `json:"returningUsers"`
	ReturningRate   float64 `json:"returningRate"`
	D1RetentionRate float64 `json:"d1RetentionRate"`
}

type LinkClicks struct {
	Total    int         `json:"total"`
	TopLinks []LinkCount `json:"topLinks"`
}

type LinkCount struct {
	LinkURL string `json:"link_url"`
	Count   int    `json:"count"`
}

type ErrorStats struct {
	Total  int           `json:"total"`
	ByCode []CodeCount   `json:"byCode"`
	Recent []RecentError `json:"recent"`
}

type CodeCount struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

type RecentError struct {
	TS      string `json:"ts"`
	Message string `json:"message"`
}

type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type TargetDateCount struct {
	TargetDate string `json:"target_date"`
	Count      int    `json:"count"`
}

type SearchGeo struct {
	EnteredCities []CityCount    `json:"enteredCities"`
	Countries     []CountryCount `json:"countries"`
}

type CityCount struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// Config wires runtime limits for the analytics domain.
type Config struct {
	Window       time.Duration
	TopLimit     int
	RecentErrors int
}
