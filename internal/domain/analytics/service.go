package analytics

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	apperrors "github.com/yanqian/weather-advisor/pkg/errors"
	"github.com/yanqian/weather-advisor/pkg/util"
)

const (
	maxFieldRunes = 512
	maxPageLoadMs = 600000
)

// Service exposes usage event ingestion and the dashboard report.
type Service interface {
	Track(ctx context.Context, input EventInput) (Event, error)
	Report(ctx context.Context) (Report, error)
}

type service struct {
	cfg    Config
	repo   Repository
	queue  Queue
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewService wires up the analytics domain.
func NewService(cfg Config, repo Repository, queue Queue, logger *slog.Logger) Service {
	return &service{
		cfg:    withDefaults(cfg),
		repo:   repo,
		queue:  queue,
		logger: logger.With("component", "analytics.service"),
		now:    util.NowUTC,
		newID:  uuid.NewString,
	}
}

func (s *service) Track(ctx context.Context, input EventInput) (Event, error) {
	ev, err := s.normalize(input)
	if err != nil {
		return Event{}, err
	}
	if err := s.queue.Enqueue(ctx, ev); err != nil {
		return Event{}, apperrors.Wrap("analytics_error", "failed to enqueue event", err)
	}
	s.logger.Debug("analytics event accepted", "type", ev.Type, "id", ev.ID)
	return ev, nil
}

func (s *service) Report(ctx context.Context) (Report, error) {
	now := s.now()
	events, err := s.repo.ListSince(ctx, now.Add(-s.cfg.Window))
	if err != nil {
		return Report{}, apperrors.Wrap("analytics_error", "failed to load analytics", err)
	}
	report := BuildReport(events, now, s.cfg)
	s.logger.Info("analytics report built", "events", len(events), "users", report.Retention.TotalUsers)
	return report, nil
}

func (s *service) normalize(input EventInput) (Event, error) {
	typ := EventType(strings.ToLower(strings.TrimSpace(input.Type)))
	if !typ.valid() {
		return Event{}, invalid("Неизвестный тип события")
	}
	ev := Event{
		ID:         s.newID(),
		Type:       typ,
		VisitorID:  clip(input.VisitorID),
		LinkURL:    clip(input.LinkURL),
		Code:       clip(input.Code),
		Message:    clip(input.Message),
		TargetDate: clip(input.TargetDate),
		City:       clip(input.City),
		Country:    clip(input.Country),
		OccurredAt: s.now().UTC(),
	}

	switch typ {
	case EventLinkClick:
		if ev.LinkURL == "" {
			return Event{}, invalid("Для link_click требуется linkUrl")
		}
	case EventPageLoad:
		if input.DurationMs == nil || !validDuration(*input.DurationMs) {
			return Event{}, invalid("Для page_load требуется durationMs от 0 до 600000")
		}
		ev.DurationMs = *input.DurationMs
	case EventDateSelected:
		if _, err := time.Parse(util.DateLayout, ev.TargetDate); err != nil {
			return Event{}, invalid("Для date_selected требуется targetDate в формате YYYY-MM-DD")
		}
	case EventCitySearch:
		if ev.City == "" {
			return Event{}, invalid("Для city_search требуется city")
		}
	}
	return ev, nil
}

func validDuration(ms float64) bool {
	return !math.IsNaN(ms) && !math.IsInf(ms, 0) && ms >= 0 && ms <= maxPageLoadMs
}

func invalid(msg string) error {
	return apperrors.Wrap(apperrors.CodeInvalidInput, msg, nil)
}

func clip(v string) string {
	v = strings.TrimSpace(v)
	if utf8.RuneCountInString(v) <= maxFieldRunes {
		return v
	}
	runes := []rune(v)
	return string(runes[:maxFieldRunes])
}
