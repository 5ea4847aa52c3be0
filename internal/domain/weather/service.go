package weather

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/weather-advisor/internal/domain/advisory"
	apperrors "github.com/yanqian/weather-advisor/pkg/errors"
	"github.com/yanqian/weather-advisor/pkg/util"
)

// Service exposes the weather lookup pipeline.
type Service interface {
	Lookup(ctx context.Context, req Request) (Response, error)
}

type service struct {
	cfg      Config
	geo      GeoResolver
	provider Provider
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires up the weather lookup domain.
func NewService(cfg Config, geo GeoResolver, provider Provider, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		geo:      geo,
		provider: provider,
		logger:   logger.With("component", "weather.service"),
		now:      util.NowUTC,
	}
}

func (s *service) Lookup(ctx context.Context, req Request) (Response, error) {
	city := strings.TrimSpace(req.City)
	if city == "" {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, MsgCityRequired, nil)
	}
	date, err := s.resolveDate(req.Date)
	if err != nil {
		return Response{}, err
	}
	purpose := advisory.ParsePurpose(req.Purpose)

	loc, err := s.geo.Resolve(ctx, city)
	if err != nil {
		return Response{}, ensureCoded(err, MsgGeocodingFailed)
	}
	s.logger.Debug("city resolved", "city", city, "lat", loc.Latitude, "lon", loc.Longitude)

	fact, err := s.provider.Fetch(ctx, loc, date)
	if err != nil {
		return Response{}, ensureCoded(err, MsgProviderFailed)
	}
	if fact.TempMin > fact.TempMax || fact.FeelsLikeMin > fact.FeelsLikeMax {
		return Response{}, apperrors.Wrap(apperrors.CodeUpstream, MsgProviderMalformed,
			fmt.Errorf("inverted range: temp %.1f..%.1f feels %.1f..%.1f", fact.TempMin, fact.TempMax, fact.FeelsLikeMin, fact.FeelsLikeMax))
	}

	res := buildResponse(city, loc, date, s.now(), fact, purpose)
	s.logger.Info("weather lookup complete", "city", city, "date", res.Date, "code", fact.Code, "bucket", res.Visual.Bucket)
	return res, nil
}

// resolveDate returns a zero time for current conditions.
func (s *service) resolveDate(input string) (time.Time, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return time.Time{}, nil
	}
	date, err := time.Parse(util.DateLayout, trimmed)
	if err != nil {
		return time.Time{}, apperrors.Wrap(apperrors.CodeInvalidInput, MsgInvalidDate, err)
	}
	today := util.StartOfDay(s.now().UTC())
	last := today.AddDate(0, 0, s.cfg.MaxForecastDays)
	if date.Before(today) || date.After(last) {
		return time.Time{}, apperrors.Wrap(apperrors.CodeInvalidInput,
			fmt.Sprintf(MsgDateOutOfRange, today.Format(util.DateLayout), last.Format(util.DateLayout)), nil)
	}
	return date, nil
}

func ensureCoded(err error, fallback string) error {
	if apperrors.CodeOf(err) != "" {
		return err
	}
	return apperrors.Wrap(apperrors.CodeUpstream, fallback, err)
}

func buildResponse(city string, loc Location, date, now time.Time, fact Fact, purpose advisory.Purpose) Response {
	res := Response{
		City:        city,
		Country:     loc.Country,
		WeatherCode: fact.Code,
		Purpose:     string(purpose),
		Result:      advisory.Evaluate(fact.Code, fact.IsDay, purpose, fact.TempMin, fact.TempMax),
	}
	if date.IsZero() {
		res.Date = now.UTC().Format(util.DateLayout)
		res.Temp = ptr(fact.TempMax)
		res.FeelsLike = ptr(fact.FeelsLikeMax)
		res.IsDay = ptr(fact.IsDay)
		return res
	}
	res.Date = date.Format(util.DateLayout)
	res.TempMin = ptr(fact.TempMin)
	res.TempMax = ptr(fact.TempMax)
	res.FeelsLikeMin = ptr(fact.FeelsLikeMin)
	res.FeelsLikeMax = ptr(fact.FeelsLikeMax)
	return res
}

func ptr[T any](v T) *T {
	return &v
}
