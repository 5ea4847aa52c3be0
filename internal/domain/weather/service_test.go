package weather

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-advisor/internal/domain/advisory"
	apperrors "github.com/yanqian/weather-advisor/pkg/errors"
)

func TestLookupCurrentSuccess(t *testing.T) {
	geo := &stubGeo{loc: Location{Name: "Москва", Country: "Россия", Latitude: 55.75, Longitude: 37.62}}
	provider := &stubProvider{fact: Fact{Code: 0, IsDay: true, TempMin: 12.5, TempMax: 12.5, FeelsLikeMin: 10, FeelsLikeMax: 10}}
	svc := newTestService(geo, provider)

	resp, err := svc.Lookup(context.Background(), Request{City: "  Москва "})
	require.NoError(t, err)
	require.Equal(t, "Москва", resp.City)
	require.Equal(t, "Россия", resp.Country)
	require.Equal(t, "2026-03-10", resp.Date)
	require.NotNil(t, resp.Temp)
	require.Equal(t, 12.5, *resp.Temp)
	require.Equal(t, 10.0, *resp.FeelsLike)
	require.True(t, *resp.IsDay)
	require.Nil(t, resp.TempMin)
	require.Equal(t, 0, resp.WeatherCode)
	require.Equal(t, "interest", resp.Purpose)
	require.Equal(t, "Ради интереса", resp.PurposeLabel)
	require.Equal(t, "☀️", resp.Visual.Icon)
	require.Equal(t, advisory.SelectAd(advisory.BucketClear), resp.Ad)

	require.Equal(t, []string{"Москва"}, geo.calls)
	require.Equal(t, 1, provider.calls)
	require.True(t, provider.lastDate.IsZero())
	require.Equal(t, 55.75, provider.lastLoc.Latitude)
}

func TestLookupDatedForecast(t *testing.T) {
	geo := &stubGeo{loc: Location{Name: "Сочи", Latitude: 43.6, Longitude: 39.7}}
	provider := &stubProvider{fact: Fact{
		Date: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), Code: 63, IsDay: true,
		TempMin: 20, TempMax: 27, FeelsLikeMin: 19, FeelsLikeMax: 29,
	}}
	svc := newTestService(geo, provider)

	resp, err := svc.Lookup(context.Background(), Request{City: "Сочи", Date: "2026-03-12", Purpose: "walk"})
	require.NoError(t, err)
	require.Equal(t, "2026-03-12", resp.Date)
	require.Nil(t, resp.Temp)
	require.Nil(t, resp.IsDay)
	require.Equal(t, 20.0, *resp.TempMin)
	require.Equal(t, 27.0, *resp.TempMax)
	require.Equal(t, 29.0, *resp.FeelsLikeMax)
	require.Equal(t, "walk", resp.Purpose)
	require.Equal(t, advisory.BucketRain, resp.Visual.Bucket)
	require.Contains(t, resp.Recommendations.Wear, "По температуре: выбирайте дышащие ткани и светлые тона.")
	require.Equal(t, "2026-03-12", provider.lastDate.Format("2006-01-02"))
}

func TestLookupEmptyCityMakesNoCalls(t *testing.T) {
	geo := &stubGeo{}
	provider := &stubProvider{}
	svc := newTestService(geo, provider)

	for _, city := range []string{"", "   "} {
		_, err := svc.Lookup(context.Background(), Request{City: city})
		require.Error(t, err)
		require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
		require.Equal(t, MsgCityRequired, apperrors.MessageOf(err))
	}
	require.Empty(t, geo.calls)
	require.Zero(t, provider.calls)
}

func TestLookupRejectsDates(t *testing.T) {
	cases := map[string]string{
		"12.03.2026": MsgInvalidDate,
		"2026-02-30": MsgInvalidDate,
		"2026-03-09": "Можно выбрать дату только с 2026-03-10 по 2026-03-25",
		"2026-03-26": "Можно выбрать дату только с 2026-03-10 по 2026-03-25",
	}
	for date, msg := range cases {
		t.Run(date, func(t *testing.T) {
			geo := &stubGeo{}
			svc := newTestService(geo, &stubProvider{})
			_, err := svc.Lookup(context.Background(), Request{City: "Москва", Date: date})
			require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
			require.Equal(t, msg, apperrors.MessageOf(err))
			require.Empty(t, geo.calls)
		})
	}
}

func TestLookupAcceptsRangeBounds(t *testing.T) {
	for _, date := range []string{"2026-03-10", "2026-03-25"} {
		svc := newTestService(&stubGeo{}, &stubProvider{})
		_, err := svc.Lookup(context.Background(), Request{City: "Москва", Date: date})
		require.NoError(t, err, date)
	}
}

func TestLookupCityNotFoundSkipsProvider(t *testing.T) {
	geo := &stubGeo{err: apperrors.Wrap(apperrors.CodeNotFound, MsgCityNotFound, nil)}
	provider := &stubProvider{}
	svc := newTestService(geo, provider)

	_, err := svc.Lookup(context.Background(), Request{City: "ZzNoSuchPlace123"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	require.Equal(t, MsgCityNotFound, apperrors.MessageOf(err))
	require.Zero(t, provider.calls)
}

func TestLookupUncodedErrorsBecomeUpstream(t *testing.T) {
	svc := newTestService(&stubGeo{err: errors.New("dial tcp: refused")}, &stubProvider{})
	_, err := svc.Lookup(context.Background(), Request{City: "Москва"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeUpstream))
	require.Equal(t, MsgGeocodingFailed, apperrors.MessageOf(err))

	svc = newTestService(&stubGeo{}, &stubProvider{err: context.DeadlineExceeded})
	_, err = svc.Lookup(context.Background(), Request{City: "Москва"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeUpstream))
	require.Equal(t, MsgProviderFailed, apperrors.MessageOf(err))
}

func TestLookupMissingKeyPropagates(t *testing.T) {
	provider := &stubProvider{err: apperrors.Wrap(apperrors.CodeConfiguration, MsgMissingAPIKey, nil)}
	svc := newTestService(&stubGeo{}, provider)

	_, err := svc.Lookup(context.Background(), Request{City: "Москва"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeConfiguration))
	require.Contains(t, apperrors.MessageOf(err), "WEATHER_API_KEY")
}

func TestLookupRejectsInvertedRanges(t *testing.T) {
	provider := &stubProvider{fact: Fact{TempMin: 10, TempMax: 5}}
	svc := newTestService(&stubGeo{}, provider)

	_, err := svc.Lookup(context.Background(), Request{City: "Москва"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeUpstream))
	require.Equal(t, MsgProviderMalformed, apperrors.MessageOf(err))
}

func newTestService(geo GeoResolver, provider Provider) *service {
	return &service{
		cfg:      Config{MaxForecastDays: 15},
		geo:      geo,
		provider: provider,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now: func() time.Time {
			return time.Date(2026, 3, 10, 21, 30, 0, 0, time.UTC)
		},
	}
}

type stubGeo struct {
	loc   Location
	err   error
	calls []string
}

func (s *stubGeo) Resolve(_ context.Context, city string) (Location, error) {
	s.calls = append(s.calls, city)
	if s.err != nil {
		return Location{}, s.err
	}
	return s.loc, nil
}

type stubProvider struct {
	fact     Fact
	err      error
	calls    int
	lastLoc  Location
	lastDate time.Time
}

func (s *stubProvider) Fetch(_ context.Context, loc Location, date time.Time) (Fact, error) {
	s.calls++
	s.lastLoc = loc
	s.lastDate = date
	if s.err != nil {
		return Fact{}, s.err
	}
	return s.fact, nil
}
