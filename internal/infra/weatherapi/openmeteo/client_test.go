package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-advisor/internal/domain/weather"
	apperrors "github.com/yanqian/weather-advisor/pkg/errors"
)

var moscow = weather.Location{Name: "Москва", Latitude: 55.75, Longitude: 37.62}

func TestFetchWithoutKeySkipsNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, APIKey: "  "})
	for _, loc := range []weather.Location{moscow, {Latitude: 999, Longitude: -999}} {
		_, err := client.Fetch(context.Background(), loc, time.Time{})
		require.True(t, apperrors.IsCode(err, apperrors.CodeConfiguration))
		require.Equal(t, weather.MsgMissingAPIKey, apperrors.MessageOf(err))
	}
	require.Zero(t, hits.Load())
}

func TestFetchCurrent(t *testing.T) {
	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte(`{"current":{"time":"2026-03-10T21:30","temperature_2m":-3.4,"apparent_temperature":-8.1,"weather_code":71,"is_day":0}}`))
	}))
	defer srv.Close()

	fact, err := newTestClient(srv.URL).Fetch(context.Background(), moscow, time.Time{})
	require.NoError(t, err)
	require.Equal(t, weather.Fact{Code: 71, IsDay: false, TempMin: -3.4, TempMax: -3.4, FeelsLikeMin: -8.1, FeelsLikeMax: -8.1}, fact)

	require.Equal(t, "secret-key", query.Get("apikey"))
	require.Equal(t, "55.75", query.Get("latitude"))
	require.Equal(t, "37.62", query.Get("longitude"))
	require.Equal(t, currentFields, query.Get("current"))
	require.Empty(t, query.Get("daily"))
}

func TestFetchDaily(t *testing.T) {
	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte(`{"daily":{"time":["2026-03-12"],"temperature_2m_min":[1.2],"temperature_2m_max":[6.5],"apparent_temperature_min":[-2],"apparent_temperature_max":[4.4],"weather_code":[61]}}`))
	}))
	defer srv.Close()

	date := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	fact, err := newTestClient(srv.URL).Fetch(context.Background(), moscow, date)
	require.NoError(t, err)
	require.Equal(t, date, fact.Date)
	require.Equal(t, 61, fact.Code)
	require.True(t, fact.IsDay)
	require.Equal(t, 1.2, fact.TempMin)
	require.Equal(t, 6.5, fact.TempMax)
	require.Equal(t, -2.0, fact.FeelsLikeMin)
	require.Equal(t, 4.4, fact.FeelsLikeMax)

	require.Equal(t, dailyFields, query.Get("daily"))
	require.Equal(t, "2026-03-12", query.Get("start_date"))
	require.Equal(t, "2026-03-12", query.Get("end_date"))
	require.Equal(t, "auto", query.Get("timezone"))
}

func TestFetchDailyNoMatchingDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"daily":{"time":["2026-03-13"],"temperature_2m_min":[1],"temperature_2m_max":[2],"apparent_temperature_min":[0],"apparent_temperature_max":[1],"weather_code":[3]}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background(), moscow, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC))
	require.True(t, apperrors.IsCode(err, apperrors.CodeNoForecast))
	require.Equal(t, weather.MsgNoForecast, apperrors.MessageOf(err))
}

func TestFetchMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":        `<html>`,
		"missing current": `{}`,
		"null temp":       `{"current":{"temperature_2m":null,"apparent_temperature":1,"weather_code":0,"is_day":1}}`,
		"missing code":    `{"current":{"temperature_2m":1,"apparent_temperature":1,"is_day":1}}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(payload))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).Fetch(context.Background(), moscow, time.Time{})
			require.True(t, apperrors.IsCode(err, apperrors.CodeUpstream))
			require.Equal(t, weather.MsgProviderMalformed, apperrors.MessageOf(err))
		})
	}
}

func TestFetchDailyNullField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"daily":{"time":["2026-03-12"],"temperature_2m_min":[1],"temperature_2m_max":[null],"apparent_temperature_min":[0],"apparent_temperature_max":[1],"weather_code":[3]}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background(), moscow, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC))
	require.Equal(t, weather.MsgProviderMalformed, apperrors.MessageOf(err))
}

func TestFetchUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":true,"reason":"Invalid API key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background(), moscow, time.Time{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeUpstream))
	require.Equal(t, weather.MsgProviderFailed, apperrors.MessageOf(err))
	require.NotContains(t, apperrors.MessageOf(err), "secret-key")
}

func TestFetchTransportErrorHidesKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, APIKey: "secret-key", Timeout: 20 * time.Millisecond})
	_, err := client.Fetch(context.Background(), moscow, time.Time{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeUpstream))
	require.NotContains(t, err.Error(), "secret-key")
}

func newTestClient(baseURL string) *Client {
	return NewClient(Config{BaseURL: baseURL, APIKey: "secret-key", Timeout: time.Second})
}
