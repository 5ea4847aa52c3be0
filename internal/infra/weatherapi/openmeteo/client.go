package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/weather-advisor/internal/domain/weather"
	apperrors "github.com/yanqian/weather-advisor/pkg/errors"
	"github.com/yanqian/weather-advisor/pkg/util"
)

const (
	defaultBaseURL = "https://customer-api.open-meteo.com/v1/forecast"
	currentFields  = "temperature_2m,apparent_temperature,weather_code,is_day"
	dailyFields    = "temperature_2m_min,temperature_2m_max,apparent_temperature_min,apparent_temperature_max,weather_code"
)

// Config controls the forecast client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client fetches conditions from the Open-Meteo forecast API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a forecast client. An empty key is accepted here and
// reported on every Fetch.
func NewClient(cfg Config) *Client {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: base,
		apiKey:  strings.TrimSpace(cfg.APIKey),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch returns current conditions when date is zero, otherwise the daily
// forecast entry for that calendar day.
func (c *Client) Fetch(ctx context.Context, loc weather.Location, date time.Time) (weather.Fact, error) {
	if c.apiKey == "" {
		return weather.Fact{}, apperrors.Wrap(apperrors.CodeConfiguration, weather.MsgMissingAPIKey, nil)
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	params.Set("apikey", c.apiKey)
	day := ""
	if date.IsZero() {
		params.Set("current", currentFields)
	} else {
		day = date.Format(util.DateLayout)
		params.Set("daily", dailyFields)
		params.Set("start_date", day)
		params.Set("end_date", day)
		params.Set("timezone", "auto")
	}

	body, err := c.get(ctx, params)
	if err != nil {
		return weather.Fact{}, err
	}

	var raw apiResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return weather.Fact{}, malformed(fmt.Errorf("decode forecast response: %w", err))
	}
	if day == "" {
		return raw.Current.fact()
	}
	return raw.Daily.factFor(day)
}

func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, failed(fmt.Errorf("build forecast request: %w", stripURL(err)))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, failed(fmt.Errorf("forecast request failed: %w", stripURL(err)))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, failed(fmt.Errorf("forecast request error: status=%d body=%s", resp.StatusCode, string(payload)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, failed(fmt.Errorf("read forecast response: %w", err))
	}
	return body, nil
}

type apiResponse struct {
	Current *currentBlock `json:"current"`
	Daily   *dailyBlock   `json:"daily"`
}

type currentBlock struct {
	Temperature *float64 `json:"temperature_2m"`
	Apparent    *float64 `json:"apparent_temperature"`
	WeatherCode *int     `json:"weather_code"`
	IsDay       *int     `json:"is_day"`
}

func (b *currentBlock) fact() (weather.Fact, error) {
	if b == nil || b.Temperature == nil || b.Apparent == nil || b.WeatherCode == nil || b.IsDay == nil {
		return weather.Fact{}, malformed(errors.New("current block missing expected fields"))
	}
	return weather.Fact{
		Code:         *b.WeatherCode,
		IsDay:        *b.IsDay != 0,
		TempMin:      *b.Temperature,
		TempMax:      *b.Temperature,
		FeelsLikeMin: *b.Apparent,
		FeelsLikeMax: *b.Apparent,
	}, nil
}

type dailyBlock struct {
	Time        []string   `json:"time"`
	TempMin     []*float64 `json:"temperature_2m_min"`
	TempMax     []*float64 `json:"temperature_2m_max"`
	ApparentMin []*float64 `json:"apparent_temperature_min"`
	ApparentMax []*float64 `json:"apparent_temperature_max"`
	WeatherCode []*int     `json:"weather_code"`
}

func (b *dailyBlock) factFor(day string) (weather.Fact, error) {
	if b == nil {
		return weather.Fact{}, malformed(errors.New("daily block missing"))
	}
	idx := -1
	for i, t := range b.Time {
		if t == day {
			idx = i
			break
		}
	}
	if idx < 0 {
		return weather.Fact{}, apperrors.Wrap(apperrors.CodeNoForecast, weather.MsgNoForecast, nil)
	}

	tMin, okMin := floatAt(b.TempMin, idx)
	tMax, okMax := floatAt(b.TempMax, idx)
	fMin, okFMin := floatAt(b.ApparentMin, idx)
	fMax, okFMax := floatAt(b.ApparentMax, idx)
	if !okMin || !okMax || !okFMin || !okFMax || idx >= len(b.WeatherCode) || b.WeatherCode[idx] == nil {
		return weather.Fact{}, malformed(fmt.Errorf("daily entry %s missing expected fields", day))
	}
	date, err := time.Parse(util.DateLayout, day)
	if err != nil {
		return weather.Fact{}, malformed(err)
	}
	return weather.Fact{
		Date:         date,
		Code:         *b.WeatherCode[idx],
		IsDay:        true,
		TempMin:      tMin,
		TempMax:      tMax,
		FeelsLikeMin: fMin,
		FeelsLikeMax: fMax,
	}, nil
}

func floatAt(values []*float64, idx int) (float64, bool) {
	if idx >= len(values) || values[idx] == nil {
		return 0, false
	}
	return *values[idx], true
}

// stripURL drops the request URL from transport errors so the key stays out of logs.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

func failed(err error) error {
	return apperrors.Wrap(apperrors.CodeUpstream, weather.MsgProviderFailed, err)
}

func malformed(err error) error {
	return apperrors.Wrap(apperrors.CodeUpstream, weather.MsgProviderMalformed, err)
}
