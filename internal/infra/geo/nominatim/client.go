package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/weather-advisor/internal/domain/weather"
	apperrors "github.com/yanqian/weather-advisor/pkg/errors"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Config controls the geocoder client.
type Config struct {
	BaseURL   string
	UserAgent string
	Language  string
	Timeout   time.Duration
}

// Client resolves city names through the Nominatim search API.
type Client struct {
	baseURL    string
	userAgent  string
	language   string
	httpClient *http.Client
}

// NewClient builds a geocoder client.
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
		baseURL:   strings.TrimRight(base, "/"),
		userAgent: cfg.UserAgent,
		language:  cfg.Language,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Resolve returns the single best match for city.
func (c *Client) Resolve(ctx context.Context, city string) (weather.Location, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return weather.Location{}, upstream(fmt.Errorf("build geocode request: %w", err))
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.language != "" {
		req.Header.Set("Accept-Language", c.language)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return weather.Location{}, upstream(fmt.Errorf("geocode request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return weather.Location{}, upstream(fmt.Errorf("geocode request error: status=%d body=%s", resp.StatusCode, string(payload)))
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return weather.Location{}, upstream(fmt.Errorf("decode geocode response: %w", err))
	}
	if len(places) == 0 {
		return weather.Location{}, apperrors.Wrap(apperrors.CodeNotFound, weather.MsgCityNotFound, nil)
	}
	return places[0].location(city)
}

type place struct {
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Address     address `json:"address"`
}

type address struct {
	Country string `json:"country"`
}

func (p place) location(query string) (weather.Location, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(p.Lat), 64)
	if err != nil {
		return weather.Location{}, upstream(fmt.Errorf("parse latitude %q: %w", p.Lat, err))
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(p.Lon), 64)
	if err != nil {
		return weather.Location{}, upstream(fmt.Errorf("parse longitude %q: %w", p.Lon, err))
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = query
	}
	return weather.Location{
		Name:      name,
		Country:   strings.TrimSpace(p.Address.Country),
		Latitude:  lat,
		Longitude: lon,
	}, nil
}

func upstream(err error) error {
	return apperrors.Wrap(apperrors.CodeUpstream, weather.MsgGeocodingFailed, err)
}
