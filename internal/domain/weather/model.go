package weather

import (
	"time"

	"github.com/yanqian/weather-advisor/internal/domain/advisory"
)

// Request captures the query accepted by the lookup endpoint.
type Request struct {
	City    string `json:"city"`
	Date    string `json:"date"`
	Purpose string `json:"purpose"`
}

// Location is a geocoded city.
type Location struct {
	Name      string
	Country   string
	Latitude  float64
	Longitude float64
}

// Fact holds the weather values for one place and moment. Date is zero for
// current conditions.
type Fact struct {
	Date         time.Time
	Code         int
	IsDay        bool
	TempMin      float64
	TempMax      float64
	FeelsLikeMin float64
	FeelsLikeMax float64
}

// Response is serialized back to API consumers. Current lookups fill Temp,
// FeelsLike and IsDay; dated lookups fill the min/max ranges.
type Response struct {
	City         string   `json:"city"`
	Country      string   `json:"country,omitempty"`
	Date         string   `json:"date"`
	Temp         *float64 `json:"temp,omitempty"`
	FeelsLike    *float64 `json:"feelsLike,omitempty"`
	IsDay        *bool    `json:"isDay,omitempty"`
	TempMin      *float64 `json:"tempMin,omitempty"`
	TempMax      *float64 `json:"tempMax,omitempty"`
	FeelsLikeMin *float64 `json:"feelsLikeMin,omitempty"`
	FeelsLikeMax *float64 `json:"feelsLikeMax,omitempty"`
	WeatherCode  int      `json:"weatherCode"`
	Purpose      string   `json:"purpose"`

	advisory.Result
}

// Config wires runtime limits for the lookup service.
type Config struct {
	MaxForecastDays int
}
