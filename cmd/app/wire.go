//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/weather-advisor/internal/bootstrap"
	"github.com/yanqian/weather-advisor/internal/domain/analytics"
	"github.com/yanqian/weather-advisor/internal/domain/auth"
	"github.com/yanqian/weather-advisor/internal/domain/weather"
	"github.com/yanqian/weather-advisor/internal/infra/config"
	"github.com/yanqian/weather-advisor/internal/infra/geo/nominatim"
	"github.com/yanqian/weather-advisor/internal/infra/weatherapi/openmeteo"
	httpiface "github.com/yanqian/weather-advisor/internal/interface/http"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		provideLogger,
		provideWeatherConfig,
		provideGeoResolver,
		provideWeatherProvider,
		provideAnalyticsConfig,
		provideAnalyticsRepository,
		provideEventQueue,
		provideAuthConfig,
		provideIDTokenVerifier,
		provideAssetSource,
		weather.NewService,
		analytics.NewService,
		auth.NewService,
		wire.Bind(new(weather.GeoResolver), new(*nominatim.Client)),
		wire.Bind(new(weather.Provider), new(*openmeteo.Client)),
		httpiface.NewHandler,
		httpiface.NewStaticHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
