package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weather-advisor/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, static *StaticHandler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		errorHandlingMiddleware(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/healthz", handler.Health)

	api := router.Group("/api")
	{
		api.GET("/weather", handler.Weather)
		api.GET("/advice", handler.Advice)
		api.POST("/events", handler.TrackEvent)
		api.POST("/auth/token", handler.IssueToken)

		if cfg.Auth.Enabled {
			api.GET("/analytics", authMiddleware(handler.authSvc), handler.AnalyticsReport)
		} else {
			api.GET("/analytics", handler.AnalyticsReport)
		}
	}

	router.NoMethod(methodNotAllowed)
	router.NoRoute(static.Serve)

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
