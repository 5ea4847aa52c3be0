package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weather-advisor/internal/domain/advisory"
	"github.com/yanqian/weather-advisor/internal/domain/analytics"
	"github.com/yanqian/weather-advisor/internal/domain/auth"
	"github.com/yanqian/weather-advisor/internal/domain/weather"
	apperrors "github.com/yanqian/weather-advisor/pkg/errors"
)

const maxEventBodyBytes = 16 << 10

// Handler wires the HTTP transport to domain services.
type Handler struct {
	weatherSvc   weather.Service
	analyticsSvc analytics.Service
	authSvc      auth.Service
	logger       *slog.Logger
}

// NewHandler constructs the API handler.
func NewHandler(weatherSvc weather.Service, analyticsSvc analytics.Service, authSvc auth.Service, logger *slog.Logger) *Handler {
	return &Handler{
		weatherSvc:   weatherSvc,
		analyticsSvc: analyticsSvc,
		authSvc:      authSvc,
		logger:       logger.With("component", "http.handler"),
	}
}

// Weather resolves the city and returns the forecast with advice.
func (h *Handler) Weather(c *gin.Context) {
	req := weather.Request{
		City:    c.Query("city"),
		Date:    c.Query("date"),
		Purpose: c.Query("purpose"),
	}
	resp, err := h.weatherSvc.Lookup(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Advice evaluates the advisory rules for an already known weather fact.
func (h *Handler) Advice(c *gin.Context) {
	code, err := strconv.Atoi(strings.TrimSpace(c.Query("code")))
	if err != nil {
		abortWithError(c, invalidQuery("Параметр code должен быть целым числом", err))
		return
	}
	tempMin, err := parseTemperature(c.Query("tempMin"))
	if err != nil {
		abortWithError(c, invalidQuery("Параметр tempMin должен быть числом", err))
		return
	}
	tempMax, err := parseTemperature(c.Query("tempMax"))
	if err != nil {
		abortWithError(c, invalidQuery("Параметр tempMax должен быть числом", err))
		return
	}
	if tempMin > tempMax {
		abortWithError(c, invalidQuery("tempMin не может быть больше tempMax", nil))
		return
	}
	isDay := true
	if raw := strings.TrimSpace(c.Query("isDay")); raw != "" {
		isDay, err = strconv.ParseBool(raw)
		if err != nil {
			abortWithError(c, invalidQuery("Параметр isDay должен быть true или false", err))
			return
		}
	}
	purpose := advisory.ParsePurpose(c.Query("purpose"))
	c.JSON(http.StatusOK, advisory.Evaluate(code, isDay, purpose, tempMin, tempMax))
}

// TrackEvent accepts a usage event from the widget.
func (h *Handler) TrackEvent(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxEventBodyBytes)
	var input analytics.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, invalidQuery("Некорректное тело запроса", err))
		return
	}
	ev, err := h.analyticsSvc.Track(c.Request.Context(), input)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted", "id": ev.ID})
}

// AnalyticsReport returns the aggregated dashboard payload.
func (h *Handler) AnalyticsReport(c *gin.Context) {
	report, err := h.analyticsSvc.Report(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	if viewer := dashboardViewer(c); viewer != "" {
		h.logger.Info("analytics report served", "viewer", viewer)
	}
	c.JSON(http.StatusOK, report)
}

// IssueToken exchanges the dashboard password for a bearer token.
func (h *Handler) IssueToken(c *gin.Context) {
	var req auth.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, invalidQuery("invalid request body", err))
		return
	}
	resp, err := h.authSvc.IssueToken(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseTemperature(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

func invalidQuery(message string, err error) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, message, err)
}
