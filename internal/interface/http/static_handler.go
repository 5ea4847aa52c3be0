package http

import (
	"errors"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weather-advisor/internal/infra/assets"
)

var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "application/javascript; charset=utf-8",
	".json": "application/json; charset=utf-8",
	".svg":  "image/svg+xml",
	".png":  "image/png",
	".ico":  "image/x-icon",
	".txt":  "text/plain; charset=utf-8",
}

// StaticHandler serves the widget's files for every unmatched path.
type StaticHandler struct {
	source assets.Source
	logger *slog.Logger
}

// NewStaticHandler constructs the fallback handler.
func NewStaticHandler(source assets.Source, logger *slog.Logger) *StaticHandler {
	return &StaticHandler{
		source: source,
		logger: logger.With("component", "http.static"),
	}
}

// Serve is registered as the router's NoRoute handler.
func (h *StaticHandler) Serve(c *gin.Context) {
	if c.Request.Method != http.MethodGet {
		methodNotAllowed(c)
		return
	}

	name := "index.html"
	if p := c.Request.URL.Path; p != "/" && p != "/index.html" {
		cleaned, ok := assets.CleanName(p)
		if !ok {
			notFound(c)
			return
		}
		name = cleaned
	}

	data, err := h.source.Read(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, assets.ErrNotFound) {
			notFound(c)
			return
		}
		h.logger.Error("asset read failed", "name", name, "error", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.Data(http.StatusOK, contentTypeFor(name), data)
}

func contentTypeFor(name string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

func notFound(c *gin.Context) {
	c.String(http.StatusNotFound, "Not found")
}

func methodNotAllowed(c *gin.Context) {
	c.String(http.StatusMethodNotAllowed, "Method not allowed")
}
