package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONLoggerCarriesService(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, "info", "json")
	log.Info("lookup complete", "city", "Москва")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "weather-advisor", entry["service"])
	require.Equal(t, "Москва", entry["city"])
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, "warn", "json")
	log.Info("hidden")
	require.Zero(t, buf.Len())

	log.Warn("shown")
	require.NotZero(t, buf.Len())
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, "debug", "TEXT")
	log.Debug("hello")
	require.Contains(t, buf.String(), "hello")
	require.NotEqual(t, byte('{'), buf.Bytes()[0])
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	require.Equal(t, slog.LevelError, parseLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}
