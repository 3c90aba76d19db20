package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productos/internal/config"
	"productos/internal/logging"
)

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, config.LogFormatJSON, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Error("boom", slog.Any("error", errors.New("db closed")))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "boom", entry["msg"])
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "db closed", entry["error"])
}

func TestTextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, config.LogFormatText, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("slow request", slog.String("path", "/api/productos"))

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "slow request")
	assert.Contains(t, buf.String(), "/api/productos")
}
