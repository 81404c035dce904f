package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Writer: &buf, Level: slog.LevelWarn})
	logger.Info("hidden")
	logger.Warn("lots refresh failed", "source", "webhook")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "lots refresh failed", entry["msg"])
	require.Equal(t, "webhook", entry["source"])
}

func TestNewDev(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Writer: &buf, Dev: true})
	logger.Info("listening", "addr", ":8080")
	require.Contains(t, buf.String(), "listening")
	require.Contains(t, buf.String(), ":8080")
}
