package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestNew_WritesJSONWithServiceFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Options{App: "hris-attendance", Version: "v1", Env: "test", Level: "info"})

	l.Debug("hidden")
	assert.Zero(t, buf.Len())

	l.Info("recorded", "user_id", "u-1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hris-attendance", entry["app"])
	assert.Equal(t, "test", entry["env"])
	assert.Equal(t, "u-1", entry["user_id"])
	assert.Contains(t, buf.String(), "recorded")
}
