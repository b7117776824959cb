package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		for _, level := range []string{"debug", "info", "warn", "error", "invalid"} {
			l := New(Config{Level: level, Format: format})
			assert.NotNil(t, l, "format=%s level=%s", format, level)
		}
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestWithComponent_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Format: "json", Output: &buf})

	l.WithComponent("datasync").WithRun("run-1").Info("rebuild finished", "rows", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "rebuild finished", record["msg"])
	assert.Equal(t, "datasync", record["component"])
	assert.Equal(t, "run-1", record["run_id"])
	assert.Equal(t, float64(3), record["rows"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn", Format: "text", Output: &buf})

	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.Equal(t, slog.LevelWarn, l.WithComponent("x").Level())
}

func TestDiscard(t *testing.T) {
	l := Discard()
	require.NotNil(t, l)
	l.Error("nothing to see")
}
