package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel(" error "))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
	assert.Equal(t, "warn", LevelWarn.String())
}

func TestNewJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Config{Level: LevelWarn, Format: "json"})

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("feeding overdue", "profile_id", "p1")
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "feeding overdue", record["msg"])
	assert.Equal(t, "p1", record["profile_id"])
}

func TestInitWithConfigWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")
	require.NoError(t, InitWithConfig(Config{Level: LevelInfo, OutputPath: path, Format: "text"}))
	t.Cleanup(func() { _ = Close() })

	Info("bot started", "tick", "1m")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "bot started")
	assert.Contains(t, string(data), "tick=1m")
}
