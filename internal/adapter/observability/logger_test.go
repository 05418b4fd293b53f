package observability

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogger(level Level, format Format) (*Logger, *[]string) {
	logger := NewLogger(level, format)
	var lines []string
	logger.SetOutput(func(line string) { lines = append(lines, line) })
	return logger, &lines
}

func TestLoggerHumanFormat(t *testing.T) {
	logger, lines := captureLogger(LevelInfo, FormatHuman)

	logger.LogWarning(context.Background(), "suspicious message intercepted", map[string]interface{}{
		"rule":    "ignore_instructions",
		"attempt": 1,
	})

	require.Len(t, *lines, 1)
	assert.Equal(t, "[WARNING] suspicious message intercepted (attempt=1, rule=ignore_instructions)", (*lines)[0])
}

func TestLoggerJSONFormat(t *testing.T) {
	logger, lines := captureLogger(LevelInfo, FormatJSON)

	logger.LogInfo(context.Background(), "server started", map[string]interface{}{
		"port": 3001,
	})

	require.Len(t, *lines, 1)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte((*lines)[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "server started", entry["message"])
	assert.Equal(t, float64(3001), entry["port"])
	assert.NotEmpty(t, entry["timestamp"])
}

func TestLoggerLevelThreshold(t *testing.T) {
	logger, lines := captureLogger(LevelWarning, FormatHuman)

	logger.LogInfo(context.Background(), "suppressed", nil)
	logger.LogWarning(context.Background(), "emitted", nil)
	logger.LogError(context.Background(), "also emitted", nil)

	require.Len(t, *lines, 2)
	assert.Equal(t, "[WARNING] emitted", (*lines)[0])
	assert.Equal(t, "[ERROR] also emitted", (*lines)[1])
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatHuman, ParseFormat("human"))
	assert.Equal(t, FormatHuman, ParseFormat(""))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarning, ParseLevel("warn"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("anything"))
}
