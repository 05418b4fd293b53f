// Package observability provides the application-level structured
// logger used by the conversation core and the HTTP surface. It mirrors
// the transport logger's human and JSON formats so one log format
// setting governs the whole process.
package observability

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
)

// Level is the logging verbosity threshold.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

// Format selects the log output encoding.
type Format int

const (
	FormatHuman Format = iota
	FormatJSON
)

// ParseFormat maps a config string onto a Format. Unknown values fall
// back to human output.
func ParseFormat(s string) Format {
	if strings.EqualFold(s, "json") {
		return FormatJSON
	}
	return FormatHuman
}

// ParseLevel maps a config string onto a Level. Unknown values fall
// back to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warning", "warn":
		return LevelWarning
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger writes leveled, structured log lines via the standard logger.
// It implements the conversation core's Logger port.
type Logger struct {
	level  Level
	format Format
	out    func(string)
}

// NewLogger creates a logger with the given threshold and format.
func NewLogger(level Level, format Format) *Logger {
	return &Logger{level: level, format: format, out: func(line string) { log.Print(line) }}
}

// SetOutput redirects log lines (for testing).
func (l *Logger) SetOutput(out func(string)) {
	l.out = out
}

// LogInfo logs an informational event.
func (l *Logger) LogInfo(ctx context.Context, message string, fields map[string]interface{}) {
	l.write(LevelInfo, "info", message, fields)
}

// LogWarning logs a warning event.
func (l *Logger) LogWarning(ctx context.Context, message string, fields map[string]interface{}) {
	l.write(LevelWarning, "warning", message, fields)
}

// LogError logs an error event.
func (l *Logger) LogError(ctx context.Context, message string, fields map[string]interface{}) {
	l.write(LevelError, "error", message, fields)
}

func (l *Logger) write(level Level, label, message string, fields map[string]interface{}) {
	if level < l.level {
		return
	}

	if l.format == FormatJSON {
		entry := map[string]interface{}{
			"level":     label,
			"message":   message,
			"timestamp": time.Now().Format(time.RFC3339),
		}
		for k, v := range fields {
			entry[k] = v
		}
		data, err := json.Marshal(entry)
		if err != nil {
			l.out(fmt.Sprintf(`{"level":%q,"message":%q}`, label, message))
			return
		}
		l.out(string(data))
		return
	}

	l.out(fmt.Sprintf("[%s] %s%s", strings.ToUpper(label), message, formatFields(fields)))
}

// formatFields renders fields as " (k=v, k=v)" with sorted keys so the
// human format is stable.
func formatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, fields[k])
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
