package http_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	llmhttp "github.com/vrcrush/ai-interview-clone/internal/adapter/llm/http"
)

func TestTruncateForLogging(t *testing.T) {
	short := "what are your skills?"
	assert.Equal(t, short, llmhttp.TruncateForLogging(short))

	long := strings.Repeat("a", 500)
	got := llmhttp.TruncateForLogging(long)
	assert.True(t, strings.HasPrefix(got, strings.Repeat("a", llmhttp.MaxLoggedMessageLength)))
	assert.Contains(t, got, "truncated")
	assert.Contains(t, got, "500")
}

func TestRedactURLSecrets(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"key parameter",
			"https://api.example.com/v1?key=secret123&foo=bar",
			"https://api.example.com/v1?key=[REDACTED]&foo=bar",
		},
		{
			"api_key parameter",
			"call failed: https://x.test/?api_key=abcdef",
			"call failed: https://x.test/?api_key=[REDACTED]",
		},
		{
			"no secrets",
			"plain error message",
			"plain error message",
		},
		{
			"empty",
			"",
			"",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, llmhttp.RedactURLSecrets(tc.in))
		})
	}
}

func TestRedactAPIKey(t *testing.T) {
	logger := llmhttp.NewDefaultLogger(llmhttp.LogLevelInfo, llmhttp.LogFormatHuman, true)

	assert.Equal(t, "[REDACTED-6789]", logger.RedactAPIKey("sk-ant-123456789"))
	assert.Equal(t, "[REDACTED]", logger.RedactAPIKey("abc"))

	noRedact := llmhttp.NewDefaultLogger(llmhttp.LogLevelInfo, llmhttp.LogFormatHuman, false)
	assert.Equal(t, "sk-ant-123456789", noRedact.RedactAPIKey("sk-ant-123456789"))
}
