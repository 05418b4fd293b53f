package http

import (
	"fmt"
	"regexp"
)

const (
	// MaxLoggedMessageLength is the maximum length of user or model text
	// to include in logs. Longer text is truncated so chat content does
	// not end up wholesale in log aggregators.
	MaxLoggedMessageLength = 80
)

// TruncateForLogging safely truncates message text for logging purposes.
// Returns the first MaxLoggedMessageLength characters plus a truncation
// indicator if truncated.
func TruncateForLogging(text string) string {
	if len(text) <= MaxLoggedMessageLength {
		return text
	}
	return text[:MaxLoggedMessageLength] + fmt.Sprintf("... [truncated, total length=%d bytes]", len(text))
}

// RedactURLSecrets redacts API keys and other secrets from URLs in error
// messages. This prevents keys from being exposed when URLs with query
// parameters appear in error messages or logs.
//
// Example:
//
//	input:  "https://api.example.com/endpoint?key=secret123&foo=bar"
//	output: "https://api.example.com/endpoint?key=[REDACTED]&foo=bar"
func RedactURLSecrets(text string) string {
	if text == "" {
		return text
	}

	patterns := []string{
		`key=([^&"\s]+)`,
		`apiKey=([^&"\s]+)`,
		`api_key=([^&"\s]+)`,
		`token=([^&"\s]+)`,
		`access_token=([^&"\s]+)`,
	}

	result := text
	for _, pattern := range patterns {
		re := regexp.MustCompile(pattern)
		paramName := pattern[:len(pattern)-len(`=([^&"\s]+)`)]
		result = re.ReplaceAllString(result, paramName+"=[REDACTED]")
	}

	return result
}
