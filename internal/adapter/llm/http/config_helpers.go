package http

import (
	"time"

	"github.com/vrcrush/ai-interview-clone/internal/config"
)

// ParseTimeout parses timeout with fallback chain: provider override > global > default.
// Negative durations are rejected (would cause runtime panic in http.Client.Timeout).
func ParseTimeout(providerOverride *string, globalTimeout string, defaultVal time.Duration) time.Duration {
	if providerOverride != nil && *providerOverride != "" {
		if d, err := time.ParseDuration(*providerOverride); err == nil && d >= 0 {
			return d
		}
	}

	if globalTimeout != "" {
		if d, err := time.ParseDuration(globalTimeout); err == nil && d >= 0 {
			return d
		}
	}

	if defaultVal < 0 {
		return 60 * time.Second
	}
	return defaultVal
}

// BuildRetryConfig creates RetryConfig from provider + global HTTP config.
func BuildRetryConfig(provider config.ProviderConfig, httpCfg config.HTTPConfig) RetryConfig {
	maxRetries := httpCfg.MaxRetries
	if provider.MaxRetries != nil {
		maxRetries = *provider.MaxRetries
	}

	initialBackoff := parseDuration(provider.InitialBackoff, httpCfg.InitialBackoff, 2*time.Second)
	maxBackoff := parseDuration(provider.MaxBackoff, httpCfg.MaxBackoff, 16*time.Second)

	multiplier := httpCfg.BackoffMultiplier
	if multiplier <= 0 {
		multiplier = 2.0
	}

	return RetryConfig{
		MaxRetries:     maxRetries,
		InitialBackoff: initialBackoff,
		MaxBackoff:     maxBackoff,
		Multiplier:     multiplier,
	}
}

// parseDuration parses duration with fallback chain.
// Negative durations are rejected to prevent invalid backoff values.
func parseDuration(override *string, global string, defaultVal time.Duration) time.Duration {
	if override != nil && *override != "" {
		if d, err := time.ParseDuration(*override); err == nil && d >= 0 {
			return d
		}
	}

	if global != "" {
		if d, err := time.ParseDuration(global); err == nil && d >= 0 {
			return d
		}
	}

	if defaultVal < 0 {
		return 2 * time.Second
	}
	return defaultVal
}
