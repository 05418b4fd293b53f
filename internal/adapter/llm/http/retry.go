package http

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// RetryConfig holds configuration for retry logic. Retry lives here in
// the transport layer only; the conversation guard itself never retries
// a failed call. MaxRetries of 0 disables retries entirely.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
}

// DefaultRetryConfig returns sensible default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     2,
		InitialBackoff: 2 * time.Second,
		MaxBackoff:     16 * time.Second,
		Multiplier:     2.0,
	}
}

// ExponentialBackoff computes the wait before the given attempt:
// min(initial * multiplier^attempt, max), jittered by ±25% so parallel
// clients do not thunder in lockstep.
func ExponentialBackoff(attempt int, config RetryConfig) time.Duration {
	base := float64(config.InitialBackoff) * math.Pow(config.Multiplier, float64(attempt))
	base = math.Min(base, float64(config.MaxBackoff))

	jitter := (rand.Float64() - 0.5) * 0.5 * base
	wait := math.Min(base+jitter, float64(config.MaxBackoff))
	return time.Duration(math.Max(wait, 0))
}

// ShouldRetry reports whether the error is worth another attempt. Only
// typed transport errors flagged retryable qualify; anything else fails
// the call immediately.
func ShouldRetry(err error) bool {
	var httpErr *Error
	if err != nil && errors.As(err, &httpErr) {
		return httpErr.IsRetryable()
	}
	return false
}

// Operation is a function that can be retried.
type Operation func(ctx context.Context) error

// RetryWithBackoff runs operation up to 1+MaxRetries times, sleeping the
// jittered backoff between attempts. Context cancellation aborts both
// the sleep and any further attempts.
func RetryWithBackoff(ctx context.Context, operation Operation, config RetryConfig) error {
	var lastErr error

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = operation(ctx)
		if lastErr == nil {
			return nil
		}
		if !ShouldRetry(lastErr) || attempt >= config.MaxRetries {
			return lastErr
		}

		select {
		case <-time.After(ExponentialBackoff(attempt, config)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return lastErr
}
