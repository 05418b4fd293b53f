package httpapi

import (
	"math"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultRateLimit is the per-client request budget per window.
	DefaultRateLimit = 100
	// DefaultRateWindow is the fixed-window span.
	DefaultRateWindow = time.Hour
)

type windowState struct {
	count     int
	resetTime time.Time
}

// RateLimiter is a per-client fixed-window limiter. State lives in
// memory and resets on restart.
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string]*windowState
	now     func() time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window.
// Non-positive arguments select the defaults.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	return &RateLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string]*windowState),
		now:     time.Now,
	}
}

// Allow records one request for the client and reports whether it fits
// the current window. When denied, retryAfter holds the whole seconds
// until the window resets, rounded up.
func (rl *RateLimiter) Allow(client string) (allowed bool, retryAfter int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	state, ok := rl.clients[client]
	if !ok {
		state = &windowState{resetTime: now.Add(rl.window)}
		rl.clients[client] = state
	}

	if now.After(state.resetTime) {
		state.count = 0
		state.resetTime = now.Add(rl.window)
	}

	if state.count >= rl.limit {
		seconds := int(math.Ceil(state.resetTime.Sub(now).Seconds()))
		if seconds < 1 {
			seconds = 1
		}
		return false, seconds
	}

	state.count++
	return true, 0
}

// clientIP extracts the caller identity for rate limiting: the first
// X-Forwarded-For hop when present, else the remote address without port.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.IndexByte(fwd, ','); idx >= 0 {
			fwd = fwd[:idx]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
