package http

import (
	"sync"
	"time"
)

// Metrics tracks aggregate statistics for model API calls.
type Metrics interface {
	// RecordRequest records one outbound call attempt.
	RecordRequest(provider, model string)

	// RecordDuration records wall time for a completed call.
	RecordDuration(provider, model string, duration time.Duration)

	// RecordTokens records token usage reported by the API.
	RecordTokens(provider, model string, tokensIn, tokensOut int)

	// RecordError records a failed call by error category.
	RecordError(provider, model string, errType ErrorType)

	// GetStats returns a snapshot of the current counters.
	GetStats() Stats
}

// Stats is an aggregate snapshot across all providers.
type Stats struct {
	TotalRequests  int
	TotalTokensIn  int
	TotalTokensOut int
	TotalDuration  time.Duration
	ErrorCount     int
	ErrorsByType   map[ErrorType]int
	ByProvider     map[string]ProviderStats
}

// ProviderStats holds the per-provider slice of the counters.
type ProviderStats struct {
	Requests  int
	TokensIn  int
	TokensOut int
	Duration  time.Duration
	Errors    int
}

// DefaultMetrics is an in-memory Metrics implementation. It exists so a
// single process can report call volume, token usage, and the failure
// mix (auth vs rate limit vs overload) at shutdown without an external
// metrics backend.
type DefaultMetrics struct {
	mu    sync.RWMutex
	stats Stats
}

// NewDefaultMetrics creates an empty tracker.
func NewDefaultMetrics() *DefaultMetrics {
	return &DefaultMetrics{
		stats: Stats{
			ErrorsByType: make(map[ErrorType]int),
			ByProvider:   make(map[string]ProviderStats),
		},
	}
}

// update applies fn to the per-provider bucket under the lock.
func (m *DefaultMetrics) update(provider string, fn func(*ProviderStats)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ps := m.stats.ByProvider[provider]
	fn(&ps)
	m.stats.ByProvider[provider] = ps
}

func (m *DefaultMetrics) RecordRequest(provider, model string) {
	m.update(provider, func(ps *ProviderStats) {
		m.stats.TotalRequests++
		ps.Requests++
	})
}

func (m *DefaultMetrics) RecordDuration(provider, model string, duration time.Duration) {
	m.update(provider, func(ps *ProviderStats) {
		m.stats.TotalDuration += duration
		ps.Duration += duration
	})
}

func (m *DefaultMetrics) RecordTokens(provider, model string, tokensIn, tokensOut int) {
	m.update(provider, func(ps *ProviderStats) {
		m.stats.TotalTokensIn += tokensIn
		m.stats.TotalTokensOut += tokensOut
		ps.TokensIn += tokensIn
		ps.TokensOut += tokensOut
	})
}

func (m *DefaultMetrics) RecordError(provider, model string, errType ErrorType) {
	m.update(provider, func(ps *ProviderStats) {
		m.stats.ErrorCount++
		m.stats.ErrorsByType[errType]++
		ps.Errors++
	})
}

// GetStats returns a deep copy so callers never race the live counters.
func (m *DefaultMetrics) GetStats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := m.stats
	snapshot.ErrorsByType = make(map[ErrorType]int, len(m.stats.ErrorsByType))
	for k, v := range m.stats.ErrorsByType {
		snapshot.ErrorsByType[k] = v
	}
	snapshot.ByProvider = make(map[string]ProviderStats, len(m.stats.ByProvider))
	for k, v := range m.stats.ByProvider {
		snapshot.ByProvider[k] = v
	}
	return snapshot
}
