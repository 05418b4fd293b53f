// Package http provides shared transport plumbing for LLM provider
// clients: typed errors, retry with backoff, structured call logging,
// and in-memory call metrics. The conversation core never imports this
// package; providers translate these errors into the core's failure
// taxonomy at the adapter boundary.
package http

import "fmt"

// ErrorType categorizes a failed provider call.
type ErrorType int

const (
	ErrTypeAuthentication ErrorType = iota
	ErrTypeRateLimit
	ErrTypeServiceUnavailable
	ErrTypeInvalidRequest
	ErrTypeTimeout
	ErrTypeUnknown
)

// String returns a human-readable description of the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrTypeAuthentication:
		return "authentication error"
	case ErrTypeRateLimit:
		return "rate limit exceeded"
	case ErrTypeServiceUnavailable:
		return "service unavailable"
	case ErrTypeInvalidRequest:
		return "invalid request"
	case ErrTypeTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error is a provider call failure with enough context for the retry
// loop (Retryable) and for translation into a user-facing failure kind
// (Type). Message carries the provider's own wording and is logged, not
// shown to end users.
type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Retryable  bool
	Provider   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s (status: %d)", e.Provider, e.Type.String(), e.Message, e.StatusCode)
}

// Is matches on Type only, so errors.Is works against a bare sentinel
// like NewRateLimitError("", "") regardless of message or provider.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// IsRetryable reports whether the retry loop may attempt the call again.
func (e *Error) IsRetryable() bool {
	return e.Retryable
}

// errorDefaults fixes the canonical status code and retry policy per
// category. Auth and invalid-request failures never heal on retry; rate
// limits, outages, and timeouts can.
var errorDefaults = map[ErrorType]struct {
	status    int
	retryable bool
}{
	ErrTypeAuthentication:     {401, false},
	ErrTypeRateLimit:          {429, true},
	ErrTypeServiceUnavailable: {503, true},
	ErrTypeInvalidRequest:     {400, false},
	ErrTypeTimeout:            {0, true},
}

func newError(errType ErrorType, provider, message string) *Error {
	d := errorDefaults[errType]
	return &Error{
		Type:       errType,
		Message:    message,
		StatusCode: d.status,
		Retryable:  d.retryable,
		Provider:   provider,
	}
}

// NewAuthenticationError creates an authentication failure.
func NewAuthenticationError(provider, message string) *Error {
	return newError(ErrTypeAuthentication, provider, message)
}

// NewRateLimitError creates a rate limit failure.
func NewRateLimitError(provider, message string) *Error {
	return newError(ErrTypeRateLimit, provider, message)
}

// NewServiceUnavailableError creates a service outage failure.
func NewServiceUnavailableError(provider, message string) *Error {
	return newError(ErrTypeServiceUnavailable, provider, message)
}

// NewInvalidRequestError creates a malformed request failure.
func NewInvalidRequestError(provider, message string) *Error {
	return newError(ErrTypeInvalidRequest, provider, message)
}

// NewTimeoutError creates a timeout failure.
func NewTimeoutError(provider, message string) *Error {
	return newError(ErrTypeTimeout, provider, message)
}
