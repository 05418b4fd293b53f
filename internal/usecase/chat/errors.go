package chat

import "fmt"

// FailureKind classifies a model-provider failure. The guard never
// retries any of these; retry policy, if desired, belongs to the
// transport layer below the provider port.
type FailureKind int

const (
	FailureAuth FailureKind = iota
	FailureRateLimited
	FailureOverloaded
	FailureUnknown
)

// String returns the kind's wire-stable name.
func (k FailureKind) String() string {
	switch k {
	case FailureAuth:
		return "provider_auth"
	case FailureRateLimited:
		return "provider_rate_limited"
	case FailureOverloaded:
		return "provider_overloaded"
	default:
		return "provider_unknown"
	}
}

// UserMessage returns the fixed end-user-facing message for the kind.
// Provider payload details never reach the user.
func (k FailureKind) UserMessage() string {
	switch k {
	case FailureAuth:
		return "Invalid API key. Please check your Anthropic API key configuration."
	case FailureRateLimited:
		return "Rate limit exceeded. Please try again in a moment."
	case FailureOverloaded:
		return "Service temporarily overloaded. Please try again shortly."
	default:
		return "An error occurred while generating the response. Please try again."
	}
}

// ProviderFailure is a structured model-call failure surfaced to the
// caller. Message carries internal detail for logs, never for users.
type ProviderFailure struct {
	Kind    FailureKind
	Message string
	cause   error
}

// NewProviderFailure constructs a failure wrapping the underlying cause.
func NewProviderFailure(kind FailureKind, message string, cause error) *ProviderFailure {
	return &ProviderFailure{Kind: kind, Message: message, cause: cause}
}

// Error implements the error interface.
func (f *ProviderFailure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Unwrap exposes the underlying transport error.
func (f *ProviderFailure) Unwrap() error {
	return f.cause
}

// Is implements errors.Is matching by kind.
func (f *ProviderFailure) Is(target error) bool {
	t, ok := target.(*ProviderFailure)
	if !ok {
		return false
	}
	return f.Kind == t.Kind
}
