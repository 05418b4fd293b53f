package chat

import (
	"context"

	"github.com/vrcrush/ai-interview-clone/internal/domain"
)

// CompletionRequest is the provider-agnostic payload for one model
// invocation: the rendered system prompt, the capped conversation
// history, and the sanitized user message.
type CompletionRequest struct {
	SystemPrompt string
	History      []domain.ConversationTurn
	UserMessage  string
}

// ModelProvider is the port to the language-model API. Implementations
// translate transport errors into *ProviderFailure; any other error is
// treated as FailureUnknown by the guard.
type ModelProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (domain.ModelReply, error)
}

// Logger is the structured logging port for guard-level events. A nil
// logger disables logging.
type Logger interface {
	LogInfo(ctx context.Context, message string, fields map[string]interface{})
	LogWarning(ctx context.Context, message string, fields map[string]interface{})
}
