// Package static provides a mock model provider that returns a fixed,
// pre-determined reply. This is useful for exercising the conversation
// pipeline and the HTTP surface without making live API calls.
package static

import (
	"context"

	"github.com/vrcrush/ai-interview-clone/internal/domain"
	"github.com/vrcrush/ai-interview-clone/internal/usecase/chat"
)

// DefaultReply is returned when no custom reply is configured.
const DefaultReply = "This is a canned reply from the static provider. Ask me about my experience!"

// Provider implements the chat.ModelProvider port with a fixed reply.
type Provider struct {
	reply string
}

// NewProvider constructs a static Provider. An empty reply selects
// DefaultReply.
func NewProvider(reply string) *Provider {
	if reply == "" {
		reply = DefaultReply
	}
	return &Provider{reply: reply}
}

// Complete returns the fixed reply with synthetic token counts derived
// from the payload sizes.
func (p *Provider) Complete(ctx context.Context, req chat.CompletionRequest) (domain.ModelReply, error) {
	if err := ctx.Err(); err != nil {
		return domain.ModelReply{}, err
	}

	inputChars := len(req.SystemPrompt) + len(req.UserMessage)
	for _, turn := range req.History {
		inputChars += len(turn.Content)
	}

	// Rough 4-chars-per-token approximation keeps usage numbers plausible.
	return domain.ModelReply{
		Text:         p.reply,
		InputTokens:  inputChars / 4,
		OutputTokens: len(p.reply) / 4,
	}, nil
}
