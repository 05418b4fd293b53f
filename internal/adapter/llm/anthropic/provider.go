// Package anthropic adapts the Anthropic Messages API to the
// conversation core's ModelProvider port.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"time"

	llmhttp "github.com/vrcrush/ai-interview-clone/internal/adapter/llm/http"
	"github.com/vrcrush/ai-interview-clone/internal/domain"
	"github.com/vrcrush/ai-interview-clone/internal/usecase/chat"
)

const providerName = "anthropic"

// Client abstracts the Anthropic HTTP client behaviour we need.
type Client interface {
	Call(ctx context.Context, system string, turns []Message, userMessage string) (*APIResponse, error)
}

// Provider implements the chat.ModelProvider port on top of the
// Anthropic Messages API. Transport errors are translated into the
// core's failure taxonomy here so the guard never sees HTTP detail.
type Provider struct {
	client  Client
	logger  llmhttp.Logger
	metrics llmhttp.Metrics
}

// NewProvider constructs a Provider around the supplied client.
func NewProvider(client Client, logger llmhttp.Logger, metrics llmhttp.Metrics) *Provider {
	return &Provider{
		client:  client,
		logger:  logger,
		metrics: metrics,
	}
}

// Complete sends one conversation turn to Anthropic.
func (p *Provider) Complete(ctx context.Context, req chat.CompletionRequest) (domain.ModelReply, error) {
	if p.client == nil {
		return domain.ModelReply{}, chat.NewProviderFailure(chat.FailureUnknown, "anthropic client missing", nil)
	}

	turns := make([]Message, len(req.History))
	for i, turn := range req.History {
		turns[i] = Message{Role: string(turn.Role), Content: turn.Content}
	}

	if p.logger != nil {
		p.logger.LogRequest(ctx, llmhttp.RequestLog{
			Provider:    providerName,
			Timestamp:   time.Now(),
			PromptChars: len(req.SystemPrompt) + len(req.UserMessage),
			Turns:       len(turns) + 1,
		})
	}
	if p.metrics != nil {
		p.metrics.RecordRequest(providerName, "")
	}

	start := time.Now()
	resp, err := p.client.Call(ctx, req.SystemPrompt, turns, req.UserMessage)
	elapsed := time.Since(start)

	if err != nil {
		if p.metrics != nil {
			p.metrics.RecordError(providerName, "", errType(err))
		}
		return domain.ModelReply{}, translate(err)
	}

	if p.metrics != nil {
		p.metrics.RecordDuration(providerName, resp.Model, elapsed)
		p.metrics.RecordTokens(providerName, resp.Model, resp.TokensIn, resp.TokensOut)
	}
	if p.logger != nil {
		p.logger.LogResponse(ctx, llmhttp.ResponseLog{
			Provider:     providerName,
			Model:        resp.Model,
			Timestamp:    time.Now(),
			Duration:     elapsed,
			TokensIn:     resp.TokensIn,
			TokensOut:    resp.TokensOut,
			FinishReason: resp.StopReason,
		})
	}

	return domain.ModelReply{
		Text:         resp.Text,
		InputTokens:  resp.TokensIn,
		OutputTokens: resp.TokensOut,
	}, nil
}

// errType extracts the transport error category for metrics.
func errType(err error) llmhttp.ErrorType {
	var httpErr *llmhttp.Error
	if errors.As(err, &httpErr) {
		return httpErr.Type
	}
	return llmhttp.ErrTypeUnknown
}

// translate maps transport errors onto the core failure taxonomy.
func translate(err error) error {
	var httpErr *llmhttp.Error
	if !errors.As(err, &httpErr) {
		return chat.NewProviderFailure(chat.FailureUnknown, err.Error(), err)
	}

	detail := fmt.Sprintf("%s (status %d)", httpErr.Message, httpErr.StatusCode)
	switch httpErr.Type {
	case llmhttp.ErrTypeAuthentication:
		return chat.NewProviderFailure(chat.FailureAuth, detail, err)
	case llmhttp.ErrTypeRateLimit:
		return chat.NewProviderFailure(chat.FailureRateLimited, detail, err)
	case llmhttp.ErrTypeServiceUnavailable:
		return chat.NewProviderFailure(chat.FailureOverloaded, detail, err)
	default:
		return chat.NewProviderFailure(chat.FailureUnknown, detail, err)
	}
}
