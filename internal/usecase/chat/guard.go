// Package chat contains the conversation core: the guard that takes a
// recruiter message through sanitize → screen → prompt → model →
// response screening, plus the prompt builder, the canned-response
// catalog, and the provider failure taxonomy.
package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/vrcrush/ai-interview-clone/internal/domain"
	"github.com/vrcrush/ai-interview-clone/internal/knowledge"
	"github.com/vrcrush/ai-interview-clone/internal/screening"
)

// Reply is the outcome of one guarded conversation turn.
type Reply struct {
	Text         string
	Blocked      bool // inbound screening fired; the model was never called
	Filtered     bool // outbound screening replaced the model reply
	InputTokens  int
	OutputTokens int
}

// Guard orchestrates a conversation turn. It holds only immutable state
// (knowledge snapshot, compiled matchers, rendered prompt pieces) and is
// safe for concurrent use across requests.
type Guard struct {
	kb           knowledge.Base
	provider     ModelProvider
	systemPrompt string
	catalog      *ResponseCatalog
	injection    *screening.Matcher
	leakage      *screening.Matcher
	logger       Logger
}

// GuardOptions configures optional Guard collaborators.
type GuardOptions struct {
	Logger Logger
}

// NewGuard wires a Guard for the given knowledge snapshot and provider.
// The knowledge base is injected, never looked up ambiently, so guards
// are unit-testable with synthetic documents.
func NewGuard(kb knowledge.Base, provider ModelProvider, opts GuardOptions) (*Guard, error) {
	if provider == nil {
		return nil, errors.New("model provider missing")
	}

	prompts, err := NewSystemPromptBuilder()
	if err != nil {
		return nil, err
	}
	systemPrompt, err := prompts.Build(kb)
	if err != nil {
		return nil, fmt.Errorf("render system prompt: %w", err)
	}

	injection, err := screening.NewMatcher(screening.InjectionRules())
	if err != nil {
		return nil, fmt.Errorf("compile injection rules: %w", err)
	}
	leakage, err := screening.NewMatcher(screening.LeakageRules())
	if err != nil {
		return nil, fmt.Errorf("compile leakage rules: %w", err)
	}

	return &Guard{
		kb:           kb,
		provider:     provider,
		systemPrompt: systemPrompt,
		catalog:      NewResponseCatalog(kb.Name()),
		injection:    injection,
		leakage:      leakage,
		logger:       opts.Logger,
	}, nil
}

// Responses exposes the guard's canned-response catalog.
func (g *Guard) Responses() *ResponseCatalog {
	return g.catalog
}

// Respond runs one conversation turn through the full pipeline.
//
// For any blocked input the provider is never contacted; for any
// non-blocked input the returned text has passed leak screening. A
// provider failure is returned as *ProviderFailure without retry.
func (g *Guard) Respond(ctx context.Context, message string, history []domain.ConversationTurn) (Reply, error) {
	sanitized := screening.Sanitize(message)

	if rule, hit := g.injection.Match(sanitized); hit {
		g.warn(ctx, "suspicious message intercepted", map[string]interface{}{
			"rule":    rule,
			"message": truncate(sanitized),
		})
		return Reply{Text: g.catalog.Get(BlockedRedirect), Blocked: true}, nil
	}

	reply, err := g.provider.Complete(ctx, CompletionRequest{
		SystemPrompt: g.systemPrompt,
		History:      domain.CapHistory(history),
		UserMessage:  sanitized,
	})
	if err != nil {
		var failure *ProviderFailure
		if errors.As(err, &failure) {
			return Reply{}, failure
		}
		return Reply{}, NewProviderFailure(FailureUnknown, "model call failed", err)
	}

	final, filtered := g.Filter(reply.Text)
	if filtered {
		g.warn(ctx, "sensitive response detected, replacing with safe fallback", map[string]interface{}{
			"reply": truncate(reply.Text),
		})
	}

	return Reply{
		Text:         final,
		Filtered:     filtered,
		InputTokens:  reply.InputTokens,
		OutputTokens: reply.OutputTokens,
	}, nil
}

// Filter applies the response fallback policy: a reply matching any
// leakage rule is discarded entirely and replaced with the fixed safe
// sentence. Partial leakage is treated as fully unsafe — this is a full
// replacement, never a redaction.
func (g *Guard) Filter(raw string) (string, bool) {
	if g.leakage.Matches(raw) {
		return g.catalog.Get(LeakFallback), true
	}
	return raw, false
}

func (g *Guard) warn(ctx context.Context, message string, fields map[string]interface{}) {
	if g.logger != nil {
		g.logger.LogWarning(ctx, message, fields)
	}
}

// truncate shortens text for log fields.
func truncate(s string) string {
	const max = 80
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
