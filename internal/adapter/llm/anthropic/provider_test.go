package anthropic_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrcrush/ai-interview-clone/internal/adapter/llm/anthropic"
	llmhttp "github.com/vrcrush/ai-interview-clone/internal/adapter/llm/http"
	"github.com/vrcrush/ai-interview-clone/internal/domain"
	"github.com/vrcrush/ai-interview-clone/internal/usecase/chat"
)

type fakeClient struct {
	lastSystem  string
	lastTurns   []anthropic.Message
	lastMessage string
	resp        *anthropic.APIResponse
	err         error
}

func (c *fakeClient) Call(_ context.Context, system string, turns []anthropic.Message, userMessage string) (*anthropic.APIResponse, error) {
	c.lastSystem = system
	c.lastTurns = turns
	c.lastMessage = userMessage
	if c.err != nil {
		return nil, c.err
	}
	return c.resp, nil
}

func TestProvider_Complete(t *testing.T) {
	client := &fakeClient{resp: &anthropic.APIResponse{
		Text:      "I build backend systems.",
		TokensIn:  42,
		TokensOut: 17,
		Model:     anthropic.DefaultModel,
	}}
	metrics := llmhttp.NewDefaultMetrics()
	provider := anthropic.NewProvider(client, nil, metrics)

	reply, err := provider.Complete(context.Background(), chat.CompletionRequest{
		SystemPrompt: "You are the persona.",
		History: []domain.ConversationTurn{
			{Role: domain.RoleUser, Content: "Hi"},
			{Role: domain.RoleAssistant, Content: "Hello!"},
		},
		UserMessage: "What do you do?",
	})

	require.NoError(t, err)
	assert.Equal(t, "I build backend systems.", reply.Text)
	assert.Equal(t, 42, reply.InputTokens)
	assert.Equal(t, 17, reply.OutputTokens)

	assert.Equal(t, "You are the persona.", client.lastSystem)
	require.Len(t, client.lastTurns, 2)
	assert.Equal(t, "user", client.lastTurns[0].Role)
	assert.Equal(t, "assistant", client.lastTurns[1].Role)
	assert.Equal(t, "What do you do?", client.lastMessage)

	stats := metrics.GetStats()
	assert.Equal(t, 1, stats.TotalRequests)
	assert.Equal(t, 42, stats.TotalTokensIn)
	assert.Equal(t, 17, stats.TotalTokensOut)
}

func TestProvider_Complete_TranslatesTransportErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind chat.FailureKind
	}{
		{
			name:     "authentication",
			err:      llmhttp.NewAuthenticationError("anthropic", "invalid x-api-key"),
			wantKind: chat.FailureAuth,
		},
		{
			name:     "rate limit",
			err:      llmhttp.NewRateLimitError("anthropic", "slow down"),
			wantKind: chat.FailureRateLimited,
		},
		{
			name:     "overloaded",
			err:      llmhttp.NewServiceUnavailableError("anthropic", "overloaded"),
			wantKind: chat.FailureOverloaded,
		},
		{
			name:     "invalid request",
			err:      llmhttp.NewInvalidRequestError("anthropic", "bad payload"),
			wantKind: chat.FailureUnknown,
		},
		{
			name:     "plain error",
			err:      errors.New("connection refused"),
			wantKind: chat.FailureUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{err: tt.err}
			metrics := llmhttp.NewDefaultMetrics()
			provider := anthropic.NewProvider(client, nil, metrics)

			_, err := provider.Complete(context.Background(), chat.CompletionRequest{UserMessage: "hi"})
			require.Error(t, err)

			var failure *chat.ProviderFailure
			require.ErrorAs(t, err, &failure)
			assert.Equal(t, tt.wantKind, failure.Kind)

			assert.Equal(t, 1, metrics.GetStats().ErrorCount)
		})
	}
}

func TestProvider_Complete_MissingClient(t *testing.T) {
	provider := anthropic.NewProvider(nil, nil, nil)

	_, err := provider.Complete(context.Background(), chat.CompletionRequest{UserMessage: "hi"})

	var failure *chat.ProviderFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, chat.FailureUnknown, failure.Kind)
}
