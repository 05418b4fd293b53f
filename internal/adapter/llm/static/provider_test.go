package static

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrcrush/ai-interview-clone/internal/domain"
	"github.com/vrcrush/ai-interview-clone/internal/usecase/chat"
)

func TestProvider_Complete(t *testing.T) {
	provider := NewProvider("Hi, I am a canned persona.")

	reply, err := provider.Complete(context.Background(), chat.CompletionRequest{
		SystemPrompt: "You are the persona.",
		History: []domain.ConversationTurn{
			{Role: domain.RoleUser, Content: "Hello"},
		},
		UserMessage: "Tell me about yourself",
	})

	require.NoError(t, err)
	assert.Equal(t, "Hi, I am a canned persona.", reply.Text)
	assert.Greater(t, reply.InputTokens, 0)
	assert.Greater(t, reply.OutputTokens, 0)
}

func TestProvider_Complete_DefaultReply(t *testing.T) {
	provider := NewProvider("")

	reply, err := provider.Complete(context.Background(), chat.CompletionRequest{UserMessage: "hi"})

	require.NoError(t, err)
	assert.Equal(t, DefaultReply, reply.Text)
}

func TestProvider_Complete_CancelledContext(t *testing.T) {
	provider := NewProvider("")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := provider.Complete(ctx, chat.CompletionRequest{UserMessage: "hi"})

	assert.Error(t, err)
}
