package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vrcrush/ai-interview-clone/internal/knowledge"
)

func TestResponseCatalogRendersPersonaName(t *testing.T) {
	catalog := NewResponseCatalog("Juan Pablo Bolzon")

	assert.Equal(t,
		"I'm here to tell you about Juan Pablo Bolzon's professional background. What would you like to know about his experience or skills?",
		catalog.Get(BlockedRedirect))
	assert.Equal(t,
		"I'm happy to tell you about Juan Pablo Bolzon's professional background! What would you like to know?",
		catalog.Get(LeakFallback))

	for _, key := range []ResponseKey{BlockedRedirect, LeakFallback, OffTopicRedirect, NoDataAvailable} {
		assert.Contains(t, catalog.Get(key), "Juan Pablo Bolzon")
	}
}

func TestWelcome(t *testing.T) {
	w := NewWelcome(testBase(t))

	assert.Contains(t, w.Message, "Juan Pablo Bolzon's AI clone")
	assert.Contains(t, w.Message, "Software Engineer")
	assert.Len(t, w.SuggestedQuestions, 8)
	assert.Contains(t, w.SuggestedQuestions[0], "Tell me about yourself")
}

func TestWelcomeFallbackIdentity(t *testing.T) {
	w := NewWelcome(knowledge.ErrorMarker())

	assert.Contains(t, w.Message, knowledge.DefaultName)
	assert.Contains(t, w.Message, knowledge.DefaultTitle)
}
