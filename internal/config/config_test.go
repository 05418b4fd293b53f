package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeOverlayWins(t *testing.T) {
	base := Config{
		Provider: "static",
		Server:   ServerConfig{Addr: ":3001"},
		HTTP:     HTTPConfig{Timeout: "60s", MaxRetries: 2},
		Providers: map[string]ProviderConfig{
			"anthropic": {Enabled: true, Model: "claude-3-5-sonnet-20241022"},
		},
	}
	overlay := Config{
		Provider: "anthropic",
		Server:   ServerConfig{Addr: ":8080"},
		Providers: map[string]ProviderConfig{
			"anthropic": {Enabled: true, Model: "claude-3-5-haiku-20241022", APIKey: "sk-test"},
		},
	}

	merged := Merge(base, overlay)

	assert.Equal(t, "anthropic", merged.Provider)
	assert.Equal(t, ":8080", merged.Server.Addr)
	// Untouched sections carry over from the base.
	assert.Equal(t, "60s", merged.HTTP.Timeout)
	assert.Equal(t, 2, merged.HTTP.MaxRetries)
	assert.Equal(t, "claude-3-5-haiku-20241022", merged.Providers["anthropic"].Model)
	assert.Equal(t, "sk-test", merged.Providers["anthropic"].APIKey)
}

func TestMergeEmptyOverlayKeepsBase(t *testing.T) {
	base := Config{
		Server:    ServerConfig{Addr: ":3001", AllowedOrigins: []string{"https://jpbolzon.dev"}},
		Knowledge: KnowledgeConfig{Path: "knowledge-base.json"},
		RateLimit: RateLimitConfig{Requests: 100, Window: "1h"},
	}

	merged := Merge(base, Config{})

	assert.Equal(t, base.Server, merged.Server)
	assert.Equal(t, base.Knowledge, merged.Knowledge)
	assert.Equal(t, base.RateLimit, merged.RateLimit)
}

func TestMergeProvidersUnion(t *testing.T) {
	base := Config{Providers: map[string]ProviderConfig{
		"anthropic": {Enabled: true},
	}}
	overlay := Config{Providers: map[string]ProviderConfig{
		"static": {Enabled: true},
	}}

	merged := Merge(base, overlay)

	assert.Len(t, merged.Providers, 2)
	assert.True(t, merged.Providers["anthropic"].Enabled)
	assert.True(t, merged.Providers["static"].Enabled)
}

func TestActiveProvider(t *testing.T) {
	cfg := Config{
		Provider: "anthropic",
		Providers: map[string]ProviderConfig{
			"anthropic": {Enabled: true, Model: "claude-3-5-sonnet-20241022"},
			"static":    {Enabled: true},
		},
	}

	name, provider := cfg.ActiveProvider()
	assert.Equal(t, "anthropic", name)
	assert.Equal(t, "claude-3-5-sonnet-20241022", provider.Model)
}

func TestActiveProviderFallsBackToStatic(t *testing.T) {
	cfg := Config{
		Provider: "anthropic",
		Providers: map[string]ProviderConfig{
			"anthropic": {Enabled: false},
			"static":    {Enabled: true, Model: "static-v1"},
		},
	}

	name, provider := cfg.ActiveProvider()
	assert.Equal(t, "static", name)
	assert.Equal(t, "static-v1", provider.Model)
}

func TestActiveProviderEmptyConfig(t *testing.T) {
	name, provider := Config{}.ActiveProvider()

	assert.Equal(t, "static", name)
	assert.True(t, provider.Enabled)
}
