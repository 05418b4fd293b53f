package anthropic_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrcrush/ai-interview-clone/internal/adapter/llm/anthropic"
	llmhttp "github.com/vrcrush/ai-interview-clone/internal/adapter/llm/http"
)

// noRetry keeps error-path tests fast.
func noRetry() llmhttp.RetryConfig {
	return llmhttp.RetryConfig{
		MaxRetries:     0,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     time.Millisecond,
		Multiplier:     1.0,
	}
}

func TestNewHTTPClient_DefaultModel(t *testing.T) {
	client := anthropic.NewHTTPClient("test-api-key", "")

	assert.NotNil(t, client)
}

func TestHTTPClient_Call_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-api-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req anthropic.MessagesRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)

		assert.Equal(t, anthropic.DefaultModel, req.Model)
		assert.Equal(t, anthropic.DefaultMaxTokens, req.MaxTokens)
		assert.Equal(t, "You are a helpful persona.", req.System)
		// Two history turns plus the current message
		require.Len(t, req.Messages, 3)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "assistant", req.Messages[1].Role)
		assert.Equal(t, "user", req.Messages[2].Role)
		assert.Equal(t, "And your skills?", req.Messages[2].Content)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropic.MessagesResponse{
			ID:   "msg_123",
			Type: "message",
			Role: "assistant",
			Content: []anthropic.ContentBlock{
				{
					Type: "text",
					Text: "I mostly work in Go.",
				},
			},
			Model:      anthropic.DefaultModel,
			StopReason: "end_turn",
			Usage: anthropic.Usage{
				InputTokens:  10,
				OutputTokens: 20,
			},
		})
	}))
	defer server.Close()

	client := anthropic.NewHTTPClient("test-api-key", "")
	client.SetBaseURL(server.URL)

	resp, err := client.Call(context.Background(), "You are a helpful persona.", []anthropic.Message{
		{Role: "user", Content: "Tell me about yourself"},
		{Role: "assistant", Content: "Happy to!"},
	}, "And your skills?")

	require.NoError(t, err)
	assert.Equal(t, "I mostly work in Go.", resp.Text)
	assert.Equal(t, 10, resp.TokensIn)
	assert.Equal(t, 20, resp.TokensOut)
	assert.Equal(t, anthropic.DefaultModel, resp.Model)
	assert.Equal(t, "end_turn", resp.StopReason)
}

func TestHTTPClient_Call_MultipleContentBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropic.MessagesResponse{
			Content: []anthropic.ContentBlock{
				{Type: "text", Text: "Part one. "},
				{Type: "text", Text: "Part two."},
			},
			Usage: anthropic.Usage{InputTokens: 5, OutputTokens: 6},
		})
	}))
	defer server.Close()

	client := anthropic.NewHTTPClient("test-api-key", "")
	client.SetBaseURL(server.URL)

	resp, err := client.Call(context.Background(), "system", nil, "hi")

	require.NoError(t, err)
	assert.Equal(t, "Part one. Part two.", resp.Text)
}

func TestHTTPClient_Call_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		errType    anthropic.ErrorDetail
		wantType   llmhttp.ErrorType
	}{
		{
			name:       "401 maps to authentication",
			statusCode: http.StatusUnauthorized,
			errType:    anthropic.ErrorDetail{Type: "authentication_error", Message: "invalid x-api-key"},
			wantType:   llmhttp.ErrTypeAuthentication,
		},
		{
			name:       "403 maps to authentication",
			statusCode: http.StatusForbidden,
			errType:    anthropic.ErrorDetail{Type: "permission_error", Message: "forbidden"},
			wantType:   llmhttp.ErrTypeAuthentication,
		},
		{
			name:       "429 maps to rate limit",
			statusCode: http.StatusTooManyRequests,
			errType:    anthropic.ErrorDetail{Type: "rate_limit_error", Message: "slow down"},
			wantType:   llmhttp.ErrTypeRateLimit,
		},
		{
			name:       "529 maps to service unavailable",
			statusCode: 529,
			errType:    anthropic.ErrorDetail{Type: "overloaded_error", Message: "overloaded"},
			wantType:   llmhttp.ErrTypeServiceUnavailable,
		},
		{
			name:       "503 maps to service unavailable",
			statusCode: http.StatusServiceUnavailable,
			errType:    anthropic.ErrorDetail{Type: "api_error", Message: "unavailable"},
			wantType:   llmhttp.ErrTypeServiceUnavailable,
		},
		{
			name:       "400 maps to invalid request",
			statusCode: http.StatusBadRequest,
			errType:    anthropic.ErrorDetail{Type: "invalid_request_error", Message: "bad payload"},
			wantType:   llmhttp.ErrTypeInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.statusCode)
				json.NewEncoder(w).Encode(anthropic.ErrorResponse{
					Type:  "error",
					Error: tt.errType,
				})
			}))
			defer server.Close()

			client := anthropic.NewHTTPClient("test-api-key", "")
			client.SetBaseURL(server.URL)
			client.SetRetryConfig(noRetry())

			_, err := client.Call(context.Background(), "system", nil, "hi")
			require.Error(t, err)

			var httpErr *llmhttp.Error
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tt.wantType, httpErr.Type)
			assert.Equal(t, tt.statusCode, httpErr.StatusCode)
			assert.Equal(t, tt.errType.Message, httpErr.Message)
			assert.Equal(t, "anthropic", httpErr.Provider)
		})
	}
}

func TestHTTPClient_Call_RetriesOnOverload(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(529)
			json.NewEncoder(w).Encode(anthropic.ErrorResponse{
				Type:  "error",
				Error: anthropic.ErrorDetail{Type: "overloaded_error", Message: "overloaded"},
			})
			return
		}
		json.NewEncoder(w).Encode(anthropic.MessagesResponse{
			Content: []anthropic.ContentBlock{{Type: "text", Text: "recovered"}},
			Usage:   anthropic.Usage{InputTokens: 1, OutputTokens: 1},
		})
	}))
	defer server.Close()

	client := anthropic.NewHTTPClient("test-api-key", "")
	client.SetBaseURL(server.URL)
	client.SetRetryConfig(llmhttp.RetryConfig{
		MaxRetries:     2,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		Multiplier:     1.0,
	})

	resp, err := client.Call(context.Background(), "system", nil, "hi")

	require.NoError(t, err)
	assert.Equal(t, "recovered", resp.Text)
	assert.Equal(t, 2, attempts)
}

func TestHTTPClient_Call_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(anthropic.MessagesResponse{})
	}))
	defer server.Close()

	client := anthropic.NewHTTPClient("test-api-key", "")
	client.SetBaseURL(server.URL)

	_, err := client.Call(context.Background(), "system", nil, "hi")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content")
}
