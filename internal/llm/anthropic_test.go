package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedMessagesRequest struct {
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	System      []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"system"`
	Messages []struct {
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"messages"`
}

func newTestAnthropic(t *testing.T, handler http.HandlerFunc) *AnthropicClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewAnthropicClient(AnthropicConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1/", Model: "claude-test"}, srv.Client())
	require.NoError(t, err)
	return client
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestAnthropicClient_Complete(t *testing.T) {
	var received recordedMessagesRequest
	client := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-test", r.Header.Get("X-Api-Key"))
		assert.NotEmpty(t, r.Header.Get("Anthropic-Version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		writeJSON(w, http.StatusOK, `{"id":"msg_1","type":"message","role":"assistant","model":"claude-test",
			"content":[{"type":"text","text":"  Hi Jane, great work at Acme.  "},{"type":"text","text":"second"}],
			"stop_reason":"end_turn","usage":{"input_tokens":10,"output_tokens":20}}`)
	})

	completion, err := client.Complete(context.Background(), Request{System: "be brief", Prompt: "hello", MaxTokens: 300, Temperature: 0.7})
	require.NoError(t, err)
	assert.Equal(t, "claude-test", completion.Model)
	assert.Equal(t, "Hi Jane, great work at Acme.", completion.FirstText())
	assert.Len(t, completion.Segments, 2)

	assert.Equal(t, "claude-test", received.Model)
	assert.Equal(t, 300, received.MaxTokens)
	assert.InDelta(t, 0.7, received.Temperature, 0.0001)
	require.Len(t, received.System, 1)
	assert.Equal(t, "be brief", received.System[0].Text)
	require.Len(t, received.Messages, 1)
	assert.Equal(t, "user", received.Messages[0].Role)
	require.Len(t, received.Messages[0].Content, 1)
	assert.Equal(t, "hello", received.Messages[0].Content[0].Text)
}

func TestAnthropicClient_ErrorClassification(t *testing.T) {
	tests := map[string]struct {
		status int
		body   string
		expect error
	}{
		"unauthorized": {
			status: http.StatusUnauthorized,
			body:   `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`,
			expect: ErrUnauthorized,
		},
		"rate limited": {
			status: http.StatusTooManyRequests,
			body:   `{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`,
			expect: ErrRateLimited,
		},
		"rate limit text on generic status": {
			status: http.StatusBadRequest,
			body:   `{"type":"error","error":{"type":"invalid_request_error","message":"Rate limit reached for org"}}`,
			expect: ErrRateLimited,
		},
		"server error": {
			status: http.StatusInternalServerError,
			body:   `{"type":"error","error":{"type":"internal_error","message":"upstream exploded"}}`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var calls atomic.Int32
			client := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				writeJSON(w, tt.status, tt.body)
			})

			_, err := client.Complete(context.Background(), Request{Prompt: "x", MaxTokens: 10})
			require.Error(t, err)
			assert.Equal(t, int32(1), calls.Load(), "failed calls are not retried")

			var upstream *UpstreamError
			require.True(t, errors.As(err, &upstream))
			assert.Equal(t, tt.status, upstream.StatusCode)
			assert.Equal(t, anthropicProvider, upstream.Provider)
			if tt.expect != nil {
				assert.ErrorIs(t, err, tt.expect)
			} else {
				assert.False(t, errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrRateLimited))
				assert.Contains(t, upstream.Message, "upstream exploded")
			}
		})
	}
}

func TestAnthropicClient_MalformedAndEmpty(t *testing.T) {
	client := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `not json`)
	})
	_, err := client.Complete(context.Background(), Request{Prompt: "x", MaxTokens: 10})
	assert.ErrorIs(t, err, ErrMalformedResponse)

	client = newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":"msg_2","type":"message","role":"assistant","model":"claude-test",
			"content":[{"type":"tool_use","id":"tu_1","name":"lookup","input":{}}]}`)
	})
	completion, err := client.Complete(context.Background(), Request{Prompt: "x", MaxTokens: 10})
	require.NoError(t, err)
	assert.Empty(t, completion.FirstText())
}

func TestAnthropicClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client, err := NewAnthropicClient(AnthropicConfig{APIKey: "k", Model: "m", BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), Request{Prompt: "x", MaxTokens: 10})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformedResponse)
	var upstream *UpstreamError
	assert.False(t, errors.As(err, &upstream))
}

func TestNewAnthropicClient_Validation(t *testing.T) {
	_, err := NewAnthropicClient(AnthropicConfig{Model: "m"}, nil)
	assert.Error(t, err)

	_, err = NewAnthropicClient(AnthropicConfig{APIKey: "k"}, nil)
	assert.Error(t, err)

	client, err := NewAnthropicClient(AnthropicConfig{APIKey: "k", Model: "m"}, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultAnthropicURL, client.baseURL)

	client, err = NewAnthropicClient(AnthropicConfig{APIKey: "k", Model: "m", BaseURL: "https://proxy.internal/v1/"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://proxy.internal", client.baseURL)
}
