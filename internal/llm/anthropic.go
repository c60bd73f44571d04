package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	anthropicProvider   = "anthropic"
	defaultAnthropicURL = "https://api.anthropic.com"
)

// AnthropicConfig configures AnthropicClient.
type AnthropicConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// AnthropicClient calls the Anthropic Messages API through the official SDK.
type AnthropicClient struct {
	client  anthropic.Client
	baseURL string
	model   string
}

// NewAnthropicClient builds a client. httpClient may be nil; cfg.Timeout bounds
// each request either way.
func NewAnthropicClient(cfg AnthropicConfig, httpClient *http.Client) (*AnthropicClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("anthropic model is required")
	}

	// The SDK appends v1/messages itself, so older ".../v1" values are accepted.
	baseURL := strings.TrimSuffix(strings.TrimRight(cfg.BaseURL, "/"), "/v1")
	if baseURL == "" {
		baseURL = defaultAnthropicURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(0),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	return &AnthropicClient{
		client:  anthropic.NewClient(opts...),
		baseURL: baseURL,
		model:   cfg.Model,
	}, nil
}

// Complete sends the prompt as a single user turn and returns the text blocks of
// the reply.
func (c *AnthropicClient) Complete(ctx context.Context, req Request) (*Completion, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   int64(req.MaxTokens),
		Temperature: anthropic.Float(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, classifyAnthropicError(err)
	}

	completion := &Completion{Model: string(msg.Model)}
	for _, block := range msg.Content {
		if block.Type == "text" {
			completion.Segments = append(completion.Segments, block.Text)
		}
	}
	return completion, nil
}

// classifyAnthropicError maps SDK failures onto the package errors. Anything that
// is neither an API status nor a transport failure happened while decoding a
// successful reply.
func classifyAnthropicError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return newUpstreamError(anthropicProvider, apiErr.StatusCode, anthropicErrorMessage(apiErr))
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("anthropic request failed: %w", err)
	}
	return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
}

func anthropicErrorMessage(apiErr *anthropic.Error) string {
	raw := apiErr.RawJSON()
	if raw == "" {
		return http.StatusText(apiErr.StatusCode)
	}
	return raw
}

var _ Client = (*AnthropicClient)(nil)
