package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized means the provider rejected the configured credentials.
	ErrUnauthorized = errors.New("llm provider rejected the api key")
	// ErrRateLimited means the provider throttled the request.
	ErrRateLimited = errors.New("llm provider rate limit exceeded")
	// ErrMalformedResponse means the call succeeded but the body could not be read.
	ErrMalformedResponse = errors.New("llm provider returned a malformed response")
)

// UpstreamError is a failed call to a provider.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
	kind       error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// Unwrap exposes ErrUnauthorized or ErrRateLimited when the failure was classified.
func (e *UpstreamError) Unwrap() error {
	return e.kind
}

func newUpstreamError(provider string, status int, message string) *UpstreamError {
	return &UpstreamError{
		Provider:   provider,
		StatusCode: status,
		Message:    message,
		kind:       classify(status, message),
	}
}

// classify looks at the status code first and falls back to the message text for
// providers that report auth or quota problems with a generic status.
func classify(status int, message string) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}

	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "api key"), strings.Contains(lower, "api_key"), strings.Contains(lower, "authentication"):
		return ErrUnauthorized
	case strings.Contains(lower, "rate limit"), strings.Contains(lower, "rate_limit"), strings.Contains(lower, "resource_exhausted"):
		return ErrRateLimited
	}
	return nil
}
