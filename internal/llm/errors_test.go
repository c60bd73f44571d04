package llm

import (
	"errors"
	"net/http"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := map[string]struct {
		status  int
		message string
		expect  error
	}{
		"401":              {status: http.StatusUnauthorized, expect: ErrUnauthorized},
		"403":              {status: http.StatusForbidden, expect: ErrUnauthorized},
		"429":              {status: http.StatusTooManyRequests, expect: ErrRateLimited},
		"api key text":     {status: http.StatusBadRequest, message: "API key not valid. Please pass a valid API key.", expect: ErrUnauthorized},
		"rate limit text":  {status: 0, message: "rate limit exceeded", expect: ErrRateLimited},
		"quota exhausted":  {status: http.StatusBadRequest, message: "RESOURCE_EXHAUSTED", expect: ErrRateLimited},
		"unclassified 500": {status: http.StatusInternalServerError, message: "overloaded"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := classify(tt.status, tt.message); got != tt.expect {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestUpstreamError(t *testing.T) {
	err := newUpstreamError("anthropic", http.StatusUnauthorized, "invalid x-api-key")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unwrap to ErrUnauthorized")
	}
	if err.Error() != "anthropic: status 401: invalid x-api-key" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestCompletionFirstText(t *testing.T) {
	var nilCompletion *Completion
	if nilCompletion.FirstText() != "" {
		t.Fatalf("expected empty text for nil completion")
	}
	c := &Completion{Segments: []string{"  ", "\n hello \n", "world"}}
	if c.FirstText() != "hello" {
		t.Fatalf("expected first non-blank segment, got %q", c.FirstText())
	}
}
