// Package llm talks to the text-generation providers used for outreach messages.
package llm

import (
	"context"
	"strings"
)

// Request is a single-turn completion request.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Completion holds the text blocks returned by the provider, in order.
type Completion struct {
	Model    string
	Segments []string
}

// FirstText returns the first non-blank text segment, trimmed.
func (c *Completion) FirstText() string {
	if c == nil {
		return ""
	}
	for _, segment := range c.Segments {
		if text := strings.TrimSpace(segment); text != "" {
			return text
		}
	}
	return ""
}

// Client produces completions for prompts.
type Client interface {
	Complete(ctx context.Context, req Request) (*Completion, error)
}
