package ai

import "context"

// LLMProvider sends a prompt to an LLM and returns the raw text response.
// The question generator is its only consumer.
type LLMProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
