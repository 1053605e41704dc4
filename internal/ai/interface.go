package ai

import "context"

// Completer is the single chokepoint for LLM calls in the matching pipeline.
// Prompt construction happens upstream and parsing downstream, so this
// interface has no knowledge of the tagged-section contract.
type Completer interface {
	// Complete sends one prompt to the provider and returns the raw text.
	Complete(ctx context.Context, prompt string) (string, error)
}
