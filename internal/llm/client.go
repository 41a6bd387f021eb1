package llm

import (
	"context"
)

// LLMClient sends one system + user exchange and returns the reply text.
type LLMClient interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}
