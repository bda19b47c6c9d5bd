package llm

import "context"

// Provider is the text-generation oracle: one prompt in, free text out.
// The service holds all conversation context itself and restates it in the
// prompt, so implementations are single-shot and stateless.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
