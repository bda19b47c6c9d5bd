package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// GoogleAIProvider talks to the Gemini API through langchaingo.
type GoogleAIProvider struct {
	model   llms.Model
	timeout time.Duration
}

func NewGoogleAIProvider(ctx context.Context, apiKey, model string, timeout time.Duration) (*GoogleAIProvider, error) {
	client, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create googleai client: %w", err)
	}
	return &GoogleAIProvider{model: client, timeout: timeout}, nil
}

func (p *GoogleAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	// low temperature: the reply may have to be a machine-parseable command
	out, err := llms.GenerateFromSinglePrompt(ctx, p.model, prompt,
		llms.WithTemperature(0.1),
	)
	if err != nil {
		return "", fmt.Errorf("googleai generate: %w", err)
	}
	return out, nil
}
