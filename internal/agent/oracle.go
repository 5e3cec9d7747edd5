package agent

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"

	"github.com/rahul/drishti/internal/observability"
)

// Oracle is the narrow interface to the reasoning model: one prompt in,
// free text out. Callers must defensively parse the response.
type Oracle interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// LLMOracle backs Oracle with a langchaingo model.
type LLMOracle struct {
	Model       llms.Model
	Temperature float64
	Logger      *observability.Logger
}

func NewLLMOracle(model llms.Model, temperature float64, logger *observability.Logger) *LLMOracle {
	return &LLMOracle{
		Model:       model,
		Temperature: temperature,
		Logger:      logger,
	}
}

func (o *LLMOracle) Complete(ctx context.Context, system, prompt string) (string, error) {
	messages := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(system)},
		},
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	resp, err := o.Model.GenerateContent(ctx, messages, llms.WithTemperature(o.Temperature))
	if err != nil {
		return "", fmt.Errorf("model call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	content := resp.Choices[0].Content

	if o.Logger != nil {
		o.Logger.LogLLM("", prompt, content)
	}
	return content, nil
}
