package llm

import (
	"context"
	"fmt"

	"scriptforge/internal/provider"
	"scriptforge/pkg/prompts"
)

// Client generates text from a single prompt.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// BuildFunc constructs a provider adapter bound to a credential and model.
type BuildFunc func(apiKey, model string) Client

// Dispatcher renders the script prompt and routes it to the adapter
// registered for a provider identifier. Exactly one outbound call per
// invocation; a non-success response is a hard failure with no retry.
type Dispatcher struct {
	prompts  *prompts.Prompts
	models   map[string]string
	builders map[string]BuildFunc
}

func NewDispatcher(p *prompts.Prompts, models map[string]string) *Dispatcher {
	return newDispatcher(p, models, defaultBuilders())
}

func newDispatcher(p *prompts.Prompts, models map[string]string, builders map[string]BuildFunc) *Dispatcher {
	return &Dispatcher{
		prompts:  p,
		models:   models,
		builders: builders,
	}
}

func defaultBuilders() map[string]BuildFunc {
	return map[string]BuildFunc{
		"gemini":    func(apiKey, model string) Client { return newGeminiClient(apiKey, model) },
		"openai":    func(apiKey, model string) Client { return newOpenAIClient(apiKey, model) },
		"anthropic": func(apiKey, model string) Client { return newAnthropicClient(apiKey, model) },
		"mistral":   func(apiKey, model string) Client { return newMistralClient(apiKey, model) },
		"groq":      func(apiKey, model string) Client { return newGroqClient(apiKey, model) },
	}
}

// Supports reports whether an adapter is registered for the identifier.
func (d *Dispatcher) Supports(providerID string) bool {
	_, ok := d.builders[providerID]
	return ok
}

// Generate builds the prompt from params and dispatches it to the named
// provider. An unknown identifier fails before any network call; a
// missing credential fails before the adapter is even constructed.
func (d *Dispatcher) Generate(ctx context.Context, providerID string, params prompts.ScriptParams, apiKey string) (string, error) {
	build, ok := d.builders[providerID]
	if !ok {
		return "", fmt.Errorf("%w %q", provider.ErrUnsupportedProvider, providerID)
	}

	if apiKey == "" {
		return "", fmt.Errorf("%s: %w", providerID, provider.ErrMissingCredential)
	}

	prompt, err := d.prompts.RenderScript(params)
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}

	text, err := build(apiKey, d.models[providerID]).Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%s: %w", providerID, err)
	}

	return text, nil
}
