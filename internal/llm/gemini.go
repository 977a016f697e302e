package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"scriptforge/internal/provider"
)

// geminiClient uses the Google GenAI SDK against the Gemini API backend.
// The SDK client is created per call so the credential is always the one
// the dispatcher just read from storage.
type geminiClient struct {
	apiKey string
	model  string
}

func newGeminiClient(apiKey, model string) *geminiClient {
	return &geminiClient{apiKey: apiKey, model: model}
}

func (c *geminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	if len(resp.Candidates) == 0 ||
		resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 ||
		resp.Candidates[0].Content.Parts[0].Text == "" {
		return "", provider.ErrUnexpectedResponse
	}

	return resp.Candidates[0].Content.Parts[0].Text, nil
}
