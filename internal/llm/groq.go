package llm

import (
	"context"
	"fmt"

	"github.com/conneroisu/groq-go"

	"scriptforge/internal/provider"
)

type groqClient struct {
	apiKey string
	model  string
}

func newGroqClient(apiKey, model string) *groqClient {
	return &groqClient{apiKey: apiKey, model: model}
}

func (c *groqClient) Generate(ctx context.Context, prompt string) (string, error) {
	client, err := groq.NewClient(c.apiKey)
	if err != nil {
		return "", fmt.Errorf("create groq client: %w", err)
	}

	resp, err := client.ChatCompletion(ctx, groq.ChatCompletionRequest{
		Model: groq.ChatModel(c.model),
		Messages: []groq.ChatCompletionMessage{
			{Role: groq.RoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", provider.ErrUnexpectedResponse
	}

	return resp.Choices[0].Message.Content, nil
}
