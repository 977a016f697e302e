package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"scriptforge/internal/provider"
	"scriptforge/pkg/httputil"
)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
	anthropicMaxTokens   = 4096
)

// anthropicClient speaks the Anthropic messages shape: the credential
// travels in an x-api-key header and the result is a list of content
// blocks rather than choices.
type anthropicClient struct {
	url    string
	apiKey string
	model  string
	http   *httputil.Client
}

func newAnthropicClient(apiKey, model string) *anthropicClient {
	return &anthropicClient{
		url:    anthropicMessagesURL,
		apiKey: apiKey,
		model:  model,
		http:   httputil.NewClient(chatTimeout),
	}
}

type anthropicRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

type anthropicBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	Content []anthropicBlock `json:"content"`
}

func (c *anthropicClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := anthropicRequest{
		Model:     c.model,
		MaxTokens: anthropicMaxTokens,
		Messages:  []chatMessage{{Role: roleUser, Content: prompt}},
	}

	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": anthropicVersion,
	}

	body, err := c.http.PostJSON(ctx, c.url, headers, reqBody)
	if err != nil {
		return "", err
	}

	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	if len(resp.Content) == 0 || resp.Content[0].Text == "" {
		return "", provider.ErrUnexpectedResponse
	}

	return resp.Content[0].Text, nil
}
