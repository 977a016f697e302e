package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"scriptforge/internal/provider"
	"scriptforge/pkg/httputil"
)

const (
	openAIChatURL  = "https://api.openai.com/v1/chat/completions"
	mistralChatURL = "https://api.mistral.ai/v1/chat/completions"

	roleUser = "user"

	chatTimeout = 120 * time.Second
)

// chatClient speaks the OpenAI-style chat completions shape shared by
// the OpenAI and Mistral endpoints. The two adapters differ only in the
// target URL; credential transport is a bearer header for both.
type chatClient struct {
	url    string
	apiKey string
	model  string
	http   *httputil.Client
}

func newOpenAIClient(apiKey, model string) *chatClient {
	return newChatClient(openAIChatURL, apiKey, model)
}

func newMistralClient(apiKey, model string) *chatClient {
	return newChatClient(mistralChatURL, apiKey, model)
}

func newChatClient(url, apiKey, model string) *chatClient {
	return &chatClient{
		url:    url,
		apiKey: apiKey,
		model:  model,
		http:   httputil.NewClient(chatTimeout),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

func (c *chatClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: roleUser, Content: prompt}},
	}

	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}

	body, err := c.http.PostJSON(ctx, c.url, headers, reqBody)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", provider.ErrUnexpectedResponse
	}

	return resp.Choices[0].Message.Content, nil
}
