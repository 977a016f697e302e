package imagegen

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"scriptforge/internal/provider"
	"scriptforge/pkg/httputil"
)

const (
	openAIImagesURL = "https://api.openai.com/v1/images/generations"
	imageTimeout    = 180 * time.Second
)

// openAIClient calls the OpenAI images endpoint and returns the hosted
// URL of the generated asset.
type openAIClient struct {
	url    string
	apiKey string
	opts   Options
	http   *httputil.Client
}

func newOpenAIClient(apiKey string, opts Options) *openAIClient {
	return &openAIClient{
		url:    openAIImagesURL,
		apiKey: apiKey,
		opts:   opts,
		http:   httputil.NewClient(imageTimeout),
	}
}

type imageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type imageResponse struct {
	Data []imageData `json:"data"`
}

type imageData struct {
	URL string `json:"url"`
}

func (c *openAIClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", provider.ErrMissingCredential
	}

	reqBody := imageRequest{
		Model:  c.opts.Model,
		Prompt: prompt,
		N:      1,
		Size:   c.opts.Size,
	}

	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}

	body, err := c.http.PostJSON(ctx, c.url, headers, reqBody)
	if err != nil {
		return "", err
	}

	var resp imageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", provider.ErrUnexpectedResponse
	}

	return resp.Data[0].URL, nil
}
