package imagegen

import (
	"context"
	"fmt"
	"time"

	"scriptforge/internal/provider"
	"scriptforge/pkg/httputil"
)

// Client generates one image per call and returns a URL to the asset.
type Client interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Options configure the primary image provider.
type Options struct {
	Model string
	Size  string
}

// BuildFunc constructs an image adapter bound to a credential.
type BuildFunc func(apiKey string, opts Options) Client

// Dispatcher routes an image prompt to the adapter registered for a
// provider identifier. Stub entries fail before any network call.
type Dispatcher struct {
	opts     Options
	builders map[string]BuildFunc
}

func NewDispatcher(opts Options) *Dispatcher {
	return newImageDispatcher(opts, defaultBuilders())
}

func newImageDispatcher(opts Options, builders map[string]BuildFunc) *Dispatcher {
	return &Dispatcher{opts: opts, builders: builders}
}

func defaultBuilders() map[string]BuildFunc {
	return map[string]BuildFunc{
		"openai-images": func(apiKey string, opts Options) Client { return newOpenAIClient(apiKey, opts) },
		"stability":     func(apiKey string, opts Options) Client { return newStabilityStub() },
	}
}

// Supports reports whether an adapter is registered for the identifier.
func (d *Dispatcher) Supports(providerID string) bool {
	_, ok := d.builders[providerID]
	return ok
}

// Generate dispatches prompt to the named image provider and returns
// the URL of the generated asset.
func (d *Dispatcher) Generate(ctx context.Context, providerID, prompt, apiKey string) (string, error) {
	build, ok := d.builders[providerID]
	if !ok {
		return "", fmt.Errorf("%w %q", provider.ErrUnsupportedProvider, providerID)
	}

	url, err := build(apiKey, d.opts).GenerateImage(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%s: %w", providerID, err)
	}

	return url, nil
}

const downloadTimeout = 60 * time.Second

// Download fetches a generated image from its URL.
func Download(ctx context.Context, imageURL string) ([]byte, error) {
	client := httputil.NewClient(downloadTimeout)
	data, err := client.Get(ctx, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	return data, nil
}
