package imagegen

import (
	"context"

	"scriptforge/internal/provider"
)

// stabilityStub holds the Stability AI catalog slot. It has no network
// contract yet; selecting it fails immediately.
type stabilityStub struct{}

func newStabilityStub() *stabilityStub {
	return &stabilityStub{}
}

func (s *stabilityStub) GenerateImage(ctx context.Context, prompt string) (string, error) {
	return "", provider.ErrNotSupported
}
