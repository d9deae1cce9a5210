// Package echo provides a testing provider that echoes the prompt back. It
// implements the domain.Provider interface without making external API calls,
// providing deterministic responses for development and tests.
package echo

import (
	"context"
	"errors"

	"github.com/davidbz/forge/internal/domain"
	"github.com/davidbz/forge/internal/observability"
)

const providerName = "echo"

// Provider implements the domain.Provider interface for echo testing.
type Provider struct {
	name string
}

// NewProvider creates a new echo provider. No configuration is required as
// this provider operates entirely in-memory.
func NewProvider() *Provider {
	return &Provider{name: providerName}
}

// Complete returns the prompt text unchanged.
func (p *Provider) Complete(ctx context.Context, prompt string, _ *domain.AuthContext) (string, error) {
	if prompt == "" {
		return "", errors.New("prompt cannot be empty")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("echoing prompt", observability.Int("prompt_length", len(prompt)))

	return prompt, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}
