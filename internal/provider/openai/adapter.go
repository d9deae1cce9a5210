// Package openai provides the OpenAI chat completions backend. It implements
// the domain.Provider interface on top of the shared resilient caller.
package openai

import (
	"context"
	"errors"
	"time"

	"github.com/davidbz/forge/internal/domain"
	"github.com/davidbz/forge/internal/provider"
	"github.com/davidbz/forge/internal/resilience"
)

const (
	providerName = "openai"
	temperature  = 0.7
	apiPath      = "/v1/chat/completions"
)

// Provider implements the domain.Provider interface for OpenAI.
type Provider struct {
	client *provider.Client
}

// NewProvider creates a new OpenAI provider.
func NewProvider(config Config, policy resilience.Policy) (*Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	spec := provider.ChatSpec{
		Path:        apiPath,
		Model:       config.Model,
		Temperature: temperature,
		MaxTokens:   config.MaxTokens,
	}

	return &Provider{
		client: provider.NewClient(
			providerName,
			config.BaseURL,
			time.Duration(config.Timeout)*time.Second,
			policy,
			provider.ChatBuilder(spec, config.APIKey),
			provider.ChatParser(providerName),
		),
	}, nil
}

// Complete sends a completion request and returns the generated text.
func (p *Provider) Complete(ctx context.Context, prompt string, auth *domain.AuthContext) (string, error) {
	return p.client.Complete(ctx, prompt, auth)
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return providerName
}
