// Package perplexity provides the Perplexity backend. Runs at low temperature
// with nucleus sampling, matching the endpoint's recommended settings.
package perplexity

import (
	"context"
	"errors"
	"time"

	"github.com/davidbz/forge/internal/domain"
	"github.com/davidbz/forge/internal/provider"
	"github.com/davidbz/forge/internal/resilience"
)

const (
	providerName = "perplexity"
	temperature  = 0.2
	topP         = 0.9
	apiPath      = "/chat/completions"
)

// Provider implements the domain.Provider interface for Perplexity.
type Provider struct {
	client *provider.Client
}

// NewProvider creates a new Perplexity provider.
func NewProvider(config Config, policy resilience.Policy) (*Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("Perplexity API key is required")
	}

	spec := provider.ChatSpec{
		Path:        apiPath,
		Model:       config.Model,
		Temperature: temperature,
		TopP:        topP,
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
