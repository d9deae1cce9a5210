// Package openrouter provides the OpenRouter backend. OpenAI-compatible wire
// shape plus the referer header the service uses for app attribution.
package openrouter

import (
	"context"
	"errors"
	"time"

	"github.com/davidbz/forge/internal/domain"
	"github.com/davidbz/forge/internal/provider"
	"github.com/davidbz/forge/internal/resilience"
)

const (
	providerName = "openrouter"
	temperature  = 0.7
	topP         = 0.9
	apiPath      = "/api/v1/chat/completions"
)

// Provider implements the domain.Provider interface for OpenRouter.
type Provider struct {
	client *provider.Client
}

// NewProvider creates a new OpenRouter provider.
func NewProvider(config Config, policy resilience.Policy) (*Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("OpenRouter API key is required")
	}

	spec := provider.ChatSpec{
		Path:        apiPath,
		Model:       config.Model,
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   config.MaxTokens,
		Headers: map[string]string{
			"HTTP-Referer": config.SiteURL,
		},
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
