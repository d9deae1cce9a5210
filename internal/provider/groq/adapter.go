// Package groq provides the Groq backend, which exposes an OpenAI-compatible
// chat completions endpoint under its own path prefix.
package groq

import (
	"context"
	"errors"
	"time"

	"github.com/davidbz/forge/internal/domain"
	"github.com/davidbz/forge/internal/provider"
	"github.com/davidbz/forge/internal/resilience"
)

const (
	providerName = "groq"
	temperature  = 0.7
	apiPath      = "/openai/v1/chat/completions"
)

// Provider implements the domain.Provider interface for Groq.
type Provider struct {
	client *provider.Client
}

// NewProvider creates a new Groq provider.
func NewProvider(config Config, policy resilience.Policy) (*Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("Groq API key is required")
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
