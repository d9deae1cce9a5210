// Package claude provides the Anthropic messages backend. The key travels in
// a proprietary header alongside a pinned API version header, and the system
// persona is a top-level field rather than a message.
package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/davidbz/forge/internal/domain"
	"github.com/davidbz/forge/internal/provider"
	"github.com/davidbz/forge/internal/resilience"
)

const (
	providerName = "claude"
	apiPath      = "/v1/messages"
	apiVersion   = "2023-06-01"
)

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
	System    string    `json:"system"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Provider implements the domain.Provider interface for Anthropic.
type Provider struct {
	client *provider.Client
}

// NewProvider creates a new Anthropic provider.
func NewProvider(config Config, policy resilience.Policy) (*Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("Claude API key is required")
	}

	return &Provider{
		client: provider.NewClient(
			providerName,
			config.BaseURL,
			time.Duration(config.Timeout)*time.Second,
			policy,
			buildRequest(config),
			parseResponse,
		),
	}, nil
}

func buildRequest(config Config) provider.BuildFunc {
	return func(ctx context.Context, baseURL, prompt string, auth *domain.AuthContext) (*http.Request, error) {
		payload := messagesRequest{
			Model:     config.Model,
			MaxTokens: config.MaxTokens,
			Messages:  []message{{Role: "user", Content: prompt}},
			System:    provider.SystemPersona,
		}

		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+apiPath, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}

		req.Header.Set("anthropic-version", apiVersion)
		switch {
		case auth != nil && auth.AccessToken != "":
			req.Header.Set("Authorization", "Bearer "+auth.AccessToken)
		case auth != nil && auth.APIKey != "":
			req.Header.Set("x-api-key", auth.APIKey)
		default:
			req.Header.Set("x-api-key", config.APIKey)
		}

		return req, nil
	}
}

func parseResponse(body []byte) (string, error) {
	var resp messagesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &domain.ProviderError{
			Provider: providerName,
			Message:  fmt.Sprintf("malformed response body: %v", err),
		}
	}

	if len(resp.Content) == 0 || resp.Content[0].Text == "" {
		return "", &domain.EmptyResponseError{Provider: providerName}
	}
	return resp.Content[0].Text, nil
}

// Complete sends a completion request and returns the generated text.
func (p *Provider) Complete(ctx context.Context, prompt string, auth *domain.AuthContext) (string, error) {
	return p.client.Complete(ctx, prompt, auth)
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return providerName
}
