// Package gemini provides the Google Generative Language backend. With a
// static key the credential travels as a query parameter; an access-token
// override switches to bearer auth plus the user-project header.
package gemini

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
	providerName = "gemini"
	temperature  = 0.7
	topK         = 40
	topP         = 0.95
)

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Provider implements the domain.Provider interface for Gemini.
type Provider struct {
	client *provider.Client
}

// NewProvider creates a new Gemini provider.
func NewProvider(config Config, policy resilience.Policy) (*Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("Gemini API key is required")
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
		payload := generateRequest{
			Contents: []content{{Parts: []part{{Text: prompt}}}},
			GenerationConfig: generationConfig{
				Temperature:     temperature,
				TopK:            topK,
				TopP:            topP,
				MaxOutputTokens: config.MaxOutputTokens,
			},
		}

		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}

		url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", baseURL, config.Model)

		accessToken := ""
		if auth != nil && auth.AccessToken != "" {
			accessToken = auth.AccessToken
		}

		apiKey := config.APIKey
		if auth != nil && auth.APIKey != "" {
			apiKey = auth.APIKey
		}

		if accessToken == "" {
			url += "?key=" + apiKey
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}

		if accessToken != "" {
			req.Header.Set("Authorization", "Bearer "+accessToken)
			if config.ProjectID != "" {
				req.Header.Set("x-goog-user-project", config.ProjectID)
			}
		}

		return req, nil
	}
}

func parseResponse(body []byte) (string, error) {
	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &domain.ProviderError{
			Provider: providerName,
			Message:  fmt.Sprintf("malformed response body: %v", err),
		}
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &domain.EmptyResponseError{Provider: providerName}
	}

	text := resp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", &domain.EmptyResponseError{Provider: providerName}
	}
	return text, nil
}

// Complete sends a completion request and returns the generated text.
func (p *Provider) Complete(ctx context.Context, prompt string, auth *domain.AuthContext) (string, error) {
	return p.client.Complete(ctx, prompt, auth)
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return providerName
}
