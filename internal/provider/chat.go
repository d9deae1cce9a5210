package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/davidbz/forge/internal/domain"
)

// ChatSpec describes an OpenAI-compatible chat completions endpoint. Four of
// the six backends speak this wire shape and differ only in host, path, model,
// generation parameters, and extra headers.
type ChatSpec struct {
	Path        string
	Model       string
	Temperature float64
	TopP        float64
	MaxTokens   int
	Headers     map[string]string
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	TopP        float64       `json:"top_p,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatBuilder returns a BuildFunc for an OpenAI-compatible endpoint using
// bearer authentication. An AuthContext override replaces the static key.
func ChatBuilder(spec ChatSpec, apiKey string) BuildFunc {
	return func(ctx context.Context, baseURL, prompt string, auth *domain.AuthContext) (*http.Request, error) {
		payload := chatRequest{
			Model: spec.Model,
			Messages: []chatMessage{
				{Role: "system", Content: SystemPersona},
				{Role: "user", Content: prompt},
			},
			Temperature: spec.Temperature,
			TopP:        spec.TopP,
			MaxTokens:   spec.MaxTokens,
		}

		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+spec.Path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}

		req.Header.Set("Authorization", "Bearer "+bearerCredential(apiKey, auth))
		for name, value := range spec.Headers {
			req.Header.Set(name, value)
		}

		return req, nil
	}
}

// ChatParser returns a ParseFunc reading choices[0].message.content.
func ChatParser(providerName string) ParseFunc {
	return func(body []byte) (string, error) {
		var resp chatResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", &domain.ProviderError{
				Provider: providerName,
				Message:  fmt.Sprintf("malformed response body: %v", err),
			}
		}

		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			return "", &domain.EmptyResponseError{Provider: providerName}
		}
		return resp.Choices[0].Message.Content, nil
	}
}

// bearerCredential picks the per-call override when present, else the static key.
func bearerCredential(apiKey string, auth *domain.AuthContext) string {
	if auth != nil {
		if auth.AccessToken != "" {
			return auth.AccessToken
		}
		if auth.APIKey != "" {
			return auth.APIKey
		}
	}
	return apiKey
}
