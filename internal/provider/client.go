// Package provider holds the shared resilient HTTP JSON caller used by every
// backend adapter. A backend supplies a request builder and a response parser;
// the retry loop, timeout handling, and error classification live here once.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/davidbz/forge/internal/domain"
	"github.com/davidbz/forge/internal/observability"
	"github.com/davidbz/forge/internal/resilience"
)

// SystemPersona is the fixed system role sent with every completion request.
const SystemPersona = "You are Forge, a world-class software engineer. " +
	"You provide high-quality code and detailed project plans in JSON format when requested."

// BuildFunc constructs a provider-specific HTTP request for a prompt.
type BuildFunc func(ctx context.Context, baseURL, prompt string, auth *domain.AuthContext) (*http.Request, error)

// ParseFunc extracts the generated text from a provider response body.
type ParseFunc func(body []byte) (string, error)

// Client executes completion calls against one backend with the shared
// resilience policy.
type Client struct {
	name       string
	baseURL    string
	timeout    time.Duration
	policy     resilience.Policy
	httpClient *http.Client
	build      BuildFunc
	parse      ParseFunc
}

// NewClient creates a resilient client for one backend.
func NewClient(
	name, baseURL string,
	timeout time.Duration,
	policy resilience.Policy,
	build BuildFunc,
	parse ParseFunc,
) *Client {
	return &Client{
		name:       name,
		baseURL:    baseURL,
		timeout:    timeout,
		policy:     policy,
		httpClient: &http.Client{},
		build:      build,
		parse:      parse,
	}
}

// Name returns the backend identifier.
func (c *Client) Name() string {
	return c.name
}

// Complete sends the prompt and returns generated text, retrying transient
// failures per the resilience policy.
func (c *Client) Complete(ctx context.Context, prompt string, auth *domain.AuthContext) (string, error) {
	ctx = observability.WithProvider(ctx, c.name)

	return c.policy.Do(ctx, c.name, func(ctx context.Context, _ int) (string, error) {
		return c.attempt(ctx, prompt, auth)
	})
}

// attempt performs exactly one wire round trip with a hard per-attempt timeout.
func (c *Client) attempt(ctx context.Context, prompt string, auth *domain.AuthContext) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.build(ctx, c.baseURL, prompt, auth)
	if err != nil {
		return "", &domain.TransportError{Provider: c.name, Err: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.TransportError{Provider: c.name, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.TransportError{Provider: c.name, Err: err}
	}

	// The error envelope wins over the status code so the upstream message is
	// surfaced verbatim.
	if msg := errorMessage(body); msg != "" {
		return "", &domain.ProviderError{Provider: c.name, Message: msg}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &domain.ProviderError{
			Provider: c.name,
			Message:  fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, truncate(body, 256)),
		}
	}

	text, err := c.parse(body)
	if err != nil {
		return "", err
	}
	return text, nil
}

// errorEnvelope is the common {"error": {"message": "..."}} failure shape.
type errorEnvelope struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func errorMessage(body []byte) string {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Error == nil {
		return ""
	}
	return envelope.Error.Message
}

func truncate(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "..."
}
