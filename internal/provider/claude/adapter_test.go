package claude

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/forge/internal/domain"
	"github.com/davidbz/forge/internal/resilience"
)

func instantPolicy(maxRetries int) resilience.Policy {
	return resilience.Policy{
		MaxRetries: maxRetries,
		Sleep: func(_ context.Context, _ time.Duration) error {
			return nil
		},
	}
}

func testConfig(baseURL string) Config {
	return Config{
		APIKey:    "sk-ant-test",
		BaseURL:   baseURL,
		Model:     "claude-3-5-sonnet-20240620",
		Timeout:   5,
		MaxTokens: 4096,
	}
}

func TestProvider_Complete(t *testing.T) {
	t.Run("should authenticate with the proprietary header and parse content", func(t *testing.T) {
		var gotKey, gotVersion, gotSystem string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.Header.Get("x-api-key")
			gotVersion = r.Header.Get("anthropic-version")

			var req messagesRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			gotSystem = req.System

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"hello from claude"}]}`))
		}))
		defer server.Close()

		provider, err := NewProvider(testConfig(server.URL), instantPolicy(0))
		require.NoError(t, err)

		text, err := provider.Complete(context.Background(), "hi", nil)

		require.NoError(t, err)
		require.Equal(t, "hello from claude", text)
		require.Equal(t, "sk-ant-test", gotKey)
		require.Equal(t, "2023-06-01", gotVersion)
		require.NotEmpty(t, gotSystem)
	})

	t.Run("should prefer a per-call credential override", func(t *testing.T) {
		var gotKey string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.Header.Get("x-api-key")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"ok"}]}`))
		}))
		defer server.Close()

		provider, err := NewProvider(testConfig(server.URL), instantPolicy(0))
		require.NoError(t, err)

		_, err = provider.Complete(context.Background(), "hi", &domain.AuthContext{APIKey: "override-key"})

		require.NoError(t, err)
		require.Equal(t, "override-key", gotKey)
	})

	t.Run("should surface the upstream error message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"prompt too long"}}`))
		}))
		defer server.Close()

		provider, err := NewProvider(testConfig(server.URL), instantPolicy(0))
		require.NoError(t, err)

		_, err = provider.Complete(context.Background(), "hi", nil)

		require.Error(t, err)
		require.Contains(t, err.Error(), "prompt too long")
	})

	t.Run("should fail with an empty response error when no content is returned", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"content":[]}`))
		}))
		defer server.Close()

		provider, err := NewProvider(testConfig(server.URL), instantPolicy(0))
		require.NoError(t, err)

		_, err = provider.Complete(context.Background(), "hi", nil)

		var emptyErr *domain.EmptyResponseError
		require.ErrorAs(t, err, &emptyErr)
	})
}
