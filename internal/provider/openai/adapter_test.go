package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
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
		APIKey:    "sk-test",
		BaseURL:   baseURL,
		Model:     "gpt-4-turbo",
		Timeout:   5,
		MaxTokens: 4096,
	}
}

func TestProvider_Complete(t *testing.T) {
	t.Run("should send bearer auth and parse the first choice", func(t *testing.T) {
		var gotAuth, gotModel string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")

			var req map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			gotModel, _ = req["model"].(string)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hello from openai"}}]}`))
		}))
		defer server.Close()

		provider, err := NewProvider(testConfig(server.URL), instantPolicy(0))
		require.NoError(t, err)

		text, err := provider.Complete(context.Background(), "hi", nil)

		require.NoError(t, err)
		require.Equal(t, "hello from openai", text)
		require.Equal(t, "Bearer sk-test", gotAuth)
		require.Equal(t, "gpt-4-turbo", gotModel)
	})

	t.Run("should retry transient failures and then succeed", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if calls.Add(1) <= 2 {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":{"message":"server overloaded"}}`))
				return
			}
			_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"recovered"}}]}`))
		}))
		defer server.Close()

		provider, err := NewProvider(testConfig(server.URL), instantPolicy(5))
		require.NoError(t, err)

		text, err := provider.Complete(context.Background(), "hi", nil)

		require.NoError(t, err)
		require.Equal(t, "recovered", text)
		require.Equal(t, int32(3), calls.Load())
	})

	t.Run("should exhaust retries and surface the last upstream message", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"still down"}}`))
		}))
		defer server.Close()

		provider, err := NewProvider(testConfig(server.URL), instantPolicy(5))
		require.NoError(t, err)

		_, err = provider.Complete(context.Background(), "hi", nil)

		require.Error(t, err)
		require.Equal(t, int32(6), calls.Load())

		var exhausted *domain.ExhaustedRetriesError
		require.ErrorAs(t, err, &exhausted)
		require.Contains(t, err.Error(), "still down")
	})

	t.Run("should use the access token over the static key", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
		}))
		defer server.Close()

		provider, err := NewProvider(testConfig(server.URL), instantPolicy(0))
		require.NoError(t, err)

		_, err = provider.Complete(context.Background(), "hi", &domain.AuthContext{AccessToken: "user-token"})

		require.NoError(t, err)
		require.Equal(t, "Bearer user-token", gotAuth)
	})
}
