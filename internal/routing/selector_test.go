package routing_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/forge/internal/domain"
	"github.com/davidbz/forge/internal/routing"
)

// mockRegistry is a mock implementation of ProviderRegistry for testing.
type mockRegistry struct {
	names []string
}

func (m *mockRegistry) Register(_ context.Context, provider domain.Provider) error {
	m.names = append(m.names, provider.Name())
	return nil
}

func (m *mockRegistry) Get(_ context.Context, providerName string) (domain.Provider, error) {
	for _, name := range m.names {
		if name == providerName {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("provider %s not found", providerName)
}

func (m *mockRegistry) List(_ context.Context) ([]string, error) {
	return m.names, nil
}

func chains() routing.Chains {
	return routing.Chains{
		Plan:     []string{"openrouter", "perplexity"},
		Generate: []string{"openai", "claude", "perplexity"},
		Refine:   []string{"claude", "groq", "openrouter", "perplexity"},
		Fallback: "gemini",
	}
}

func TestSelector_Chain(t *testing.T) {
	t.Run("should honor the declared priority order per operation", func(t *testing.T) {
		registry := &mockRegistry{names: []string{"gemini", "openai", "claude", "openrouter", "perplexity", "groq"}}
		selector := routing.NewSelector(registry, chains())

		require.Equal(t,
			[]string{"openrouter", "perplexity", "gemini"},
			selector.Chain(context.Background(), domain.OperationPlan))
		require.Equal(t,
			[]string{"openai", "claude", "perplexity", "gemini"},
			selector.Chain(context.Background(), domain.OperationGenerate))
		require.Equal(t,
			[]string{"claude", "groq", "openrouter", "perplexity", "gemini"},
			selector.Chain(context.Background(), domain.OperationRefine))
	})

	t.Run("should skip providers without credentials", func(t *testing.T) {
		registry := &mockRegistry{names: []string{"gemini", "perplexity"}}
		selector := routing.NewSelector(registry, chains())

		chain := selector.Chain(context.Background(), domain.OperationGenerate)

		require.Equal(t, []string{"perplexity", "gemini"}, chain)
	})

	t.Run("should always close the cascade with the fallback provider", func(t *testing.T) {
		registry := &mockRegistry{names: []string{"gemini", "openai"}}
		selector := routing.NewSelector(registry, chains())

		chain := selector.Chain(context.Background(), domain.OperationGenerate)

		require.Equal(t, "gemini", chain[len(chain)-1])
	})

	t.Run("should not duplicate the fallback when declared in the chain", func(t *testing.T) {
		registry := &mockRegistry{names: []string{"gemini"}}
		selector := routing.NewSelector(registry, routing.Chains{
			Plan:     []string{"gemini"},
			Generate: nil,
			Refine:   nil,
			Fallback: "gemini",
		})

		chain := selector.Chain(context.Background(), domain.OperationPlan)

		require.Equal(t, []string{"gemini"}, chain)
	})

	t.Run("should fall back to all registered providers when nothing declared matches", func(t *testing.T) {
		registry := &mockRegistry{names: []string{"echo"}}
		selector := routing.NewSelector(registry, chains())

		chain := selector.Chain(context.Background(), domain.OperationPlan)

		require.Equal(t, []string{"echo"}, chain)
	})
}
