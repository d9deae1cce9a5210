package domain

import "context"

// Provider represents one remote text-completion backend.
type Provider interface {
	// Complete sends a prompt and returns the generated text, applying the
	// provider's retry policy internally. A non-nil auth overrides the
	// provider's static credential for this call only.
	Complete(ctx context.Context, prompt string, auth *AuthContext) (string, error)

	// Name returns the provider identifier.
	Name() string
}

// ProviderRegistry manages available providers.
type ProviderRegistry interface {
	// Register adds a provider to the registry.
	Register(ctx context.Context, provider Provider) error

	// Get retrieves a provider by name.
	Get(ctx context.Context, providerName string) (Provider, error)

	// List returns all available providers.
	List(ctx context.Context) ([]string, error)
}

// PromptCache memoizes resolved completions keyed by exact prompt text.
type PromptCache interface {
	// Get returns the cached text for a prompt, or ErrCacheMiss.
	Get(ctx context.Context, prompt string) (string, error)

	// Set stores the resolved text for a prompt.
	Set(ctx context.Context, prompt, text string) error
}

// Selector yields the ordered provider cascade for an operation kind.
type Selector interface {
	// Chain returns provider names in priority order. Never empty when at
	// least one provider is registered.
	Chain(ctx context.Context, op Operation) []string
}

// Completer is the single caller-facing operation of the orchestration core.
type Completer interface {
	// Complete resolves a prompt to generated text through the provider
	// cascade for the given operation.
	Complete(ctx context.Context, op Operation, prompt string, auth *AuthContext) (string, error)
}
