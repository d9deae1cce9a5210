package domain

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/sync/singleflight"

	"github.com/davidbz/forge/internal/observability"
)

// CompletionService is the orchestration core: it resolves a prompt to
// generated text through the provider cascade for an operation, memoizing
// results and collapsing concurrent identical requests into one round trip.
type CompletionService struct {
	registry ProviderRegistry
	selector Selector
	cache    PromptCache
	flight   singleflight.Group
}

// NewCompletionService creates a new completion service (DI constructor).
func NewCompletionService(registry ProviderRegistry, selector Selector, cache PromptCache) *CompletionService {
	return &CompletionService{
		registry: registry,
		selector: selector,
		cache:    cache,
		flight:   singleflight.Group{},
	}
}

// Complete resolves a prompt through the provider cascade for op.
//
// Calls without an auth override are memoized by exact prompt text and
// de-duplicated while in flight: concurrent callers with the same prompt
// share one network round trip and one result. Calls carrying an auth
// override bypass both layers, since their responses may be
// credential-specific.
func (s *CompletionService) Complete(
	ctx context.Context,
	op Operation,
	prompt string,
	auth *AuthContext,
) (string, error) {
	if prompt == "" {
		return "", errors.New("prompt cannot be empty")
	}

	ctx = observability.WithOperation(ctx, string(op))
	logger := observability.FromContext(ctx)

	if auth != nil {
		return s.cascade(ctx, op, prompt, auth)
	}

	if s.cache != nil {
		text, err := s.cache.Get(ctx, prompt)
		if err == nil {
			logger.Debug("prompt cache hit")
			return text, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			logger.Warn("cache get failed, continuing without cache", observability.Error(err))
		}
	}

	result, err, shared := s.flight.Do(prompt, func() (interface{}, error) {
		text, cascadeErr := s.cascade(ctx, op, prompt, nil)
		if cascadeErr != nil {
			return nil, cascadeErr
		}

		if s.cache != nil {
			if setErr := s.cache.Set(ctx, prompt, text); setErr != nil {
				logger.Warn("failed to store in cache", observability.Error(setErr))
			}
		}
		return text, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		logger.Debug("joined in-flight request for identical prompt")
	}

	text, ok := result.(string)
	if !ok {
		return "", errors.New("unexpected in-flight result type")
	}
	return text, nil
}

// cascade tries each provider in the declared priority order, returning the
// first success. Total exhaustion yields a composed error naming every
// failure.
func (s *CompletionService) cascade(
	ctx context.Context,
	op Operation,
	prompt string,
	auth *AuthContext,
) (string, error) {
	logger := observability.FromContext(ctx)

	chain := s.selector.Chain(ctx, op)
	if len(chain) == 0 {
		return "", errors.New("no providers configured")
	}

	var failures error
	for i, name := range chain {
		provider, err := s.registry.Get(ctx, name)
		if err != nil {
			failures = multierr.Append(failures, err)
			continue
		}

		text, err := provider.Complete(ctx, prompt, auth)
		if err == nil {
			if i > 0 {
				logger.Info("fallback provider succeeded",
					observability.String("provider", name),
					observability.Int("position", i))
			}
			return text, nil
		}

		logger.Warn("provider failed, trying next in chain",
			observability.String("provider", name),
			observability.Error(err))
		failures = multierr.Append(failures, err)
	}

	return "", fmt.Errorf("all providers failed for operation %s: %w", op, failures)
}
