// Package routing decides which provider services a logical operation. The
// priority order is one declared table keyed by operation kind, filtered to
// providers that actually hold credentials, with a universal last-resort
// provider closing every cascade.
package routing

import (
	"context"

	"github.com/davidbz/forge/internal/domain"
	"github.com/davidbz/forge/internal/observability"
)

// Chains declares the provider priority order per operation kind.
type Chains struct {
	Plan     []string
	Generate []string
	Refine   []string
	Fallback string
}

// Selector implements the domain.Selector interface.
type Selector struct {
	registry domain.ProviderRegistry
	chains   Chains
}

// NewSelector creates a selector over the given registry and priority table.
func NewSelector(registry domain.ProviderRegistry, chains Chains) *Selector {
	return &Selector{
		registry: registry,
		chains:   chains,
	}
}

// Chain returns the ordered provider cascade for an operation. Only
// registered (credentialed) providers appear; the fallback provider is always
// last when registered.
func (s *Selector) Chain(ctx context.Context, op domain.Operation) []string {
	registered, err := s.registry.List(ctx)
	if err != nil {
		observability.FromContext(ctx).Warn("failed to list providers", observability.Error(err))
		return nil
	}

	available := make(map[string]bool, len(registered))
	for _, name := range registered {
		available[name] = true
	}

	var declared []string
	switch op {
	case domain.OperationPlan:
		declared = s.chains.Plan
	case domain.OperationRefine:
		declared = s.chains.Refine
	case domain.OperationGenerate:
		declared = s.chains.Generate
	default:
		declared = s.chains.Generate
	}

	chain := make([]string, 0, len(declared)+1)
	seen := make(map[string]bool, len(declared)+1)
	for _, name := range declared {
		if available[name] && !seen[name] {
			chain = append(chain, name)
			seen[name] = true
		}
	}

	if s.chains.Fallback != "" && available[s.chains.Fallback] && !seen[s.chains.Fallback] {
		chain = append(chain, s.chains.Fallback)
	}

	// Nothing declared matched; fall back to every registered provider so a
	// lone credential still serves requests.
	if len(chain) == 0 {
		chain = registered
	}

	return chain
}
