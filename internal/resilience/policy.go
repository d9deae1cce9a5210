// Package resilience holds the retry/backoff/timeout contract applied
// uniformly by every provider client. One attempt loop, parameterized by the
// caller, instead of a copy per provider.
package resilience

import (
	"context"
	"time"

	"github.com/davidbz/forge/internal/domain"
	"github.com/davidbz/forge/internal/observability"
)

// DefaultMaxRetries is the retry ceiling after the first attempt.
const DefaultMaxRetries = 5

// SleepFunc waits for the given duration or until the context is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Policy drives the shared retry loop.
type Policy struct {
	MaxRetries int
	Sleep      SleepFunc
}

// New creates a policy with the default context-aware sleep.
func New(maxRetries int) Policy {
	return Policy{
		MaxRetries: maxRetries,
		Sleep:      SleepContext,
	}
}

// Backoff returns the delay before retrying after the given attempt,
// starting at attempt 0: 1s, 2s, 4s, 8s, 16s.
func (p Policy) Backoff(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)) * time.Second
}

// Do runs call until it succeeds or the retry ceiling is reached. Exhaustion
// yields an ExhaustedRetriesError preserving the most recent error.
func (p Policy) Do(
	ctx context.Context,
	providerName string,
	call func(ctx context.Context, attempt int) (string, error),
) (string, error) {
	logger := observability.FromContext(ctx)

	var lastErr error
	for attempt := 0; ; attempt++ {
		text, err := call(ctx, attempt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if attempt >= p.MaxRetries {
			return "", &domain.ExhaustedRetriesError{
				Provider: providerName,
				Attempts: attempt + 1,
				Last:     lastErr,
			}
		}

		backoff := p.Backoff(attempt)
		logger.Warn("provider call failed, retrying",
			observability.String("provider", providerName),
			observability.Int("attempt", attempt+1),
			observability.Int("max_retries", p.MaxRetries),
			observability.Duration("backoff", backoff),
			observability.Error(err))

		sleep := p.Sleep
		if sleep == nil {
			sleep = SleepContext
		}
		if sleepErr := sleep(ctx, backoff); sleepErr != nil {
			return "", &domain.TransportError{Provider: providerName, Err: sleepErr}
		}
	}
}

// SleepContext waits for the given duration or until the context is done.
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
