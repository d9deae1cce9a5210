// Package redis provides a Redis-backed prompt cache for deployments that
// share memoized completions across processes.
package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/forge/internal/domain"
	"github.com/davidbz/forge/internal/observability"
)

const keyPrefix = "forge:prompt:"

// PromptCache implements domain.PromptCache on top of Redis.
type PromptCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPromptCache creates a Redis-backed prompt cache.
func NewPromptCache(client *redis.Client, ttl time.Duration) *PromptCache {
	return &PromptCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached text for a prompt, or ErrCacheMiss.
func (c *PromptCache) Get(ctx context.Context, prompt string) (string, error) {
	text, err := c.client.Get(ctx, cacheKey(prompt)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("failed to read prompt cache: %w", err)
	}
	return text, nil
}

// Set stores the resolved text for a prompt with the configured TTL.
func (c *PromptCache) Set(ctx context.Context, prompt, text string) error {
	key := cacheKey(prompt)

	if err := c.client.Set(ctx, key, text, c.ttl).Err(); err != nil {
		observability.FromContext(ctx).Warn("failed to write prompt cache",
			observability.String("cache_key", key),
			observability.Error(err))
		return fmt.Errorf("failed to write prompt cache: %w", err)
	}
	return nil
}

// cacheKey hashes the prompt so arbitrary text maps to a fixed-size key.
func cacheKey(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return keyPrefix + hex.EncodeToString(hash[:])
}
