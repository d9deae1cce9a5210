package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/forge/internal/cache"
	"github.com/davidbz/forge/internal/domain"
)

func TestMemory_Get(t *testing.T) {
	t.Run("should miss for an unknown prompt", func(t *testing.T) {
		c := cache.NewMemory(time.Minute, 10)

		_, err := c.Get(context.Background(), "never seen")

		require.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("should return a stored value", func(t *testing.T) {
		c := cache.NewMemory(time.Minute, 10)

		require.NoError(t, c.Set(context.Background(), "prompt", "resolved text"))

		text, err := c.Get(context.Background(), "prompt")
		require.NoError(t, err)
		require.Equal(t, "resolved text", text)
	})

	t.Run("should expire entries after the ttl", func(t *testing.T) {
		c := cache.NewMemory(time.Millisecond, 10)

		require.NoError(t, c.Set(context.Background(), "prompt", "resolved text"))
		time.Sleep(5 * time.Millisecond)

		_, err := c.Get(context.Background(), "prompt")
		require.ErrorIs(t, err, domain.ErrCacheMiss)
	})
}

func TestMemory_Set(t *testing.T) {
	t.Run("should evict the oldest entry at the size bound", func(t *testing.T) {
		c := cache.NewMemory(time.Minute, 2)

		require.NoError(t, c.Set(context.Background(), "first", "1"))
		require.NoError(t, c.Set(context.Background(), "second", "2"))
		require.NoError(t, c.Set(context.Background(), "third", "3"))

		require.Equal(t, 2, c.Len())

		_, err := c.Get(context.Background(), "first")
		require.ErrorIs(t, err, domain.ErrCacheMiss)

		text, err := c.Get(context.Background(), "third")
		require.NoError(t, err)
		require.Equal(t, "3", text)
	})

	t.Run("should overwrite an existing entry without eviction", func(t *testing.T) {
		c := cache.NewMemory(time.Minute, 2)

		require.NoError(t, c.Set(context.Background(), "first", "1"))
		require.NoError(t, c.Set(context.Background(), "second", "2"))
		require.NoError(t, c.Set(context.Background(), "first", "updated"))

		require.Equal(t, 2, c.Len())

		text, err := c.Get(context.Background(), "first")
		require.NoError(t, err)
		require.Equal(t, "updated", text)
	})
}
