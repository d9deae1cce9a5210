package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/forge/internal/storage"
)

func TestDisk(t *testing.T) {
	t.Run("should create nested directories", func(t *testing.T) {
		base := t.TempDir()
		adapter := storage.NewDisk(base)

		err := adapter.EnsureDir(context.Background(), "projects/calc/assets")

		require.NoError(t, err)
		info, statErr := os.Stat(filepath.Join(base, "projects/calc/assets"))
		require.NoError(t, statErr)
		require.True(t, info.IsDir())
	})

	t.Run("should write a file and its parent directories", func(t *testing.T) {
		base := t.TempDir()
		adapter := storage.NewDisk(base)

		err := adapter.SaveFile(context.Background(), "projects/calc/index.html", "<html></html>")

		require.NoError(t, err)
		content, readErr := os.ReadFile(filepath.Join(base, "projects/calc/index.html"))
		require.NoError(t, readErr)
		require.Equal(t, "<html></html>", string(content))
	})
}

func TestMemory(t *testing.T) {
	t.Run("should normalize paths and snapshot files", func(t *testing.T) {
		adapter := storage.NewMemory()

		require.NoError(t, adapter.EnsureDir(context.Background(), "projects/calc"))
		require.NoError(t, adapter.SaveFile(context.Background(), `projects\calc\index.html`, "<html></html>"))

		files := adapter.Files()
		require.Len(t, files, 1)
		require.Equal(t, "<html></html>", files["projects/calc/index.html"])
	})

	t.Run("should return an independent snapshot", func(t *testing.T) {
		adapter := storage.NewMemory()
		require.NoError(t, adapter.SaveFile(context.Background(), "a.txt", "original"))

		snapshot := adapter.Files()
		snapshot["a.txt"] = "mutated"

		require.Equal(t, "original", adapter.Files()["a.txt"])
	})

	t.Run("should clear stored files", func(t *testing.T) {
		adapter := storage.NewMemory()
		require.NoError(t, adapter.SaveFile(context.Background(), "a.txt", "content"))

		adapter.Clear()

		require.Empty(t, adapter.Files())
	})
}
