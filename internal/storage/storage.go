// Package storage defines the adapter the generator writes through. The core
// depends only on this capability interface, never on a concrete filesystem.
package storage

import "context"

// Adapter persists generated project files.
type Adapter interface {
	// EnsureDir creates a directory (and parents) if it does not exist.
	EnsureDir(ctx context.Context, path string) error

	// SaveFile writes content to a file, creating parent directories.
	SaveFile(ctx context.Context, path, content string) error
}
