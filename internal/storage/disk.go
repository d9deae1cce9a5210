package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Disk is a filesystem-backed adapter rooted at a base directory.
type Disk struct {
	baseDir string
}

// NewDisk creates a disk adapter. An empty baseDir uses the working directory.
func NewDisk(baseDir string) *Disk {
	if baseDir == "" {
		baseDir = "."
	}
	return &Disk{baseDir: baseDir}
}

// EnsureDir creates a directory (and parents) under the base directory.
func (d *Disk) EnsureDir(_ context.Context, path string) error {
	full := filepath.Join(d.baseDir, path)
	if err := os.MkdirAll(full, dirPerm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// SaveFile writes content under the base directory, creating parents.
func (d *Disk) SaveFile(_ context.Context, path, content string) error {
	full := filepath.Join(d.baseDir, path)

	if err := os.MkdirAll(filepath.Dir(full), dirPerm); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", path, err)
	}

	if err := os.WriteFile(full, []byte(content), filePerm); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
