// Package catalogstore loads and publishes crop catalogs: blob storage
// (local disk, S3, GCS) holding catalog files, and a Postgres table of
// profiles.
package catalogstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// BlobStore abstracts blob storage for catalog files.
type BlobStore interface {
	GetCatalog(ctx context.Context, key string) ([]byte, error)
	PutCatalog(ctx context.Context, key string, data []byte) error
}

// LocalStorage implements BlobStore using the local filesystem.
// Useful for development and testing.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at the given directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

func (s *LocalStorage) path(key string) (string, error) {
	local := filepath.FromSlash(key)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("invalid catalog key %q", key)
	}
	return filepath.Join(s.BaseDir, local), nil
}

// GetCatalog reads a catalog blob.
func (s *LocalStorage) GetCatalog(ctx context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("catalog %s: %w", key, ErrNotFound)
	}
	return data, err
}

// PutCatalog writes a catalog blob, creating parent directories.
func (s *LocalStorage) PutCatalog(ctx context.Context, key string, data []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
