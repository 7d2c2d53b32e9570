package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	catalogapp "github.com/lincyaw/storefront/internal/application/catalog"
	infraconfig "github.com/lincyaw/storefront/internal/infrastructure/config"
)

var _ catalogapp.ObjectStorageService = (*LocalObjectStorage)(nil)

// LocalObjectStorage stores objects on the local filesystem. Used as
// the primary backend in development and as the fallback when the CDN
// upload fails.
type LocalObjectStorage struct {
	dir     string
	baseURL string
}

// NewLocalObjectStorage creates a directory-backed storage rooted at
// cfg.LocalDir
func NewLocalObjectStorage(cfg *infraconfig.StorageConfig) (*LocalObjectStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	dir := cfg.LocalDir
	if dir == "" {
		dir = "./uploads"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &LocalObjectStorage{
		dir:     dir,
		baseURL: strings.TrimSuffix(cfg.LocalBaseURL, "/"),
	}, nil
}

// PutObject writes the object under the storage directory and returns
// its servable URL
func (s *LocalObjectStorage) PutObject(ctx context.Context, storageKey string, body io.Reader, size int64, contentType string) (string, error) {
	path, err := s.resolve(storageKey)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(s.dir, path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve object path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create object directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create object file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, body); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write object: %w", err)
	}

	return s.baseURL + "/" + filepath.ToSlash(rel), nil
}

// DeleteObject removes the object file. Deleting a missing object is
// not an error.
func (s *LocalObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	path, err := s.resolve(storageKey)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// ObjectExists checks if the object file exists
func (s *LocalObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	path, err := s.resolve(storageKey)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// resolve maps a storage key to a path inside the storage directory,
// rejecting keys that would escape it
func (s *LocalObjectStorage) resolve(storageKey string) (string, error) {
	if storageKey == "" {
		return "", errors.New("storage key is required")
	}

	cleaned := filepath.Clean("/" + storageKey)
	if cleaned == "/" {
		return "", errors.New("invalid storage key")
	}
	return filepath.Join(s.dir, cleaned), nil
}
