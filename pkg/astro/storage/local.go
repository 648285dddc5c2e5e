package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Local archives source PDFs on the local filesystem under a root
// directory, the default backend (SPEC_FULL.md §11 StorageConfig.Backend
// = "local").
type Local struct {
	root string
}

// NewLocal returns a Local archiver rooted at dir, creating it if absent.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create archive root %s: %w", dir, err)
	}
	return &Local{root: dir}, nil
}

func (l *Local) Put(ctx context.Context, sourceTitle string, content []byte) (string, error) {
	key := Key(sourceTitle, content)
	path := filepath.Join(l.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("storage: create archive dir: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return key, nil // content-addressed: already archived
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("storage: write archive %s: %w", key, err)
	}
	return key, nil
}

func (l *Local) Get(ctx context.Context, key string) ([]byte, error) {
	path := filepath.Join(l.root, filepath.FromSlash(key))
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("storage: archive %s: %w", key, os.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read archive %s: %w", key, err)
	}
	return content, nil
}

func (l *Local) IsHealthy(ctx context.Context) bool {
	info, err := os.Stat(l.root)
	return err == nil && info.IsDir()
}
