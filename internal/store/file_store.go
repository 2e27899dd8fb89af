package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps each key in its own JSON file under a root directory.
type FileStore struct {
	rootDir string
}

func NewFileStore(rootDir string) (*FileStore, error) {
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll > %w", err)
	}
	return &FileStore{rootDir: rootDir}, nil
}

func (store *FileStore) filePath(key string) string {
	return filepath.Join(store.rootDir, key+".json")
}

func (store *FileStore) Get(key string) ([]byte, bool, error) {
	contents, err := os.ReadFile(store.filePath(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("os.ReadFile > %w", err)
	}
	return contents, true, nil
}

// Set writes through a temporary file so a crash never leaves a
// half-written value behind.
func (store *FileStore) Set(key string, value []byte) error {
	path := store.filePath(key)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, value, 0o644); err != nil {
		return fmt.Errorf("os.WriteFile > %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("os.Rename > %w", err)
	}
	return nil
}

func (store *FileStore) Close() error {
	return nil
}
