package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStorage keeps one JSON file per key under a directory. Files are
// written to a temp file and renamed into place so a crash never leaves a
// half-written session behind.
type FileStorage struct {
	dir string
}

// NewFileStorage constructs a storage rooted at dir. The directory is created on first save.
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

// Dir exposes the storage root.
func (f *FileStorage) Dir() string {
	if f == nil {
		return ""
	}
	return f.dir
}

func (f *FileStorage) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Load reads the record for key.
func (f *FileStorage) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Save writes the record for key with owner-only permissions.
func (f *FileStorage) Save(key string, data []byte) error {
	if f == nil || f.dir == "" {
		return fmt.Errorf("session storage directory not configured")
	}
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return err
	}

	target := f.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Clear removes the record for key. Missing records are not an error.
func (f *FileStorage) Clear(key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
