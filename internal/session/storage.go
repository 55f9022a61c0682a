package session

import "errors"

// ErrNotFound is returned by Storage.Load when no record exists for a key.
var ErrNotFound = errors.New("session: record not found")

// Storage is a small client-side key-value store for the session record.
type Storage interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
	Clear(key string) error
}
