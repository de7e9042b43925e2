// Package storage defines the key/value persistence contract shared by every
// storage backend.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrKeyNotFound is returned when a key does not exist.
var ErrKeyNotFound = errors.New("key not found")

// ErrCorrupt is returned when the backing data cannot be parsed at all.
// Backends that hit it on a write discard the unreadable data and start empty.
var ErrCorrupt = errors.New("storage corrupt")

// Entry is a stored value with metadata. Value holds raw JSON.
type Entry struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Store persists JSON documents under string keys.
type Store interface {
	// Get returns the entry for key. Returns ErrKeyNotFound if missing.
	Get(ctx context.Context, key string) (Entry, error)
	// Set creates or replaces the value for key.
	Set(ctx context.Context, key string, value json.RawMessage) error
	// Delete removes key. Returns ErrKeyNotFound if missing.
	Delete(ctx context.Context, key string) error
	// List returns all entries whose key has the given prefix.
	List(ctx context.Context, prefix string) ([]Entry, error)
	// Close releases any resources held by the store.
	Close() error
}
