// Package memory provides an in-process key/value store used by tests and
// the ephemeral storage driver.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hay-kot/setlist/internal/core/storage"
)

// Store implements storage.Store in memory. Values are copied on the way in
// and out so callers cannot alias stored bytes.
type Store struct {
	mu      sync.RWMutex
	entries map[string]storage.Entry
	now     func() time.Time

	// FailSet, when non-nil, is returned by Set instead of storing the value.
	FailSet error
	// FailGet, when non-nil, is returned by Get.
	FailGet error
}

// New returns an empty store.
func New() *Store {
	return &Store{
		entries: make(map[string]storage.Entry),
		now:     time.Now,
	}
}

// Get returns an entry by key. Returns ErrKeyNotFound if not found.
func (s *Store) Get(ctx context.Context, key string) (storage.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.FailGet != nil {
		return storage.Entry{}, s.FailGet
	}

	entry, ok := s.entries[key]
	if !ok {
		return storage.Entry{}, storage.ErrKeyNotFound
	}

	entry.Value = slices.Clone(entry.Value)
	return entry, nil
}

// Set creates or updates an entry. Unlike the file backends it accepts any
// bytes, which lets tests plant corrupt values.
func (s *Store) Set(ctx context.Context, key string, value json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailSet != nil {
		return fmt.Errorf("set %s: %w", key, s.FailSet)
	}

	now := s.now()
	entry, exists := s.entries[key]
	if !exists {
		entry = storage.Entry{Key: key, CreatedAt: now}
	}
	entry.Value = slices.Clone(value)
	entry.UpdatedAt = now

	s.entries[key] = entry
	return nil
}

// Delete removes an entry by key. Returns ErrKeyNotFound if not found.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return storage.ErrKeyNotFound
	}

	delete(s.entries, key)
	return nil
}

// List returns all entries with the given key prefix, sorted by key.
func (s *Store) List(ctx context.Context, prefix string) ([]storage.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []storage.Entry
	for key, entry := range s.entries {
		if strings.HasPrefix(key, prefix) {
			entry.Value = slices.Clone(entry.Value)
			entries = append(entries, entry)
		}
	}

	slices.SortFunc(entries, func(a, b storage.Entry) int {
		return strings.Compare(a.Key, b.Key)
	})

	return entries, nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
