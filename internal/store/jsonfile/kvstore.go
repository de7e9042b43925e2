// Package jsonfile provides a JSON file backed key/value store.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/setlist/internal/core/storage"
)

// kvFile is the root JSON structure stored on disk.
type kvFile struct {
	Entries map[string]storage.Entry `json:"entries"`
}

// KVStore implements storage.Store using a single JSON file. Writes go through
// a temp file and rename, and a flock on a sidecar file guards against other
// processes (for example a running `serve`) touching the file concurrently.
type KVStore struct {
	path string
	mu   sync.RWMutex
	now  func() time.Time
	log  zerolog.Logger
}

// NewKVStore creates a new JSON file KV store at the given path.
func NewKVStore(path string) *KVStore {
	return &KVStore{path: path, now: time.Now, log: zerolog.Nop()}
}

// WithLogger sets the logger used to report recovered corrupt files.
func (s *KVStore) WithLogger(l zerolog.Logger) *KVStore {
	s.log = l
	return s
}

// Path returns the backing file path.
func (s *KVStore) Path() string {
	return s.path
}

// CorruptPath is where an unparseable file is moved before a write.
func (s *KVStore) CorruptPath() string {
	return s.path + ".corrupt"
}

// lockPath returns the path to the lock file.
func (s *KVStore) lockPath() string {
	return s.path + ".lock"
}

// withSharedLock executes fn while holding a shared (read) file lock.
// Multiple processes can hold shared locks simultaneously.
func (s *KVStore) withSharedLock(fn func() error) error {
	return s.withFileLock(syscall.LOCK_SH, fn)
}

// withExclusiveLock executes fn while holding an exclusive (write) file lock.
func (s *KVStore) withExclusiveLock(fn func() error) error {
	return s.withFileLock(syscall.LOCK_EX, fn)
}

// withFileLock acquires a file lock, executes fn, then releases the lock.
func (s *KVStore) withFileLock(lockType int, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}

	f, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	if err := syscall.Flock(int(f.Fd()), lockType); err != nil {
		return fmt.Errorf("acquire file lock: %w", err)
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN) //nolint:errcheck

	return fn()
}

// Get returns an entry by key. Returns ErrKeyNotFound if not found.
func (s *KVStore) Get(ctx context.Context, key string) (storage.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		entry storage.Entry
		found bool
	)

	err := s.withSharedLock(func() error {
		file, err := s.load()
		if err != nil {
			return err
		}

		entry, found = file.Entries[key]
		return nil
	})
	if err != nil {
		return storage.Entry{}, err
	}

	if !found {
		return storage.Entry{}, storage.ErrKeyNotFound
	}

	return entry, nil
}

// Set creates or updates an entry.
func (s *KVStore) Set(ctx context.Context, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return fmt.Errorf("set %s: value is not valid JSON", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withExclusiveLock(func() error {
		file, err := s.loadForWrite()
		if err != nil {
			return err
		}

		now := s.now()
		entry, exists := file.Entries[key]
		if exists {
			entry.Value = value
			entry.UpdatedAt = now
		} else {
			entry = storage.Entry{
				Key:       key,
				Value:     value,
				CreatedAt: now,
				UpdatedAt: now,
			}
		}

		file.Entries[key] = entry
		return s.save(file)
	})
}

// Delete removes an entry by key. Returns ErrKeyNotFound if not found.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var notFound bool

	err := s.withExclusiveLock(func() error {
		file, err := s.loadForWrite()
		if err != nil {
			return err
		}

		if _, ok := file.Entries[key]; !ok {
			notFound = true
			return nil
		}

		delete(file.Entries, key)
		return s.save(file)
	})
	if err != nil {
		return err
	}

	if notFound {
		return storage.ErrKeyNotFound
	}

	return nil
}

// List returns all entries matching the prefix, sorted by key.
func (s *KVStore) List(ctx context.Context, prefix string) ([]storage.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []storage.Entry

	err := s.withSharedLock(func() error {
		file, err := s.load()
		if err != nil {
			return err
		}

		for _, entry := range file.Entries {
			if prefix == "" || strings.HasPrefix(entry.Key, prefix) {
				entries = append(entries, entry)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(entries, func(a, b storage.Entry) int {
		return strings.Compare(a.Key, b.Key)
	})

	return entries, nil
}

// Close is a no-op; the store holds no open handles between calls.
func (s *KVStore) Close() error {
	return nil
}

// load reads the KV file from disk.
// Returns empty kvFile if file doesn't exist.
func (s *KVStore) load() (kvFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return kvFile{Entries: make(map[string]storage.Entry)}, nil
		}
		return kvFile{}, fmt.Errorf("read %s: %w", s.path, err)
	}

	if len(data) == 0 {
		return kvFile{Entries: make(map[string]storage.Entry)}, nil
	}

	var file kvFile
	if err := json.Unmarshal(data, &file); err != nil {
		return kvFile{}, fmt.Errorf("parse %s: %w: %w", s.path, storage.ErrCorrupt, err)
	}

	if file.Entries == nil {
		file.Entries = make(map[string]storage.Entry)
	}

	return file, nil
}

// loadForWrite is load for callers holding the exclusive lock. A file that
// cannot be parsed is renamed to CorruptPath and replaced by an empty one.
func (s *KVStore) loadForWrite() (kvFile, error) {
	file, err := s.load()
	if !errors.Is(err, storage.ErrCorrupt) {
		return file, err
	}

	if rerr := os.Rename(s.path, s.CorruptPath()); rerr != nil {
		return kvFile{}, fmt.Errorf("move corrupt file aside: %w", rerr)
	}

	s.log.Warn().
		Err(err).
		Str("moved_to", s.CorruptPath()).
		Msg("store file unreadable, starting empty")

	return kvFile{Entries: make(map[string]storage.Entry)}, nil
}

// save writes the KV file to disk atomically.
func (s *KVStore) save(file kvFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal entries: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp) // best effort cleanup
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
