// Package persist mirrors in-memory values to a storage.Store in the
// background.
//
// A Bridge is bound to one key. Save never blocks on I/O: it hands the value
// to a single worker goroutine through a one-slot mailbox. If the worker is
// still writing when more values arrive, only the newest is kept, so writes
// to a key are serialized and the last issued value wins. Failures are logged
// and dropped; the in-memory value remains the source of truth.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hay-kot/setlist/internal/core/storage"
)

// ErrNotFound is returned by Load when no usable value is stored. Missing
// keys, unreadable storage and undecodable data all report it.
var ErrNotFound = errors.New("persisted value not found")

type waiter struct {
	seq uint64
	ch  chan struct{}
}

// Bridge loads and saves values of type T under a fixed key.
type Bridge[T any] struct {
	store storage.Store
	key   string
	log   zerolog.Logger

	mu      sync.Mutex
	pending *T
	issued  uint64 // number of values handed to Save
	written uint64 // highest issued sequence the worker has finished with
	waiters []waiter
	closed  bool

	wake    chan struct{}
	quit    chan struct{}
	stopped chan struct{}
}

// New starts a bridge for key. Call Close to stop its worker.
func New[T any](store storage.Store, key string, logger zerolog.Logger) *Bridge[T] {
	b := &Bridge[T]{
		store:   store,
		key:     key,
		log:     logger.With().Str("component", "persist").Str("key", key).Logger(),
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	go b.run()
	return b
}

// Key returns the storage key.
func (b *Bridge[T]) Key() string {
	return b.key
}

// Load reads and decodes the stored value. It returns ErrNotFound when the key
// is missing, when storage cannot be read or when the data cannot be decoded;
// the latter two are logged.
func (b *Bridge[T]) Load(ctx context.Context) (T, error) {
	var zero T

	entry, err := b.store.Get(ctx, b.key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return zero, ErrNotFound
	}
	if err != nil {
		b.log.Error().Err(err).Msg("read persisted value, using default")
		return zero, ErrNotFound
	}

	v, err := Decode[T](entry.Value)
	if err != nil {
		b.log.Warn().Err(err).Msg("persisted value is corrupt, using default")
		return zero, ErrNotFound
	}

	return v, nil
}

// Decode unmarshals raw into a T.
func Decode[T any](raw json.RawMessage) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode: %w", err)
	}
	return v, nil
}

// Save schedules v to be written. It returns immediately. Saves after Close
// are dropped with a warning.
func (b *Bridge[T]) Save(v T) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		b.log.Warn().Msg("save after close dropped")
		return
	}
	b.pending = &v
	b.issued++
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// Flush blocks until every value passed to Save before the call has been
// written or has failed, or until ctx is done.
func (b *Bridge[T]) Flush(ctx context.Context) error {
	b.mu.Lock()
	if b.written >= b.issued {
		b.mu.Unlock()
		return nil
	}
	if b.closed {
		stopped := b.stopped
		b.mu.Unlock()
		select {
		case <-stopped:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	w := waiter{seq: b.issued, ch: make(chan struct{})}
	b.waiters = append(b.waiters, w)
	b.mu.Unlock()

	select {
	case <-w.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close writes any pending value and stops the worker. It waits for the
// worker until ctx is done. Close is safe to call more than once.
func (b *Bridge[T]) Close(ctx context.Context) error {
	b.mu.Lock()
	if !b.closed {
		b.closed = true
		close(b.quit)
	}
	b.mu.Unlock()

	select {
	case <-b.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bridge[T]) run() {
	defer close(b.stopped)

	for {
		select {
		case <-b.wake:
			b.drain()
		case <-b.quit:
			b.drain()
			return
		}
	}
}

// drain writes the newest pending value, if any, and releases waiters.
func (b *Bridge[T]) drain() {
	b.mu.Lock()
	v := b.pending
	seq := b.issued
	b.pending = nil
	b.mu.Unlock()

	if v != nil {
		b.write(*v)
	}

	b.mu.Lock()
	b.written = seq
	kept := b.waiters[:0]
	for _, w := range b.waiters {
		if w.seq <= seq {
			close(w.ch)
			continue
		}
		kept = append(kept, w)
	}
	b.waiters = kept
	b.mu.Unlock()
}

func (b *Bridge[T]) write(v T) {
	data, err := json.Marshal(v)
	if err != nil {
		b.log.Error().Err(err).Msg("encode value, save dropped")
		return
	}

	// Writes run detached from any caller; there is no timeout contract.
	if err := b.store.Set(context.Background(), b.key, data); err != nil {
		b.log.Error().Err(err).Msg("save failed")
		return
	}

	b.log.Debug().Int("bytes", len(data)).Msg("saved")
}
