package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/hay-kot/setlist/internal/core/storage"
)

func TestKVStore_SetAndGet(t *testing.T) {
	store := NewKVStore(filepath.Join(t.TempDir(), "kv.json"))
	ctx := context.Background()

	err := store.Set(ctx, "foo", json.RawMessage(`{"a":1}`))
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	entry, err := store.Get(ctx, "foo")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if entry.Key != "foo" {
		t.Errorf("Key = %q, want %q", entry.Key, "foo")
	}

	var got map[string]int
	if err := json.Unmarshal(entry.Value, &got); err != nil {
		t.Fatalf("decode value: %v", err)
	}
	if got["a"] != 1 {
		t.Errorf("Value = %s, want a=1", entry.Value)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("CreatedAt should not be zero")
	}
	if entry.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should not be zero")
	}
}

func TestKVStore_SetRejectsInvalidJSON(t *testing.T) {
	store := NewKVStore(filepath.Join(t.TempDir(), "kv.json"))

	if err := store.Set(context.Background(), "foo", json.RawMessage(`{nope`)); err == nil {
		t.Error("expected error for invalid JSON value")
	}
}

func TestKVStore_GetNotFound(t *testing.T) {
	store := NewKVStore(filepath.Join(t.TempDir(), "kv.json"))
	ctx := context.Background()

	_, err := store.Get(ctx, "nonexistent")
	if !errors.Is(err, storage.ErrKeyNotFound) {
		t.Errorf("Get error = %v, want ErrKeyNotFound", err)
	}
}

func TestKVStore_UpdatePreservesCreatedAt(t *testing.T) {
	store := NewKVStore(filepath.Join(t.TempDir(), "kv.json"))
	ctx := context.Background()

	base := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	store.now = func() time.Time { return base }

	if err := store.Set(ctx, "key", json.RawMessage(`"value1"`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	store.now = func() time.Time { return base.Add(time.Minute) }
	if err := store.Set(ctx, "key", json.RawMessage(`"value2"`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	entry, err := store.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if string(entry.Value) != `"value2"` {
		t.Errorf("Value = %s, want %q", entry.Value, "value2")
	}
	if !entry.CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", entry.CreatedAt, base)
	}
	if !entry.UpdatedAt.Equal(base.Add(time.Minute)) {
		t.Errorf("UpdatedAt = %v, want %v", entry.UpdatedAt, base.Add(time.Minute))
	}
}

func TestKVStore_List(t *testing.T) {
	store := NewKVStore(filepath.Join(t.TempDir(), "kv.json"))
	ctx := context.Background()

	_ = store.Set(ctx, "@playlist", json.RawMessage(`1`))
	_ = store.Set(ctx, "@profile", json.RawMessage(`2`))
	_ = store.Set(ctx, "other", json.RawMessage(`3`))

	entries, err := store.List(ctx, "@p")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("List returned %d entries, want 2", len(entries))
	}
	if entries[0].Key != "@playlist" || entries[1].Key != "@profile" {
		t.Errorf("List order = [%s %s], want sorted by key", entries[0].Key, entries[1].Key)
	}

	all, _ := store.List(ctx, "")
	if len(all) != 3 {
		t.Errorf("List all returned %d entries, want 3", len(all))
	}
}

func TestKVStore_Delete(t *testing.T) {
	store := NewKVStore(filepath.Join(t.TempDir(), "kv.json"))
	ctx := context.Background()

	_ = store.Set(ctx, "key", json.RawMessage(`true`))

	if err := store.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err := store.Get(ctx, "key")
	if !errors.Is(err, storage.ErrKeyNotFound) {
		t.Errorf("Get after delete error = %v, want ErrKeyNotFound", err)
	}
}

func TestKVStore_DeleteNotFound(t *testing.T) {
	store := NewKVStore(filepath.Join(t.TempDir(), "kv.json"))

	err := store.Delete(context.Background(), "nonexistent")
	if !errors.Is(err, storage.ErrKeyNotFound) {
		t.Errorf("Delete error = %v, want ErrKeyNotFound", err)
	}
}

func TestKVStore_ConcurrentAccess(t *testing.T) {
	store := NewKVStore(filepath.Join(t.TempDir(), "kv.json"))
	ctx := context.Background()

	const goroutines = 10
	const iterations = 20

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				key := fmt.Sprintf("key-%d-%d", id, j)
				if err := store.Set(ctx, key, json.RawMessage(`"value"`)); err != nil {
					t.Errorf("Set failed: %v", err)
					return
				}
				if _, err := store.Get(ctx, key); err != nil {
					t.Errorf("Get failed: %v", err)
					return
				}
			}
		}(i)
	}

	wg.Wait()

	entries, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("Final List failed: %v", err)
	}
	if len(entries) != goroutines*iterations {
		t.Errorf("Expected %d entries, got %d", goroutines*iterations, len(entries))
	}
}

func TestKVStore_CorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")

	truncated := []byte(`{"entries": {"@playlist": {"va`)
	if err := os.WriteFile(path, truncated, 0o644); err != nil {
		t.Fatalf("Failed to write corrupted file: %v", err)
	}

	store := NewKVStore(path)
	ctx := context.Background()

	_, err := store.Get(ctx, "any")
	if !errors.Is(err, storage.ErrCorrupt) {
		t.Errorf("Get error = %v, want ErrCorrupt", err)
	}

	if err := store.Set(ctx, "key", json.RawMessage(`1`)); err != nil {
		t.Fatalf("Set after corruption failed: %v", err)
	}

	entry, err := store.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get after recovery failed: %v", err)
	}
	if string(entry.Value) != "1" {
		t.Errorf("Value = %s, want 1", entry.Value)
	}

	moved, err := os.ReadFile(store.CorruptPath())
	if err != nil {
		t.Fatalf("corrupt file not kept: %v", err)
	}
	if string(moved) != string(truncated) {
		t.Errorf("corrupt file = %q, want original bytes", moved)
	}
}

func TestKVStore_DeleteOnCorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")

	if err := os.WriteFile(path, []byte("{invalid json"), 0o644); err != nil {
		t.Fatalf("Failed to write corrupted file: %v", err)
	}

	store := NewKVStore(path)
	ctx := context.Background()

	err := store.Delete(ctx, "@playlist")
	if !errors.Is(err, storage.ErrKeyNotFound) {
		t.Errorf("Delete error = %v, want ErrKeyNotFound", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("corrupt file still in place: %v", err)
	}

	if _, err := store.Get(ctx, "@playlist"); !errors.Is(err, storage.ErrKeyNotFound) {
		t.Errorf("Get error = %v, want ErrKeyNotFound", err)
	}
}
