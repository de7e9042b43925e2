package doctor

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/setlist/internal/core/history"
	"github.com/hay-kot/setlist/internal/core/playlist"
	"github.com/hay-kot/setlist/internal/core/profile"
	"github.com/hay-kot/setlist/internal/core/storage"
	"github.com/hay-kot/setlist/internal/store/jsonfile"
	"github.com/hay-kot/setlist/internal/store/memory"
)

func put(t *testing.T, store *memory.Store, key string, v any) {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), key, data))
}

func TestStateCheck_Empty(t *testing.T) {
	result := NewStateCheck(memory.New(), false).Run(context.Background())

	assert.Equal(t, "Saved State", result.Name)
	require.Len(t, result.Items, 2)
	for _, item := range result.Items {
		assert.Equal(t, StatusPass, item.Status)
		assert.Equal(t, "nothing saved yet", item.Detail)
	}
}

func TestStateCheck_ReportsCounts(t *testing.T) {
	store := memory.New()

	s := playlist.State{}
	s.Items = []playlist.Song{{ID: "1", Title: "Yesterday", Artist: "The Beatles"}}
	s.History.Past = []history.Snapshot[playlist.Song]{{}}
	put(t, store, playlist.StorageKey, s)

	result := NewStateCheck(store, false).Run(context.Background())

	require.Len(t, result.Items, 2)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Contains(t, result.Items[0].Detail, "1 song(s), 1 undo step(s), 0 redo step(s)")
}

func TestStateCheck_WarnsOnBadSongs(t *testing.T) {
	store := memory.New()

	s := playlist.State{}
	s.Items = []playlist.Song{
		{ID: "1", Title: "Yesterday", Artist: "The Beatles"},
		{ID: "1", Title: "Hey Jude", Artist: "The Beatles"},
		{ID: "2", Title: "", Artist: "Nobody"},
	}
	put(t, store, playlist.StorageKey, s)

	result := NewStateCheck(store, false).Run(context.Background())

	var labels []string
	for _, item := range result.Items {
		if item.Status == StatusWarn {
			labels = append(labels, item.Label)
		}
	}
	assert.Equal(t, []string{"Songs", "Song IDs"}, labels)
}

func TestStateCheck_Corrupt(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Set(ctx, playlist.StorageKey, json.RawMessage(`{"items":`)))

	result := NewStateCheck(store, false).Run(ctx)

	item := result.Items[0]
	assert.Equal(t, StatusFail, item.Status)
	assert.True(t, item.Fixable)
	assert.Contains(t, item.Detail, "corrupt data")
	assert.Equal(t, 1, CountFixable([]Result{result}))

	_, err := store.Get(ctx, playlist.StorageKey)
	assert.NoError(t, err, "entry is kept without fix")
}

func TestStateCheck_CorruptFixed(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Set(ctx, playlist.StorageKey, json.RawMessage(`not json`)))

	result := NewStateCheck(store, true).Run(ctx)

	item := result.Items[0]
	assert.Equal(t, StatusPass, item.Status)
	assert.Equal(t, "deleted corrupt entry", item.Detail)

	_, err := store.Get(ctx, playlist.StorageKey)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestStateCheck_UnreadableStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"entries": {"@playlist": {"va`), 0o644))

	store := jsonfile.NewKVStore(path)

	result := NewStateCheck(store, false).Run(ctx)
	require.Len(t, result.Items, 2)
	assert.Equal(t, StatusFail, result.Items[0].Status)
	assert.True(t, result.Items[0].Fixable)
	assert.Equal(t, 2, CountFixable([]Result{result}))

	result = NewStateCheck(store, true).Run(ctx)
	require.Len(t, result.Items, 2)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, "reset unreadable store", result.Items[0].Detail)
	assert.Equal(t, "nothing saved yet", result.Items[1].Detail)

	require.NoError(t, store.Set(ctx, playlist.StorageKey, json.RawMessage(`{"items":[]}`)))
	_, err := store.Get(ctx, playlist.StorageKey)
	assert.NoError(t, err)
}

func TestStateCheck_ReadError(t *testing.T) {
	store := memory.New()
	store.FailGet = errors.New("disk on fire")

	result := NewStateCheck(store, false).Run(context.Background())

	require.Len(t, result.Items, 2)
	assert.Equal(t, StatusFail, result.Items[0].Status)
	assert.Contains(t, result.Items[0].Detail, "disk on fire")
}

func TestStateCheck_Profile(t *testing.T) {
	tests := []struct {
		name    string
		profile profile.Profile
		status  Status
	}{
		{
			name:    "draft",
			profile: profile.Profile{Username: "jd"},
			status:  StatusWarn,
		},
		{
			name:    "submitted",
			profile: profile.Profile{Username: "jane_doe", Email: "jane@example.com", FavoriteGenre: "Rock", Valid: true},
			status:  StatusPass,
		},
		{
			name:    "marked valid but invalid",
			profile: profile.Profile{Username: "jd", Valid: true},
			status:  StatusWarn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.New()
			put(t, store, profile.StorageKey, tt.profile)

			result := NewStateCheck(store, false).Run(context.Background())

			require.Len(t, result.Items, 2)
			assert.Equal(t, "Profile", result.Items[1].Label)
			assert.Equal(t, tt.status, result.Items[1].Status)
		})
	}
}
