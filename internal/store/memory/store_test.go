package memory

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/setlist/internal/core/storage"
)

func TestStore_SetGetUpdate(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	s.now = func() time.Time { return first }

	require.NoError(t, s.Set(ctx, "@playlist", json.RawMessage(`{"items":[]}`)))

	s.now = func() time.Time { return second }
	require.NoError(t, s.Set(ctx, "@playlist", json.RawMessage(`{"items":[1]}`)))

	got, err := s.Get(ctx, "@playlist")
	require.NoError(t, err)
	assert.Equal(t, "@playlist", got.Key)
	assert.JSONEq(t, `{"items":[1]}`, string(got.Value))
	assert.Equal(t, first, got.CreatedAt)
	assert.Equal(t, second, got.UpdatedAt)
}

func TestStore_GetMissing(t *testing.T) {
	_, err := New().Get(context.Background(), "nope")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestStore_ValuesAreCopied(t *testing.T) {
	s := New()
	ctx := context.Background()

	value := json.RawMessage(`"abc"`)
	require.NoError(t, s.Set(ctx, "k", value))
	value[1] = 'x'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, string(got.Value))

	got.Value[1] = 'y'
	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, string(again.Value))
}

func TestStore_DeleteAndList(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, k := range []string{"@profile", "@playlist", "other"} {
		require.NoError(t, s.Set(ctx, k, json.RawMessage(`{}`)))
	}

	entries, err := s.List(ctx, "@")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "@playlist", entries[0].Key)
	assert.Equal(t, "@profile", entries[1].Key)

	require.NoError(t, s.Delete(ctx, "@profile"))
	assert.ErrorIs(t, s.Delete(ctx, "@profile"), storage.ErrKeyNotFound)

	entries, err = s.List(ctx, "@")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_FailureHooks(t *testing.T) {
	s := New()
	ctx := context.Background()
	boom := errors.New("boom")

	s.FailSet = boom
	assert.ErrorIs(t, s.Set(ctx, "k", json.RawMessage(`1`)), boom)

	s.FailSet = nil
	require.NoError(t, s.Set(ctx, "k", json.RawMessage(`1`)))

	s.FailGet = boom
	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, boom)
}
