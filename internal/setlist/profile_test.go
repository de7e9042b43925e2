package setlist

import (
	"context"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/setlist/internal/core/profile"
	"github.com/hay-kot/setlist/internal/store/memory"
)

func openProfiles(t *testing.T, store *memory.Store) *ProfileService {
	t.Helper()

	p := OpenProfileService(context.Background(), store, zerolog.Nop())
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p
}

func TestProfileService_DraftIsPersistedInvalid(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	p := openProfiles(t, store)

	got := p.Update(profile.Profile{Username: "ab", Valid: true})
	assert.False(t, got.Valid)
	require.NoError(t, p.Flush(ctx))

	reopened := openProfiles(t, store)
	assert.Equal(t, profile.Profile{Username: "ab"}, reopened.Current())
}

func TestProfileService_EmptyDraftNotPersisted(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	p := openProfiles(t, store)

	p.Update(profile.Profile{})
	require.NoError(t, p.Flush(ctx))

	_, err := store.Get(ctx, profile.StorageKey)
	assert.Error(t, err)
}

func TestProfileService_Submit(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	p := openProfiles(t, store)

	in := profile.Profile{Username: "jane_doe", Email: "jane@example.com", FavoriteGenre: "Jazz"}
	got, err := p.Submit(in)
	require.NoError(t, err)
	assert.True(t, got.Valid)
	require.NoError(t, p.Flush(ctx))

	reopened := openProfiles(t, store)
	assert.True(t, reopened.Current().Valid)
	assert.Equal(t, "jane_doe", reopened.Current().Username)
}

func TestProfileService_SubmitInvalidKeepsDraft(t *testing.T) {
	p := openProfiles(t, memory.New())

	in := profile.Profile{Username: "x!", Email: "nope", FavoriteGenre: "Polka"}
	got, err := p.Submit(in)
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 3)

	assert.False(t, got.Valid)
	assert.Equal(t, "x!", p.Current().Username)
}
