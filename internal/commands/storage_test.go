package commands

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/setlist/internal/core/config"
	"github.com/hay-kot/setlist/internal/store/jsonfile"
	"github.com/hay-kot/setlist/internal/store/memory"
	"github.com/hay-kot/setlist/internal/store/sqlite"
)

func TestOpenStore_Drivers(t *testing.T) {
	tests := []struct {
		driver string
		check  func(t *testing.T, v any)
	}{
		{config.DriverJSON, func(t *testing.T, v any) { assert.IsType(t, &jsonfile.KVStore{}, v) }},
		{config.DriverSQLite, func(t *testing.T, v any) { assert.IsType(t, &sqlite.Store{}, v) }},
		{config.DriverMemory, func(t *testing.T, v any) { assert.IsType(t, &memory.Store{}, v) }},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			cfg := &config.Config{DataDir: t.TempDir(), Storage: config.StorageConfig{Driver: tt.driver}}

			store, err := OpenStore(cfg)
			require.NoError(t, err)
			defer store.Close() //nolint:errcheck

			tt.check(t, store)

			ctx := context.Background()
			require.NoError(t, store.Set(ctx, "@playlist", json.RawMessage(`{"items":[]}`)))
			entry, err := store.Get(ctx, "@playlist")
			require.NoError(t, err)
			assert.JSONEq(t, `{"items":[]}`, string(entry.Value))
		})
	}
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := OpenStore(&config.Config{Storage: config.StorageConfig{Driver: "redis"}})
	assert.Error(t, err)
}
