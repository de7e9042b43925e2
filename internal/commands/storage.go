package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/hay-kot/setlist/internal/core/config"
	"github.com/hay-kot/setlist/internal/core/storage"
	"github.com/hay-kot/setlist/internal/store/jsonfile"
	"github.com/hay-kot/setlist/internal/store/memory"
	"github.com/hay-kot/setlist/internal/store/sqlite"
)

// OpenStore returns the storage backend selected by cfg.Storage.Driver.
func OpenStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return memory.New(), nil
	case config.DriverSQLite:
		path := cfg.StorageFile()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		return sqlite.Open(path)
	case config.DriverJSON, "":
		logger := log.With().Str("component", "jsonfile").Logger()
		return jsonfile.NewKVStore(cfg.StorageFile()).WithLogger(logger), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
