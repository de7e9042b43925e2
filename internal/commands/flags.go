package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/hay-kot/setlist/internal/core/config"
	"github.com/hay-kot/setlist/internal/core/storage"
	"github.com/hay-kot/setlist/internal/setlist"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Store backs both services. It is closed by main after they are.
	Store storage.Store

	// Playlist and Profiles are opened in the Before hook.
	Playlist *setlist.Playlist
	Profiles *setlist.ProfileService
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "setlist", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "setlist")
}

// diagnosticCommands still run when the config is invalid so they can report
// what is wrong with it.
var diagnosticCommands = []string{"config", "doctor"}

// LoadConfig reads the config for the named top-level command. An invalid
// config is an error, except for diagnostic commands, which get the config
// with valid set to false and are expected to skip opening storage.
func LoadConfig(configPath, dataDir, command string) (cfg *config.Config, valid bool, err error) {
	cfg, err = config.Read(configPath, dataDir)
	if err != nil {
		return nil, false, err
	}

	if err := cfg.Validate(); err != nil {
		if slices.Contains(diagnosticCommands, command) {
			return cfg, false, nil
		}
		return nil, false, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, true, nil
}
