// Package config handles configuration loading and validation for setlist.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Built-in action names for keybindings.
const (
	ActionAdd    = "add"
	ActionDelete = "delete"
	ActionClear  = "clear"
	ActionUndo   = "undo"
	ActionRedo   = "redo"
)

// defaultKeybindings provides built-in keybindings that users can override.
var defaultKeybindings = map[string]Keybinding{
	"a": {Action: ActionAdd, Help: "add"},
	"d": {Action: ActionDelete, Help: "delete"},
	"C": {
		Action:  ActionClear,
		Help:    "clear",
		Confirm: "Remove every song from the playlist?",
	},
	"u": {Action: ActionUndo, Help: "undo"},
	"r": {Action: ActionRedo, Help: "redo"},
}

// Config holds the application configuration.
type Config struct {
	Storage     StorageConfig         `yaml:"storage"`
	History     HistoryConfig         `yaml:"history"`
	Server      ServerConfig          `yaml:"server"`
	Keybindings map[string]Keybinding `yaml:"keybindings"`
	DataDir     string                `yaml:"-"` // set by caller, not from config file
}

// StorageConfig selects where playlist state is kept.
type StorageConfig struct {
	Driver string `yaml:"driver"` // json, sqlite or memory
	File   string `yaml:"file"`   // relative to the data directory unless absolute
}

// HistoryConfig controls the undo history.
type HistoryConfig struct {
	// MaxDepth caps the undo stack. 0 keeps every step.
	MaxDepth int `yaml:"max_depth"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Keybinding defines a TUI keybinding action.
type Keybinding struct {
	Action  string `yaml:"action"`            // built-in action name
	Help    string `yaml:"help,omitempty"`    // help text shown in TUI
	Confirm string `yaml:"confirm,omitempty"` // confirmation prompt (empty = no confirm)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Driver: DriverJSON,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:7788",
		},
		Keybindings: map[string]Keybinding{},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg, err := Read(configPath, dataDir)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read is Load without validation. Use it where an invalid config must still
// be inspected.
func Read(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.Keybindings = mergeKeybindings(defaultKeybindings, cfg.Keybindings)
	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Storage.Driver == "" {
		c.Storage.Driver = defaults.Storage.Driver
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	for key, kb := range c.Keybindings {
		if kb.Help == "" {
			kb.Help = kb.Action
			c.Keybindings[key] = kb
		}
	}
}

// mergeKeybindings merges user keybindings into defaults.
// User keybindings override defaults for the same key.
func mergeKeybindings(defaults, user map[string]Keybinding) map[string]Keybinding {
	result := make(map[string]Keybinding, len(defaults)+len(user))
	for k, v := range defaults {
		result[k] = v
	}
	for k, v := range user {
		result[k] = v
	}
	return result
}

// StorageFile returns the path of the state file for the file-backed drivers.
// It is empty for the memory driver.
func (c *Config) StorageFile() string {
	name := c.Storage.File
	if name == "" {
		switch c.Storage.Driver {
		case DriverSQLite:
			name = "setlist.db"
		case DriverMemory:
			return ""
		default:
			name = "setlist.json"
		}
	}

	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// KeysFor returns the keys bound to action, sorted.
func (c *Config) KeysFor(action string) []string {
	var keys []string
	for key, kb := range c.Keybindings {
		if kb.Action == action {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func isValidAction(action string) bool {
	switch action {
	case ActionAdd, ActionDelete, ActionClear, ActionUndo, ActionRedo:
		return true
	default:
		return false
	}
}

func isValidDriver(driver string) bool {
	switch driver {
	case DriverJSON, DriverSQLite, DriverMemory:
		return true
	default:
		return false
	}
}
