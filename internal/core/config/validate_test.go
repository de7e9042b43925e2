package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Keybindings = mergeKeybindings(defaultKeybindings, nil)
	return &cfg
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	names := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		names = append(names, fe.Field)
	}
	return names
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig(t).Validate())
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{
			name:   "unknown driver",
			mutate: func(c *Config) { c.Storage.Driver = "postgres" },
			field:  "storage.driver",
		},
		{
			name:   "negative depth",
			mutate: func(c *Config) { c.History.MaxDepth = -1 },
			field:  "history.max_depth",
		},
		{
			name:   "empty addr",
			mutate: func(c *Config) { c.Server.Addr = "" },
			field:  "server.addr",
		},
		{
			name:   "empty data dir",
			mutate: func(c *Config) { c.DataDir = "" },
			field:  "data_dir",
		},
		{
			name:   "unknown action",
			mutate: func(c *Config) { c.Keybindings["x"] = Keybinding{Action: "shuffle"} },
			field:  "keybindings.x",
		},
		{
			name:   "missing action",
			mutate: func(c *Config) { c.Keybindings["x"] = Keybinding{Help: "nothing"} },
			field:  "keybindings.x",
		},
		{
			name:   "reserved key",
			mutate: func(c *Config) { c.Keybindings["q"] = Keybinding{Action: ActionUndo} },
			field:  "keybindings.q",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			assert.Equal(t, []string{tt.field}, fieldNames(t, cfg.Validate()))
		})
	}
}

func TestValidateDeep_DataDirIsFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "notadir")
	require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0o644))

	cfg := validConfig(t)
	cfg.DataDir = tmpFile

	assert.Contains(t, fieldNames(t, cfg.ValidateDeep("")), "data_dir")
}

func TestValidateDeep_ConfigFileIsDirectory(t *testing.T) {
	cfg := validConfig(t)

	assert.Contains(t, fieldNames(t, cfg.ValidateDeep(t.TempDir())), "config_file")
}

func TestValidateDeep_IncludesValueErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.History.MaxDepth = -5

	assert.Contains(t, fieldNames(t, cfg.ValidateDeep("")), "history.max_depth")
}

func TestWarnings(t *testing.T) {
	cfg := validConfig(t)
	assert.Empty(t, cfg.Warnings())

	cfg.Storage.Driver = DriverMemory
	cfg.History.MaxDepth = 10
	delete(cfg.Keybindings, "u")

	var items []string
	for _, w := range cfg.Warnings() {
		items = append(items, w.Item)
	}
	assert.ElementsMatch(t, []string{"driver", "max_depth", ActionUndo}, items)
}
