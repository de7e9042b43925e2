package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/hay-kot/criterio"
)

// reservedKeys are handled by the TUI itself and cannot be rebound.
var reservedKeys = []string{"q", "ctrl+c", "esc", "enter", "up", "down", "k", "j"}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// Validate checks the configuration values. Errors are criterio.FieldErrors
// keyed by the yaml path of the offending field.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.DataDir == "" {
		errs = errs.Append("data_dir", fmt.Errorf("cannot be empty"))
	}

	if !isValidDriver(c.Storage.Driver) {
		errs = errs.Append("storage.driver", fmt.Errorf("invalid driver %q, use %s, %s or %s",
			c.Storage.Driver, DriverJSON, DriverSQLite, DriverMemory))
	}

	if c.History.MaxDepth < 0 {
		errs = errs.Append("history.max_depth", fmt.Errorf("must be 0 (unlimited) or greater"))
	}

	if c.Server.Addr == "" {
		errs = errs.Append("server.addr", fmt.Errorf("cannot be empty"))
	}

	for _, key := range sortedKeybindingKeys(c.Keybindings) {
		kb := c.Keybindings[key]
		field := "keybindings." + key

		switch {
		case isReserved(key):
			errs = errs.Append(field, fmt.Errorf("key %q is reserved", key))
		case kb.Action == "":
			errs = errs.Append(field, fmt.Errorf("must have an action"))
		case !isValidAction(kb.Action):
			errs = errs.Append(field, fmt.Errorf("invalid action %q", kb.Action))
		}
	}

	return errs.ToError()
}

// ValidateDeep runs Validate and also checks that the config file and data
// directory are usable.
func (c *Config) ValidateDeep(configPath string) error {
	var errs criterio.FieldErrorsBuilder

	if configPath != "" {
		if info, err := os.Stat(configPath); err == nil && info.IsDir() {
			errs = errs.Append("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
		} else if err != nil && !os.IsNotExist(err) {
			errs = errs.Append("config_file", fmt.Errorf("cannot access %s: %w", configPath, err))
		}
	}

	if c.DataDir != "" {
		if info, err := os.Stat(c.DataDir); err == nil && !info.IsDir() {
			errs = errs.Append("data_dir", fmt.Errorf("%s exists but is not a directory", c.DataDir))
		} else if err != nil && !os.IsNotExist(err) {
			errs = errs.Append("data_dir", fmt.Errorf("cannot access %s: %w", c.DataDir, err))
		}
	}

	if err := c.Validate(); err != nil {
		var fieldErrs criterio.FieldErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			errs = errs.Append(fe.Field, fe.Err)
		}
	}

	return errs.ToError()
}

// Warnings returns non-fatal issues worth surfacing in doctor output.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Storage.Driver == DriverMemory {
		warnings = append(warnings, ValidationWarning{
			Category: "Storage",
			Item:     "driver",
			Message:  "memory driver keeps nothing between runs",
		})
	}

	if c.History.MaxDepth > 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "History",
			Item:     "max_depth",
			Message:  fmt.Sprintf("undo is limited to the last %d changes", c.History.MaxDepth),
		})
	}

	for _, action := range []string{ActionUndo, ActionRedo} {
		if len(c.KeysFor(action)) == 0 {
			warnings = append(warnings, ValidationWarning{
				Category: "Keybindings",
				Item:     action,
				Message:  "no key is bound to " + action,
			})
		}
	}

	return warnings
}

func isReserved(key string) bool {
	for _, k := range reservedKeys {
		if k == key {
			return true
		}
	}
	return false
}

func sortedKeybindingKeys(m map[string]Keybinding) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
