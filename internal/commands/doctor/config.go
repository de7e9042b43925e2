package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/setlist/internal/core/config"
)

// ConfigCheck validates the configuration file and reports where state is
// stored.
type ConfigCheck struct {
	config     *config.Config
	configPath string
}

// NewConfigCheck creates a new configuration check.
func NewConfigCheck(cfg *config.Config, configPath string) *ConfigCheck {
	return &ConfigCheck{
		config:     cfg,
		configPath: configPath,
	}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if c.config == nil {
		result.Items = append(result.Items, Fail("Config loaded", "configuration not loaded"))
		return result
	}

	if _, err := os.Stat(c.configPath); c.configPath != "" && errors.Is(err, os.ErrNotExist) {
		result.Items = append(result.Items, Pass("Config file", "not found, using defaults"))
	}

	err := c.config.ValidateDeep(c.configPath)
	warnings := c.config.Warnings()

	if err == nil && len(warnings) == 0 {
		result.Items = append(result.Items, Pass("Config valid", ""))
	}

	if err != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				label := fe.Field
				if label == "" {
					label = "validation"
				}
				result.Items = append(result.Items, Fail(label, fe.Err.Error()))
			}
		} else {
			result.Items = append(result.Items, Fail("validation", err.Error()))
		}
		return result
	}

	for _, w := range warnings {
		label := w.Category
		if w.Item != "" {
			label += " (" + w.Item + ")"
		}
		result.Items = append(result.Items, Warn(label, w.Message))
	}

	result.Items = append(result.Items, c.storageItem())
	return result
}

func (c *ConfigCheck) storageItem() CheckItem {
	path := c.config.StorageFile()
	if path == "" {
		return Pass("Storage", c.config.Storage.Driver+" (not persisted)")
	}

	detail := fmt.Sprintf("%s at %s", c.config.Storage.Driver, path)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		detail += " (created on first save)"
	}
	return Pass("Storage", detail)
}
