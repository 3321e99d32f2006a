package configuration

import (
	"strings"

	"github.com/knadh/koanf/providers/confmap"
)

// SetDefault sets the default value for the key (case-insensitive).
// Default is only applied if no value is provided via flag, file or env vars.
func (c *Configuration) SetDefault(path string, value interface{}) error {
	if c.config.Exists(strings.ToLower(path)) {
		// do not override values that already exist in the config
		return nil
	}

	return c.Set(path, value)
}

// Set sets the value for the key (case-insensitive).
func (c *Configuration) Set(path string, value interface{}) error {
	// koanf has no setters, values are loaded as a flat map with "." as the delimiter instead.
	return c.config.Load(confmap.Provider(map[string]interface{}{
		strings.ToLower(path): value,
	}, "."), nil)
}
