// Package config loads the optional macsnap.toml settings file. Settings
// only provide defaults; command-line flags always win.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/macsnap/macsnap/internal/domain/engine"
)

// FileName is the settings file looked up in the working directory and
// under the user config directory.
const FileName = "macsnap.toml"

// LogSettings configures console log output.
type LogSettings struct {
	// Format is "text" or "json".
	Format string `toml:"format"`
	// Level is "debug", "info", "warn" or "error".
	Level string `toml:"level"`
}

// Settings is the full macsnap.toml document.
type Settings struct {
	// CatalogDir is the directory scanned for item definitions.
	CatalogDir string `toml:"catalog_dir"`
	// ReconfigurePolicy selects what a clean validate means for the
	// configure phase; see engine.ParseReconfigurePolicy.
	ReconfigurePolicy string `toml:"reconfigure_policy"`
	// Shell overrides the interpreter scripts run under. Empty means
	// /bin/bash.
	Shell string `toml:"shell"`

	Log LogSettings `toml:"log"`
}

// Default returns the settings used when no file is present.
func Default() Settings {
	return Settings{
		CatalogDir:        "catalog",
		ReconfigurePolicy: string(engine.PolicySkipWhenSatisfied),
		Log: LogSettings{
			Format: "text",
			Level:  "info",
		},
	}
}

// DefaultPath returns the per-user settings location,
// ~/.config/macsnap/macsnap.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "macsnap", FileName), nil
}

// Parse decodes a settings document, applying defaults for absent keys.
func Parse(data []byte) (Settings, error) {
	settings := Default()
	if err := toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	if err := settings.validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Load reads and parses the settings file at path.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}
	settings, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return settings, nil
}

// Discover finds settings without an explicit path: macsnap.toml in the
// working directory first, then the per-user location. Neither existing
// is not an error; defaults apply.
func Discover() (Settings, error) {
	if settings, err := Load(FileName); err == nil {
		return settings, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return Settings{}, err
	}

	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	if settings, err := Load(path); err == nil {
		return settings, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return Settings{}, err
	}

	return Default(), nil
}

func (s Settings) validate() error {
	if _, err := engine.ParseReconfigurePolicy(s.ReconfigurePolicy); err != nil {
		return err
	}
	switch s.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (valid: text, json)", s.Log.Format)
	}
	switch s.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q (valid: debug, info, warn, error)", s.Log.Level)
	}
	return nil
}
