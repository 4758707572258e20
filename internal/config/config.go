// Package config loads tada settings.
//
// Sources, lowest priority first:
//  1. Defaults
//  2. User config file ($XDG_CONFIG_HOME/tada/tada.toml or OS equivalent)
//  3. Project config file (tada.toml in the working directory), or the
//     file named by --config
//  4. Environment variables (TADA_*)
//  5. CLI flags, applied by the caller
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/ui"
)

// FileName is the config file looked up in the user and project locations.
const FileName = "tada.toml"

// Config holds resolved settings.
type Config struct {
	DataDir  string `toml:"data_dir"`
	Store    string `toml:"store"`
	Theme    string `toml:"theme"`
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`

	// Files lists the config files that were read, in order.
	Files []string `toml:"-"`
}

// Default returns the built-in settings. An empty DataDir means the
// working directory.
func Default() *Config {
	return &Config{
		Store:    store.BackendFile,
		Theme:    ui.ThemeClassic,
		LogLevel: "warn",
	}
}

// Load resolves defaults, config files and environment. When explicit is
// non-empty it replaces the project file and must exist.
func Load(explicit string) (*Config, error) {
	cfg := Default()

	if p := UserConfigFile(); p != "" {
		if err := cfg.mergeFile(p, false); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", p, err)
		}
	}

	project, required := FileName, false
	if explicit != "" {
		project, required = explicit, true
	}
	if err := cfg.mergeFile(project, required); err != nil {
		return nil, fmt.Errorf("loading config file %s: %w", project, err)
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UserConfigFile returns the per-user config path, or "" when the OS has no
// config directory.
func UserConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tada", FileName)
}

func (c *Config) mergeFile(path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return err
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	c.Files = append(c.Files, path)
	return nil
}

func (c *Config) loadFromEnv() {
	if v := os.Getenv("TADA_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("TADA_STORE"); v != "" {
		c.Store = v
	}
	if v := os.Getenv("TADA_THEME"); v != "" {
		c.Theme = v
	}
	if v := os.Getenv("TADA_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("TADA_LOG_FILE"); v != "" {
		c.LogFile = v
	}
}

// Validate rejects unknown backends, themes and log levels.
func (c *Config) Validate() error {
	switch c.Store {
	case store.BackendFile, store.BackendSQLite, store.BackendMemory:
	default:
		return fmt.Errorf("invalid store %q (want %s or %s)", c.Store, store.BackendFile, store.BackendSQLite)
	}
	if !ui.ValidTheme(c.Theme) {
		return fmt.Errorf("invalid theme %q (want classic, neon or mono)", c.Theme)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}
