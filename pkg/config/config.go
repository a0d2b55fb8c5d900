// Package config loads user settings for the erdiagram tools from a TOML
// file.
//
// The file lives at $XDG_CONFIG_HOME/erdiagram/config.toml, falling back
// to ~/.config/erdiagram/config.toml. Every key is optional and a missing
// file yields [Default]:
//
//	history_size = 50
//	default_entity_name = "New Entity"
//	default_relationship_name = "New Relationship"
//	default_diagram_name = "New ER Diagram"
//	save_directory = "~/diagrams"
//	store = "redis://localhost:6379/0"
//	log_level = "info"
//
//	[export]
//	padding = 150
//	scale = 2
//
//	[serve]
//	addr = ":8080"
//
//	[cache]
//	ttl = "24h"
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/erdiagram/pkg/errors"
	"github.com/matzehuels/erdiagram/pkg/model"
)

// AppName names the config and cache directories.
const AppName = "erdiagram"

// Config holds user settings.
type Config struct {
	HistorySize             int    `toml:"history_size"`
	DefaultEntityName       string `toml:"default_entity_name"`
	DefaultRelationshipName string `toml:"default_relationship_name"`
	DefaultDiagramName      string `toml:"default_diagram_name"`
	// SaveDirectory is where bare file names and the default file store
	// resolve. A leading "~" is expanded.
	SaveDirectory string `toml:"save_directory"`
	// Store is the default location for the store commands.
	Store    string `toml:"store"`
	LogLevel string `toml:"log_level"`

	Export ExportConfig `toml:"export"`
	Serve  ServeConfig  `toml:"serve"`
	Cache  CacheConfig  `toml:"cache"`
}

// ExportConfig holds rendering defaults.
type ExportConfig struct {
	Padding float64 `toml:"padding"`
	Scale   float64 `toml:"scale"`
}

// ServeConfig holds preview server settings.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// CacheConfig holds rendered-artifact cache settings.
type CacheConfig struct {
	// Dir overrides the cache directory.
	Dir string `toml:"dir"`
	// TTL is a Go duration string; empty keeps entries forever.
	TTL string `toml:"ttl"`
	// URL selects a shared Redis cache (redis:// or rediss://) instead of
	// the cache directory.
	URL string `toml:"url"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		HistorySize:             50,
		DefaultEntityName:       "New Entity",
		DefaultRelationshipName: "New Relationship",
		DefaultDiagramName:      model.DefaultDiagramName,
		LogLevel:                "info",
		Export:                  ExportConfig{Padding: 150, Scale: 1},
		Serve:                   ServeConfig{Addr: "localhost:8080"},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// Load reads the file at path over [Default]. An empty path means [Path].
// A missing file is not an error; a malformed one is INVALID_CONFIG.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Default(), errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	cfg.SaveDirectory = expandHome(cfg.SaveDirectory)
	cfg.Cache.Dir = expandHome(cfg.Cache.Dir)
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.HistorySize < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "history_size must be at least 1, got %d", c.HistorySize)
	}
	if c.Export.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "export.scale must be positive, got %g", c.Export.Scale)
	}
	if c.Export.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "export.padding must not be negative, got %g", c.Export.Padding)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "log_level")
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	if c.Store != "" {
		if err := errors.ValidateStoreURL(c.Store); err != nil {
			return err
		}
	}
	if c.Cache.URL != "" && !strings.HasPrefix(c.Cache.URL, "redis://") && !strings.HasPrefix(c.Cache.URL, "rediss://") {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.url must be a redis:// URL, got %q", c.Cache.URL)
	}
	return nil
}

// CacheTTL parses Cache.TTL. Empty means no expiry.
func (c Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.ttl")
	}
	return d, nil
}

// Level returns the configured log level.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// ResolvePath joins a relative file name onto SaveDirectory. Absolute
// paths and names with a directory part are returned unchanged.
func (c Config) ResolvePath(name string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(name) || filepath.Base(name) != name {
		return name
	}
	return filepath.Join(c.SaveDirectory, name)
}

// StoreLocation returns Store, or SaveDirectory as a file store, or the
// current directory.
func (c Config) StoreLocation() string {
	switch {
	case c.Store != "":
		return c.Store
	case c.SaveDirectory != "":
		return c.SaveDirectory
	default:
		return "."
	}
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
