// Package appconfig is the ambient CLI configuration layer: output
// format, default verbosity, and recently-used project paths. This is
// distinct from internal/model.LayoutConfig, which is a request-scoped,
// strictly-parsed value passed with every optimize call — appconfig is
// the tool's own persistent settings, following the teacher's
// pkg/config/config.go XDG-directory + YAML shape.
package appconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// RecentProject is one entry in the recently-used project list.
type RecentProject struct {
	Path     string `yaml:"path"`
	OpenedAt string `yaml:"opened_at,omitempty"`
}

// Config is the top-level ambient configuration for the metrostudio
// CLI.
type Config struct {
	OutputFormat string          `yaml:"output_format,omitempty"` // "json" or "xml"
	LogLevel     string          `yaml:"log_level,omitempty"`     // applog.ParseLevel spelling
	Recent       []RecentProject `yaml:"recent,omitempty"`
	MaxRecent    int             `yaml:"max_recent,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		OutputFormat: "json",
		LogLevel:     "warn",
		MaxRecent:    10,
	}
}

// ConfigDir returns the XDG config directory for metrostudio.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "metrostudio")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "metrostudio")
}

// DataDir returns the XDG data directory for metrostudio.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "metrostudio")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "metrostudio")
}

// StateDir returns the XDG state directory for metrostudio.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "metrostudio")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "metrostudio")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory, returning
// DefaultConfig if it does not exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path, returning DefaultConfig
// if the file does not exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("appconfig: reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("appconfig: parsing config: %w", err)
	}
	if cfg.MaxRecent <= 0 {
		cfg.MaxRecent = DefaultConfig().MaxRecent
	}
	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("appconfig: cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("appconfig: creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("appconfig: marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("appconfig: writing config: %w", err)
	}
	return nil
}

// Touch records path as the most recently opened project, moving it to
// the front of the recent list and trimming to MaxRecent.
func (c *Config) Touch(path, openedAt string) {
	filtered := c.Recent[:0]
	for _, r := range c.Recent {
		if r.Path != path {
			filtered = append(filtered, r)
		}
	}
	c.Recent = append([]RecentProject{{Path: path, OpenedAt: openedAt}}, filtered...)
	max := c.MaxRecent
	if max <= 0 {
		max = DefaultConfig().MaxRecent
	}
	if len(c.Recent) > max {
		c.Recent = c.Recent[:max]
	}
}

// HasRecent reports whether path is already in the recent list.
func (c Config) HasRecent(path string) bool {
	for _, r := range c.Recent {
		if strings.EqualFold(r.Path, path) {
			return true
		}
	}
	return false
}
