// Package config handles loading and managing griddle configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DisplayConfig holds rendering defaults.
type DisplayConfig struct {
	InferSchema string `toml:"infer_schema"` // off, fast, full, or safe
	NullText    string `toml:"null_text"`    // placeholder shown for null cells
}

// HistoryConfig holds command history configuration.
type HistoryConfig struct {
	Capacity int    `toml:"capacity"` // retained command count
	File     string `toml:"file"`     // history file path; empty for default
}

// InputConfig holds file reading defaults. CLI flags override these.
type InputConfig struct {
	Format    string `toml:"format"`    // auto, csv, tsv, fwf, or parquet
	NoHeader  bool   `toml:"no_header"` // treat first row as data
	Separator string `toml:"separator"` // delimiter for delimited formats
}

type Config struct {
	Display DisplayConfig `toml:"display"`
	History HistoryConfig `toml:"history"`
	Input   InputConfig   `toml:"input"`

	// Computed paths (not from config file)
	HomeDir string `toml:"-"`
}

// DefaultHome returns the default griddle home directory.
// Respects GRIDDLE_HOME environment variable.
func DefaultHome() string {
	if h := os.Getenv("GRIDDLE_HOME"); h != "" {
		return expandPath(h)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".griddle"
	}
	return filepath.Join(home, ".griddle")
}

// Load reads the configuration from the specified file.
// If path is empty, uses the default location (~/.griddle/config.toml).
// A missing default config file is not an error; a missing explicit one is.
func Load(path string) (*Config, error) {
	homeDir := DefaultHome()

	explicit := path != ""
	if explicit {
		path = expandPath(path)
	} else {
		path = filepath.Join(homeDir, "config.toml")
	}

	cfg := &Config{
		HomeDir: homeDir,
		// Defaults
		Display: DisplayConfig{
			InferSchema: "safe",
		},
		History: HistoryConfig{
			Capacity: 1000,
		},
		Input: InputConfig{
			Format: "auto",
		},
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.History.File = expandPath(cfg.History.File)

	return cfg, nil
}

// HistoryPath returns the path of the command history file.
func (c *Config) HistoryPath() string {
	if c.History.File != "" {
		return c.History.File
	}
	return filepath.Join(c.HomeDir, "history")
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
