// Package config handles repository configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/medrec/internal/recommend"
)

// Config represents repository configuration stored in .medrec/config.json.
type Config struct {
	DefaultTopN int  `json:"default_top_n"` // Recommendations returned when -n is not given
	IncludeSelf bool `json:"include_self"`  // Keep the queried medicine in its own results
}

const (
	MedrecDir     = ".medrec"
	ConfigFile    = "config.json"
	MedicinesFile = "medicines.jsonl"
	CacheDir      = "cache"
	DBFile        = "medicines.db"
)

// Default returns the configuration written by a fresh repository.
func Default() *Config {
	return &Config{DefaultTopN: recommend.DefaultTopN}
}

// MedrecPath returns the path to the .medrec directory from a root path.
func MedrecPath(root string) string {
	return filepath.Join(root, MedrecDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, MedrecDir, ConfigFile)
}

// MedicinesPath returns the path to medicines.jsonl from a root path.
func MedicinesPath(root string) string {
	return filepath.Join(root, MedrecDir, MedicinesFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, MedrecDir, CacheDir)
}

// DBPath returns the path to medicines.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, MedrecDir, CacheDir, DBFile)
}

// IsRepository checks if the given path contains a medrec repository.
func IsRepository(root string) bool {
	info, err := os.Stat(MedrecPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a medrec repository.
// Returns the repository root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a medrec repository (no .medrec directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the repository at the given root.
// A missing default_top_n falls back to recommend.DefaultTopN.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.DefaultTopN < 1 {
		cfg.DefaultTopN = recommend.DefaultTopN
	}

	return cfg, nil
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ValidateTopN checks that a default_top_n value is usable.
func ValidateTopN(n int) error {
	if n < 1 {
		return fmt.Errorf("default_top_n must be at least 1, got %d", n)
	}
	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
