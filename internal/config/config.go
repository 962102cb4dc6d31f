// Package config loads agentctl configuration from
// ~/.config/agentctl/config.toml. The file only supplies defaults for
// command-line flags; a missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// WorktreesConfig holds worktree bootstrap defaults.
type WorktreesConfig struct {
	Count   int    `toml:"count"`
	Prefix  string `toml:"prefix"`
	Dir     string `toml:"dir"`
	BaseRef string `toml:"base_ref"`
}

// SyncConfig holds sync defaults.
type SyncConfig struct {
	Strategy  string `toml:"strategy"`
	Autostash bool   `toml:"autostash"`
}

// Config holds the agentctl configuration
type Config struct {
	Worktrees WorktreesConfig `toml:"worktrees"`
	Sync      SyncConfig      `toml:"sync"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Worktrees: WorktreesConfig{
			Count:  2,
			Prefix: "agent",
			Dir:    "worktrees",
		},
		Sync: SyncConfig{
			Strategy: "rebase",
		},
	}
}

// configPath returns the path to the config file
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "agentctl", "config.toml"), nil
}

// Load reads config from ~/.config/agentctl/config.toml
// Returns Default() if file doesn't exist (no error)
// Returns error only if file exists but is invalid
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from an explicit path, filling unset fields with
// defaults.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate rejects values that would mis-derive worktree names or branches.
func (c *Config) Validate() error {
	if c.Worktrees.Count < 1 {
		return fmt.Errorf("worktrees.count must be >= 1, got %d", c.Worktrees.Count)
	}
	if c.Worktrees.Prefix == "" {
		return errors.New("worktrees.prefix must not be empty")
	}
	if c.Worktrees.Dir == "" {
		return errors.New("worktrees.dir must not be empty")
	}
	if filepath.IsAbs(c.Worktrees.Dir) {
		return fmt.Errorf("worktrees.dir must be relative to the repo root, got %q", c.Worktrees.Dir)
	}
	switch c.Sync.Strategy {
	case "rebase", "merge":
	default:
		return fmt.Errorf("sync.strategy must be 'rebase' or 'merge', got %q", c.Sync.Strategy)
	}
	return nil
}
