// Package config loads the application configuration from
// ~/.config/explorerpro/config.yaml. A missing or unreadable file means
// defaults; a malformed file is an error the caller may surface.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configDirName  = ".config"
	appDirName     = "explorerpro"
	configFileName = "config.yaml"
)

// Config holds user-tunable settings.
type Config struct {
	// SweepInterval is how often the row cache drops dead entries.
	SweepInterval time.Duration `yaml:"sweep_interval"`
	// ChunkSize bounds one background selection batch.
	ChunkSize int `yaml:"chunk_size"`
	// CacheMaxEntries caps the row cache.
	CacheMaxEntries int `yaml:"cache_max_entries"`
	// ShowHidden shows dotfiles on startup.
	ShowHidden bool `yaml:"show_hidden"`
	// UseNerdFonts enables Nerd Font icons.
	UseNerdFonts bool `yaml:"use_nerd_fonts"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SweepInterval:   30 * time.Second,
		ChunkSize:       64,
		CacheMaxEntries: 10000,
		ShowHidden:      true,
		UseNerdFonts:    true,
	}
}

// Path returns the expected config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, appDirName, configFileName), nil
}

// Load reads the config file at path, filling unset fields with
// defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg.sanitized(), nil
}

// Discover loads the config from the standard location, quietly falling
// back to defaults when the location can't even be determined.
func Discover() Config {
	path, err := Path()
	if err != nil {
		return Default()
	}
	cfg, err := Load(path)
	if err != nil {
		return Default()
	}
	return cfg
}

// sanitized clamps nonsensical values back to defaults.
func (c Config) sanitized() Config {
	def := Default()
	if c.SweepInterval <= 0 {
		c.SweepInterval = def.SweepInterval
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = def.ChunkSize
	}
	if c.CacheMaxEntries <= 0 {
		c.CacheMaxEntries = def.CacheMaxEntries
	}
	return c
}
