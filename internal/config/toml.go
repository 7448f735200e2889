// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Profile *string      `toml:"profile"`
	Bugs    BugsConfig   `toml:"bugs"`
	Typing  TypingConfig `toml:"typing"`
	Log     LogConfig    `toml:"log"`
	Serve   ServeConfig  `toml:"serve"`
}

// BugsConfig maps Bug Squasher settings.
type BugsConfig struct {
	SpawnInterval *duration `toml:"spawn-interval"`
	MaxTargets    *int      `toml:"max-targets"`
	Margin        *float64  `toml:"margin"`
}

// TypingConfig maps Code Speed Test settings.
type TypingConfig struct {
	RoundSeconds *int    `toml:"round-seconds"`
	Snippets     *string `toml:"snippets"`
	MaxLength    *int    `toml:"max-length"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// ServeConfig maps HTTP server settings.
type ServeConfig struct {
	Addr       *string  `toml:"addr"`
	AreaWidth  *float64 `toml:"area-width"`
	AreaHeight *float64 `toml:"area-height"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
