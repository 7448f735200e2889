package config

import (
	"fmt"
	"time"
)

// duration decodes TOML strings such as "800ms".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = duration(parsed)
	return nil
}

// Interval returns the spawn interval, or nil when unset.
func (b BugsConfig) Interval() *time.Duration {
	if b.SpawnInterval == nil {
		return nil
	}
	d := time.Duration(*b.SpawnInterval)
	return &d
}
