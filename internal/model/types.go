// Package model defines shared configuration structures.
package model

import "time"

// Config holds the resolved settings for every command.
type Config struct {
	Bugs    BugsConfig
	Typing  TypingConfig
	Log     LogConfig
	Serve   ServeConfig
	Profile string
}

// BugsConfig tunes the Bug Squasher game.
type BugsConfig struct {
	SpawnInterval time.Duration
	MaxTargets    int
	Margin        float64
}

// TypingConfig tunes the Code Speed Test game.
type TypingConfig struct {
	RoundSeconds int
	SnippetsPath string
	MaxLength    int
}

// LogConfig selects the log level and destination.
type LogConfig struct {
	Level string
	File  string
}

// ServeConfig configures the local HTTP server.
type ServeConfig struct {
	Addr       string
	AreaWidth  float64
	AreaHeight float64
}
