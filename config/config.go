// Package config loads the game's ruleset and runtime settings from an
// optional YAML file, then applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds the ruleset and runtime settings.
type Config struct {
	// Seed for the dice. 0 means seed from the clock.
	Seed int64 `yaml:"seed"`
	// Countdown enables the hostility countdown after the rescue quest.
	Countdown bool `yaml:"countdown"`
	// CountdownTurns overrides the content's countdown length when > 0.
	CountdownTurns int `yaml:"countdown_turns"`
	// UnknownCountsAsTurn lets NPCs act after an unrecognised command.
	UnknownCountsAsTurn bool `yaml:"unknown_counts_as_turn"`
	// HistoryLimit caps location history. 0 = unbounded.
	HistoryLimit int `yaml:"history_limit"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogFile   string `yaml:"log_file"`

	// ContentDir loads the world from disk instead of the embedded files.
	ContentDir string `yaml:"content_dir"`
	// WrapWidth is the column output is wrapped at in plain mode.
	WrapWidth int `yaml:"wrap_width"`
}

// Default returns the canonical ruleset.
func Default() *Config {
	return &Config{
		Countdown: true,
		LogLevel:  "warn",
		LogFormat: "text",
		WrapWidth: 80,
	}
}

// Load reads the YAML file at path on top of the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.LogFile = getEnv("ZUUL_LOG_FILE", c.LogFile)
	c.ContentDir = getEnv("ZUUL_CONTENT", c.ContentDir)
	if seed := os.Getenv("ZUUL_SEED"); seed != "" {
		n, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return fmt.Errorf("ZUUL_SEED %q: %w", seed, ErrInvalid)
		}
		c.Seed = n
	}
	return nil
}

// Validate rejects settings the engine can't honour.
func (c *Config) Validate() error {
	switch {
	case c.CountdownTurns < 0:
		return fmt.Errorf("countdown_turns must not be negative: %w", ErrInvalid)
	case c.HistoryLimit < 0:
		return fmt.Errorf("history_limit must not be negative: %w", ErrInvalid)
	case c.WrapWidth < 0:
		return fmt.Errorf("wrap_width must not be negative: %w", ErrInvalid)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format %q: %w", c.LogFormat, ErrInvalid)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
