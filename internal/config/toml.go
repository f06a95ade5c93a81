// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/mindely/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Timer    TimerConfig    `toml:"timer"`
	Messages MessagesConfig `toml:"messages"`
	Log      LogConfig      `toml:"log"`
}

// TimerConfig maps timer-related settings.
type TimerConfig struct {
	Sound  *bool   `toml:"sound"`
	Method *string `toml:"method"`
}

// MessagesConfig replaces the built-in encouragement messages per phase.
type MessagesConfig struct {
	Focus []string `toml:"focus"`
	Break []string `toml:"break"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// MessageSet returns the configured messages. Empty phases are left empty so
// the engine falls back to its built-in set for them.
func (c FileConfig) MessageSet() model.MessageSet {
	return model.MessageSet{
		Focus: nonEmpty(c.Messages.Focus),
		Break: nonEmpty(c.Messages.Break),
	}
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
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
