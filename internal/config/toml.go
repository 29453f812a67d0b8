// Package config provides configuration helpers and TOML/YAML parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileConfig represents the configuration file.
type FileConfig struct {
	Input   InputConfig   `toml:"input" yaml:"input"`
	Layout  LayoutConfig  `toml:"layout" yaml:"layout"`
	Haptics HapticsConfig `toml:"haptics" yaml:"haptics"`
	Rings   []RingConfig  `toml:"rings" yaml:"rings"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// InputConfig maps device polling settings.
type InputConfig struct {
	Device *int     `toml:"device" yaml:"device"`
	FPS    *float64 `toml:"fps" yaml:"fps"`
}

// LayoutConfig maps ring geometry and button assignments.
type LayoutConfig struct {
	Preset          *string  `toml:"preset" yaml:"preset"`
	Debounce        *int     `toml:"debounce" yaml:"debounce"`
	KeyShift        *int     `toml:"key-shift" yaml:"key-shift"`
	TargetRadius    *float64 `toml:"target-radius" yaml:"target-radius"`
	TinyRadius      *float64 `toml:"tiny-radius" yaml:"tiny-radius"`
	OffsetFraction  *float64 `toml:"offset-fraction" yaml:"offset-fraction"`
	InvertY         *bool    `toml:"invert-y" yaml:"invert-y"`
	BackspaceButton *int     `toml:"backspace-button" yaml:"backspace-button"`
	SpaceButton     *int     `toml:"space-button" yaml:"space-button"`
}

// HapticsConfig maps rumble settings.
type HapticsConfig struct {
	Enabled    *bool    `toml:"enabled" yaml:"enabled"`
	DurationMs *int     `toml:"duration-ms" yaml:"duration-ms"`
	Strong     *float64 `toml:"strong" yaml:"strong"`
	Weak       *float64 `toml:"weak" yaml:"weak"`
}

// RingConfig overrides one ring of the selected preset, matched by name.
// A name the preset does not have adds a ring.
type RingConfig struct {
	Name      string  `toml:"name" yaml:"name"`
	Center    *string `toml:"center" yaml:"center"`
	Keys      *string `toml:"keys" yaml:"keys"`
	AltKeys   *string `toml:"alt-keys" yaml:"alt-keys"`
	XAxis     *int    `toml:"x-axis" yaml:"x-axis"`
	YAxis     *int    `toml:"y-axis" yaml:"y-axis"`
	AltButton *int    `toml:"alt-button" yaml:"alt-button"`
}

// LoggingConfig maps log settings.
type LoggingConfig struct {
	Level *string `toml:"level" yaml:"level"`
	File  *string `toml:"file" yaml:"file"`
}

// LoadConfig reads a config from the given path. Missing file is not an error.
// Paths ending in .yaml or .yml are decoded as YAML, everything else as TOML.
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
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return FileConfig{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
		}
	default:
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
		}
	}
	return cfg, nil
}
