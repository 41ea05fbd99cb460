// Package config holds the settings of the harmonia tools, stored as YAML in
// the user config directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vsariola/harmonia"
)

type (
	// Config is the main configuration structure.
	Config struct {
		LogLevel string       `yaml:"log_level,omitempty"`
		Server   ServerConfig `yaml:"server,omitempty"`
		Render   RenderConfig `yaml:"render,omitempty"`
		Live     LiveConfig   `yaml:"live,omitempty"`
	}

	// ServerConfig configures the HTTP query server.
	ServerConfig struct {
		Listen      string   `yaml:"listen,omitempty"`
		CORSOrigins []string `yaml:"cors_origins,omitempty,flow"`
	}

	// RenderConfig configures rendering nodes into MIDI files.
	RenderConfig struct {
		Channel  uint8   `yaml:"channel,omitempty"`
		Velocity uint8   `yaml:"velocity,omitempty"`
		BPM      float64 `yaml:"bpm,omitempty"`
		// Step is the sampling interval in ticks; 0 means one beat.
		Step int `yaml:"step,omitempty"`
	}

	// LiveConfig configures live key holding.
	LiveConfig struct {
		// Input is the name prefix of the MIDI input to listen to; empty
		// means no input.
		Input    string                        `yaml:"input,omitempty"`
		Debounce time.Duration                 `yaml:"debounce,omitempty"`
		Bindings map[uint8]harmonia.PoseVector `yaml:"bindings,omitempty"`
	}
)

// Default returns the configuration used when there is no config file.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Server: ServerConfig{
			Listen:      "localhost:8080",
			CORSOrigins: []string{"*"},
		},
		Render: RenderConfig{
			Channel:  0,
			Velocity: 100,
			BPM:      120,
		},
		Live: LiveConfig{
			Debounce: 20 * time.Millisecond,
		},
	}
}

// Dir returns the directory of the config file.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "harmonia"), nil
}

// Path returns the full path of the default config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yml"), nil
}

// Load reads the config file at path. A missing file gives the defaults;
// values missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("could not read config %v: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config %v: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("could not marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
