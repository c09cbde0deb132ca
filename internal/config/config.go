// Package config provides application configuration management for swatchsheet.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wethinkt/go-swatchsheet/internal/layout"
)

// DefaultLayerName is the name of the layer swatches are drawn on.
const DefaultLayerName = "Pantone Swatches"

// Config holds the swatchsheet configuration.
type Config struct {
	Layout    layout.Config `json:"layout"`             // Swatch geometry
	LayerName string        `json:"layer_name"`         // Layer created for the sheet
	Label     LabelConfig   `json:"label"`              // Label text style
	Libraries []string      `json:"libraries"`          // Swatch libraries used to name colors, in order
	Language  string        `json:"language,omitempty"` // Message language (e.g. "de")
	Watch     WatchConfig   `json:"watch"`              // Watch mode settings
	Server    ServerConfig  `json:"server"`             // HTTP API settings
}

// LabelConfig holds the text style of swatch labels.
type LabelConfig struct {
	Font string  `json:"font"`
	Size float64 `json:"size"`
}

// WatchConfig holds watch mode settings.
type WatchConfig struct {
	Debounce string `json:"debounce"` // Debounce duration (e.g. "500ms")
}

// ServerConfig holds the HTTP API listen address.
type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// DebounceDuration returns the parsed debounce duration (default: 500ms).
func (c WatchConfig) DebounceDuration() time.Duration {
	if c.Debounce != "" {
		if d, err := time.ParseDuration(c.Debounce); err == nil && d > 0 {
			return d
		}
	}
	return 500 * time.Millisecond
}

// Dir returns the path to the .swatchsheet directory.
// SWATCHSHEET_HOME overrides the location.
func Dir() (string, error) {
	if dir := os.Getenv("SWATCHSHEET_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".swatchsheet"), nil
}

// Path returns the path to the main config file.
func Path() (string, error) {
	configDir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// Load loads the configuration from ~/.swatchsheet/config.json.
// A missing file yields the defaults.
func Load() (Config, error) {
	configPath, err := Path()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return Default(), nil
	} else if err != nil {
		return Config{}, err
	}

	// Start from defaults so missing keys keep their default values.
	config := Default()
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", configPath, err)
	}

	if config.LayerName == "" {
		config.LayerName = DefaultLayerName
	}
	if config.Label.Size <= 0 {
		config.Label.Size = 12
	}
	if err := config.Layout.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", configPath, err)
	}

	return config, nil
}

// Default returns a default configuration with all defaults set.
func Default() Config {
	return Config{
		Layout:    layout.DefaultConfig(),
		LayerName: DefaultLayerName,
		Label: LabelConfig{
			Font: "Helvetica",
			Size: 12,
		},
		Libraries: []string{"basic", "pantone-solid-coated"},
		Watch: WatchConfig{
			Debounce: "500ms",
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: 7480,
		},
	}
}

// Save saves the configuration to ~/.swatchsheet/config.json.
func Save(config Config) error {
	configPath, err := Path()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}
