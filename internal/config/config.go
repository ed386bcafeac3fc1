package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the demo application configuration
type Config struct {
	Version     int        `toml:"version"`
	Placeholder string     `toml:"placeholder"`
	UISettings  UISettings `toml:"ui"`
	Behavior    Behavior   `toml:"behavior"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	MaxVisibleRows int    `toml:"max_visible_rows"`
	AccentColor    string `toml:"accent_color"`
	MouseEnabled   bool   `toml:"mouse_enabled"`
}

// Behavior tunes how selection behaves in the widget
type Behavior struct {
	CloseOnSelect     bool `toml:"close_on_select"`
	SelectWithTab     bool `toml:"select_with_tab"`
	ResetInputOnClose bool `toml:"reset_input_on_close"`
}

// Service handles configuration management
type Service interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// service is the concrete implementation
type service struct {
	filePath string
}

// NewService creates a new config service rooted in the user config dir
func NewService() Service {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	dir := filepath.Join(configDir, "combobox")
	os.MkdirAll(dir, 0755)

	return &service{filePath: filepath.Join(dir, "config.toml")}
}

// Load loads the configuration from file, falling back to defaults
// when no file exists yet
func (s *service) Load() (*Config, error) {
	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		return Default(), nil
	}
	return s.LoadFromPath(s.filePath)
}

// Save saves the configuration to file
func (s *service) Save(config *Config) error {
	return s.SaveToPath(config, s.filePath)
}

// LoadFromPath loads configuration from a specific path
func (s *service) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.UISettings.MaxVisibleRows <= 0 {
		cfg.UISettings.MaxVisibleRows = Default().UISettings.MaxVisibleRows
	}
	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (s *service) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Version:     1,
		Placeholder: "Type to search...",
		UISettings: UISettings{
			MaxVisibleRows: 8,
			AccentColor:    "99",
			MouseEnabled:   true,
		},
		Behavior: Behavior{
			CloseOnSelect: true,
		},
	}
}
