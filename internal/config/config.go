package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abey/findconf/internal/format"
)

const (
	ConfigDir  = ".findconf"
	ConfigFile = "config.yaml"
)

// Config holds the defaults applied when a lookup does not name them.
type Config struct {
	Format       string `yaml:"format,omitempty"`
	Subdirectory string `yaml:"subdirectory,omitempty"`
}

type Service interface {
	Config() *Config
	Save() error
	Update(cfg *Config) error
	IsConfigured() bool
	ConfigPath() string
}

func DefaultConfig() *Config {
	return &Config{
		Format: format.Auto.String(),
	}
}

// ParsedFormat returns the configured format; an empty value means auto.
func (c *Config) ParsedFormat() (format.Format, error) {
	return format.Parse(c.Format)
}

func (c *Config) Validate() error {
	if _, err := c.ParsedFormat(); err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}
	if filepath.IsAbs(c.Subdirectory) {
		return fmt.Errorf("subdirectory %q must be relative", c.Subdirectory)
	}
	return nil
}

func getGlobalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ConfigDir, ConfigFile), nil
}

func ensureConfigDirExists(configPath string) error {
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}

	return nil
}
