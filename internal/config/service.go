package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type globalConfigService struct {
	configPath string
	config     *Config
}

func (s *globalConfigService) Config() *Config {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	return s.config
}

func (s *globalConfigService) Save() error {
	if s.config == nil {
		s.config = DefaultConfig()
	}

	if err := s.config.Validate(); err != nil {
		return err
	}

	if err := ensureConfigDirExists(s.configPath); err != nil {
		return err
	}

	data, err := yaml.Marshal(s.config)
	if err != nil {
		return err
	}

	return os.WriteFile(s.configPath, data, 0644)
}

func (s *globalConfigService) IsConfigured() bool {
	_, err := os.Stat(s.configPath)
	return err == nil
}

// NewService loads ~/.findconf/config.yaml. A missing file yields the
// defaults; nothing is written until Save.
func NewService() (Service, error) {
	configPath, err := getGlobalConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get global config path: %w", err)
	}

	return newServiceAt(configPath)
}

func newServiceAt(configPath string) (Service, error) {
	service := &globalConfigService{
		configPath: configPath,
	}

	if err := service.load(); err != nil {
		return nil, err
	}

	return service, nil
}

func (s *globalConfigService) load() error {
	data, err := os.ReadFile(s.configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.config = DefaultConfig()
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid config file %s: %w", s.configPath, err)
	}

	s.config = config
	return nil
}

func (s *globalConfigService) Update(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.config = cfg
	return s.Save()
}

func (s *globalConfigService) ConfigPath() string {
	return s.configPath
}
