// Package config provides configuration management for gpg-manager.
// It decides where settings live and how the application starts; the
// user-facing preferences themselves are kept by the settings package.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/yllada/gpg-manager/common"
	"github.com/yllada/gpg-manager/settings"
)

// Config represents the application configuration.
// Values come from the YAML file, then from GPGMANAGER_* environment
// variables; command-line flags are applied on top by main.
type Config struct {
	// SettingsBackend selects the preferences store: "yaml" or "sqlite".
	SettingsBackend string `yaml:"settings_backend" env:"SETTINGS_BACKEND"`
	// SettingsPath overrides the store location. Empty uses the config dir.
	SettingsPath string `yaml:"settings_path" env:"SETTINGS_PATH"`
	// AppDir is the application directory holding keydb/ and locales/.
	// Empty uses the directory of the executable.
	AppDir string `yaml:"app_dir" env:"APP_DIR"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	// Theme sets the color theme: "light", "dark", or "auto".
	Theme string `yaml:"theme" env:"THEME"`
}

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "GPGMANAGER_"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		SettingsBackend: common.BackendYAML,
		LogLevel:        "info",
		Theme:           "auto",
	}
}

// Load builds the configuration from the file at path (the default path
// when empty) and the environment. A missing file is created with default
// values.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	envCfg, err := parseEnv()
	if err != nil {
		return nil, err
	}

	fileCfg, err := loadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := DefaultConfig().Save(path); err != nil {
			common.LogWarn("Could not write default configuration: %v", err)
		}
		fileCfg = &Config{}
	} else if err != nil {
		return nil, err
	}

	// mergo only fills empty fields, so earlier layers win.
	cfg := &Config{}
	for _, layer := range []*Config{envCfg, fileCfg, DefaultConfig()} {
		if err := mergo.Merge(cfg, layer); err != nil {
			return nil, fmt.Errorf("%w: error merging configuration: %v", common.ErrConfigLoad, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func parseEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("%w: error parsing environment: %v", common.ErrConfigLoad, err)
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: error opening configuration: %v", common.ErrConfigLoad, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true) // Strict validation: reject unknown fields

	var cfg Config
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: error parsing configuration: %v", common.ErrConfigLoad, err)
	}
	return &cfg, nil
}

// validate verifies that configuration values are valid
func (c *Config) validate() error {
	switch c.SettingsBackend {
	case common.BackendYAML, common.BackendSQLite:
	default:
		common.LogWarn("Unknown settings backend %q, using %s", c.SettingsBackend, common.BackendYAML)
		c.SettingsBackend = common.BackendYAML // Fallback to default
	}

	switch c.Theme {
	case "auto", "light", "dark":
	default:
		c.Theme = "auto"
	}

	c.LogLevel = strings.ToLower(c.LogLevel)
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		c.LogLevel = "info"
	}
	return nil
}

// Save saves the configuration to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("%w: error creating config directory: %v", common.ErrConfigSave, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: error serializing configuration: %v", common.ErrConfigSave, err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("%w: error saving configuration: %v", common.ErrConfigSave, err)
	}
	return nil
}

// DefaultPath returns ~/.config/gpg-manager/config.yaml.
func DefaultPath() (string, error) {
	dir, err := common.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, common.ConfigFileName), nil
}

// ResolveAppDir returns AppDir, or the executable's directory when unset.
func (c *Config) ResolveAppDir() (string, error) {
	if c.AppDir != "" {
		return c.AppDir, nil
	}
	return common.GetAppDir()
}

// ResolveSettingsPath returns SettingsPath, or the backend's default file
// in configDir when unset.
func (c *Config) ResolveSettingsPath(configDir string) string {
	if c.SettingsPath != "" {
		return c.SettingsPath
	}
	return settings.DefaultPath(c.SettingsBackend, configDir)
}
