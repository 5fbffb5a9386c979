// Package config provides configuration management for the tradelog CLI.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"

	"github.com/xtraders/tradelog/internal/errors"
)

// ConfigName is the config file name without extension.
const ConfigName = "config"

// MemoryStorage as storage path keeps all data in memory for the run.
const MemoryStorage = ":memory:"

// Config holds all application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Ingest  IngestConfig  `mapstructure:"ingest"`
	Logging LoggingConfig `mapstructure:"logging"`
	UI      UIConfig      `mapstructure:"ui"`

	// Dir is the directory the config was loaded from.
	Dir string `mapstructure:"-"`
}

// StorageConfig holds persistence configuration.
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// IngestConfig holds batch import configuration.
type IngestConfig struct {
	MaxConcurrentReads int `mapstructure:"max_concurrent_reads"` // 0 = unlimited
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/xtraders"
	}
	return filepath.Join(home, ".config", "xtraders")
}

// FilePath returns the config file location inside configDir.
func FilePath(configDir string) string {
	return filepath.Join(configDir, ConfigName+".toml")
}

// Load loads configuration from the specified directory, writing a
// template first if none exists. If configDir is empty, uses the default
// config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{Dir: configDir}
	if err := loadConfigFile(configDir, cfg); err != nil {
		return nil, errors.Wrap(err, "loading config.toml")
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating config")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("storage.path", filepath.Join(configDir, "xtraders.db"))
	v.SetDefault("ingest.max_concurrent_reads", 4)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
	v.SetDefault("logging.file_path", filepath.Join(configDir, "logs", "xtraders.log"))
	v.SetDefault("logging.max_size", 20)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age", 30)
	v.SetDefault("ui.color_enabled", true)
}

func loadConfigFile(configDir string, cfg *Config) error {
	v := viper.New()
	v.SetConfigName(ConfigName)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		// Config file not found, create template and carry on with defaults
		if err := createTemplateConfig(configDir); err != nil {
			return err
		}
	}

	return v.Unmarshal(cfg)
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("XTRADERS_DB_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("XTRADERS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("XTRADERS_MAX_CONCURRENT_READS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(errors.ErrConfigInvalid, "XTRADERS_MAX_CONCURRENT_READS=%q", v)
		}
		cfg.Ingest.MaxConcurrentReads = n
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !validLevels[c.Logging.Level] {
		return errors.Wrapf(errors.ErrConfigInvalid, "invalid log level: %s (must be debug, info, warn or error)", c.Logging.Level)
	}
	if c.Ingest.MaxConcurrentReads < 0 {
		return errors.Wrap(errors.ErrConfigInvalid, "max_concurrent_reads must be non-negative")
	}
	if c.Storage.Path == "" {
		return errors.Wrap(errors.ErrConfigInvalid, "storage path must not be empty")
	}
	return nil
}

// InMemory reports whether persistence is disabled.
func (c *Config) InMemory() bool {
	return c.Storage.Path == MemoryStorage
}
