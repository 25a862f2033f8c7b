package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// APIConfig points at the publisher frontend API.
type APIConfig struct {
	URL            string `toml:"url"`
	PageSize       int    `toml:"page_size"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// LogConfig controls the zap logger. File is used by the TUI, which owns
// the terminal; an empty File discards TUI logs.
type LogConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// ServerConfig binds repositories whose remote contains Match to a
// publisher instance.
type ServerConfig struct {
	Match string `toml:"match"`
	URL   string `toml:"url"`
}

// Config holds all buildboard configuration.
type Config struct {
	API     APIConfig      `toml:"api"`
	Log     LogConfig      `toml:"log"`
	Servers []ServerConfig `toml:"servers"`
	// FilterByRepo limits the pipeline list to the current git repository.
	FilterByRepo bool `toml:"filter_by_repo"`
}

const (
	defaultPageSize = 20
	defaultTimeout  = 15 * time.Second
)

// PageSizeOrDefault returns API.PageSize if set, otherwise defaultPageSize.
func (c Config) PageSizeOrDefault() int {
	if c.API.PageSize > 0 {
		return c.API.PageSize
	}
	return defaultPageSize
}

// Timeout returns the HTTP timeout.
func (c Config) Timeout() time.Duration {
	if c.API.TimeoutSeconds > 0 {
		return time.Duration(c.API.TimeoutSeconds) * time.Second
	}
	return defaultTimeout
}

// LoadFrom reads configuration from the given TOML file path.
// If the file does not exist, it returns an empty config without error.
// A .env file in the working directory is loaded into the environment
// first, without replacing variables already set. Environment variables
// always take precedence over file values:
//   - BUILDBOARD_API_URL   overrides api.url
//   - BUILDBOARD_PAGE_SIZE overrides api.page_size
//   - BUILDBOARD_LOG_LEVEL overrides log.level
//   - BUILDBOARD_LOG_FILE  overrides log.file
func LoadFrom(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	var cfg Config
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("decoding %s: %w", path, err)
		}
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultConfigPath returns the default path for the buildboard config file.
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "buildboard", "config.toml")
}

// DefaultLogPath returns the default TUI log file.
func DefaultLogPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "buildboard", "buildboard.log")
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("BUILDBOARD_API_URL"); v != "" {
		cfg.API.URL = v
	}
	if v := os.Getenv("BUILDBOARD_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BUILDBOARD_PAGE_SIZE: %w", err)
		}
		cfg.API.PageSize = n
	}
	if v := os.Getenv("BUILDBOARD_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("BUILDBOARD_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	return nil
}

// Save writes cfg to the given TOML file path, creating parent directories as needed.
// Existing file contents are overwritten. Permissions on the written file are 0600.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("opening config file: %w", err)
	}
	if encErr := toml.NewEncoder(f).Encode(cfg); encErr != nil {
		f.Close()
		return encErr
	}
	return f.Close()
}
