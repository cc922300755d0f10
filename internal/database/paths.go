package database

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

const (
	AppDirName       = ".college-trip-planner"
	SQLiteDBFileName = "data.db"
	ConfigFileName   = "config.toml"

	DefaultServerAddr = "127.0.0.1:8080"
	DefaultSessionTTL = 2 * time.Hour
)

// GetAppDir returns ~/.college-trip-planner, creating it if needed
func GetAppDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	appDir := filepath.Join(homeDir, AppDirName)
	if err := os.MkdirAll(appDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create app directory: %w", err)
	}

	return appDir, nil
}

// GetDefaultDBPath returns the default SQLite database path: ~/.college-trip-planner/data.db
func GetDefaultDBPath() (string, error) {
	appDir, err := GetAppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, SQLiteDBFileName), nil
}

// GetConfigFilePath returns ~/.college-trip-planner/config.toml
func GetConfigFilePath() (string, error) {
	appDir, err := GetAppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, ConfigFileName), nil
}

// AppConfig stores application configuration
type AppConfig struct {
	DatabasePath     string `toml:"database_path"`
	ServerAddr       string `toml:"server_addr"`
	MaxExactColleges int    `toml:"max_exact_colleges"`
	// SessionTTL is a Go duration string such as "90m"
	SessionTTL string `toml:"session_ttl"`
}

// TTL returns the parsed session lifetime, falling back to DefaultSessionTTL
func (c *AppConfig) TTL() time.Duration {
	if c.SessionTTL == "" {
		return DefaultSessionTTL
	}
	d, err := time.ParseDuration(c.SessionTTL)
	if err != nil || d <= 0 {
		log.Warnf("[CONFIG] Invalid session_ttl %q, using %v", c.SessionTTL, DefaultSessionTTL)
		return DefaultSessionTTL
	}
	return d
}

// applyDefaults fills empty fields
func (c *AppConfig) applyDefaults() error {
	if c.DatabasePath == "" {
		path, err := GetDefaultDBPath()
		if err != nil {
			return err
		}
		c.DatabasePath = path
	}
	if c.ServerAddr == "" {
		c.ServerAddr = DefaultServerAddr
	}
	return nil
}

// LoadConfig loads the application config, returning defaults if not found
func LoadConfig() (*AppConfig, error) {
	configPath, err := GetConfigFilePath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom loads a config file at an explicit path
func LoadConfigFrom(configPath string) (*AppConfig, error) {
	var config AppConfig

	_, err := toml.DecodeFile(configPath, &config)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.applyDefaults(); err != nil {
		return nil, err
	}

	return &config, nil
}

// SaveConfig saves the application config
func SaveConfig(config *AppConfig) error {
	configPath, err := GetConfigFilePath()
	if err != nil {
		return err
	}
	return SaveConfigTo(configPath, config)
}

// SaveConfigTo writes the config to an explicit path
func SaveConfigTo(configPath string, config *AppConfig) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Atomic write
	tmpPath := configPath + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if err := os.Rename(tmpPath, configPath); err != nil {
		return fmt.Errorf("failed to rename config file: %w", err)
	}

	log.Printf("Config saved: database_path=%s", config.DatabasePath)
	return nil
}
