package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"filemcp/internal/logging"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "filemcp" // application name used for config directory

// Environment variables consulted by Load
const (
	EnvConfigPath  = "FILEMCP_CONFIG_PATH"
	EnvMaxFileSize = "FILEMCP_MAX_FILE_SIZE"
	EnvReadTimeout = "FILEMCP_READ_TIMEOUT"
)

// Config holds user configuration for the filemcp server.
type Config struct {
	Version       string `yaml:"version"`        // Track config version
	ServerName    string `yaml:"server_name"`    // Name reported in the MCP handshake
	ServerVersion string `yaml:"server_version"` // Version reported in the MCP handshake

	// MaxFileSize caps how many bytes one search may load. 0 means no limit.
	MaxFileSize int64 `yaml:"max_file_size"`

	// ReadTimeout bounds a single tool call. 0 means no deadline.
	ReadTimeout time.Duration `yaml:"read_timeout"`
}

// ConfigPath returns the config file path for the current platform.
// FILEMCP_CONFIG_PATH takes precedence over the XDG location.
func ConfigPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}

	configPath := filepath.Join(xdg.ConfigHome, APP_NAME, "config.yaml")
	logging.Debug("Determined config path", "path", configPath)
	return configPath, nil
}

// FindConfigFile returns the path to the config file, and whether it exists.
func FindConfigFile() (string, bool) {
	primary, err := ConfigPath()
	if err != nil {
		logging.Error("Failed to get config path", "error", err)
		return "", false
	}

	if _, err := os.Stat(primary); err == nil {
		logging.Debug("Config found at primary path", "path", primary)
		return primary, true
	}

	return primary, false
}

// Load loads the config from the standard location, falling back to defaults
// when no file exists, then applies environment overrides.
func Load() (*Config, error) {
	configPath, exists := FindConfigFile()

	var cfg *Config
	if exists {
		var err error
		cfg, err = LoadFrom(configPath)
		if err != nil {
			return nil, err
		}
	} else {
		logging.Debug("No config file, using defaults", "path", configPath)
		def := DefaultConfig()
		cfg = &def
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFrom loads config from a specific path. Fields missing from the file
// keep their default values.
func LoadFrom(path string) (*Config, error) {
	logging.Debug("Reading config file", "path", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment. Variables that are already set are left alone.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from FILEMCP_* environment variables
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvMaxFileSize); ok && v != "" {
		size, err := cast.ToInt64E(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMaxFileSize, err)
		}
		c.MaxFileSize = size
	}

	if v, ok := os.LookupEnv(EnvReadTimeout); ok && v != "" {
		timeout, err := cast.ToDurationE(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvReadTimeout, err)
		}
		c.ReadTimeout = timeout
	}

	return nil
}

// Validate rejects values the server cannot run with
func (c *Config) Validate() error {
	if c.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size must not be negative, got %d", c.MaxFileSize)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("read_timeout must not be negative, got %s", c.ReadTimeout)
	}
	if c.ServerName == "" {
		return fmt.Errorf("server_name must not be empty")
	}
	return nil
}

// DefaultConfig returns a Config with sensible defaults.
// No size limit and no deadline: a search loads the whole file.
func DefaultConfig() Config {
	return Config{
		Version:       "1.0",
		ServerName:    "FileMCP",
		ServerVersion: "1.0.0",
		MaxFileSize:   0,
		ReadTimeout:   0,
	}
}

// SaveTo writes the config to a specific path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file with restrictive permissions (600)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
