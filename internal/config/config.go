// Package config provides configuration loading and validation for warsync.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/warfront-labs/warsync/internal/telemetry"
)

// EnvPrefix is the prefix for environment variables consumed by warsync
const EnvPrefix = "WARSYNC"

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	// Source describes the remote war API to synchronize from
	Source SourceConfig `yaml:"source"`

	// Sync controls the synchronization cadence and language set
	Sync SyncConfig `yaml:"sync"`

	// Server configures the read-only HTTP API
	Server ServerConfig `yaml:"server,omitempty"`

	// Database configures snapshot storage; when omitted snapshots are
	// kept in memory only
	Database *DatabaseConfig `yaml:"database,omitempty"`

	// Telemetry configures OpenTelemetry metrics export
	Telemetry *telemetry.Config `yaml:"telemetry,omitempty"`
}

// SourceConfig defines the remote war API settings
type SourceConfig struct {
	// Endpoint is the base API URL, e.g.
	// "https://api.live.prod.thehelldiversgame.com/api"
	Endpoint string `yaml:"endpoint"`

	// Timeout is the per-request HTTP timeout (e.g. "10s"); optional
	Timeout string `yaml:"timeout,omitempty"`
}

// SyncConfig defines synchronization settings
type SyncConfig struct {
	// Interval is the nominal delay between successful cycles (e.g. "20s")
	Interval string `yaml:"interval"`

	// Languages is the ordered list of language identifiers to fetch
	// translated artifacts for. May be empty, in which case no translated
	// artifact is fetched.
	Languages []string `yaml:"languages,omitempty"`
}

// ServerConfig defines HTTP server settings
type ServerConfig struct {
	// Address is the listen address, defaulting to ":8080"
	Address string `yaml:"address,omitempty"`
}

// DatabaseConfig defines database connection settings
type DatabaseConfig struct {
	// Host is the database server hostname or IP address
	Host string `yaml:"host"`

	// Port is the database server port
	Port int `yaml:"port"`

	// User is the database username
	User string `yaml:"user"`

	// PasswordFile is the path to a file containing the database password.
	// The file should contain only the password with optional trailing
	// whitespace.
	PasswordFile string `yaml:"passwordFile,omitempty"`

	// Database is the database name
	Database string `yaml:"database"`

	// SSLMode is the SSL mode for the connection (disable, require, verify-ca, verify-full)
	SSLMode string `yaml:"sslMode,omitempty"`

	// MaxConns is the maximum number of pooled connections
	MaxConns int32 `yaml:"maxConns,omitempty"`
}

// GetPassword returns the database password using the following priority:
// 1. Read from PasswordFile if specified
// 2. Read from WARSYNC_DATABASE_PASSWORD environment variable
func (d *DatabaseConfig) GetPassword() (string, error) {
	if d.PasswordFile != "" {
		cleanPath := filepath.Clean(d.PasswordFile)

		data, err := os.ReadFile(cleanPath)
		if err != nil {
			return "", fmt.Errorf("failed to read password from file %s: %w", d.PasswordFile, err)
		}

		return strings.TrimSpace(string(data)), nil
	}

	if envPassword := os.Getenv(EnvPrefix + "_DATABASE_PASSWORD"); envPassword != "" {
		return envPassword, nil
	}

	return "", fmt.Errorf(
		"no database password configured: set passwordFile or %s_DATABASE_PASSWORD environment variable",
		EnvPrefix,
	)
}

// GetConnectionString builds a PostgreSQL connection string with proper
// password handling. The password is URL-escaped to handle special characters.
func (d *DatabaseConfig) GetConnectionString() (string, error) {
	password, err := d.GetPassword()
	if err != nil {
		return "", err
	}

	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}

	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User,
		url.QueryEscape(password),
		d.Host,
		d.Port,
		d.Database,
		sslMode,
	)

	return connString, nil
}

// LoadConfig loads and parses configuration from a YAML file
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	if loaderCfg.path == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(loaderCfg.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// SyncInterval returns the parsed nominal sync interval. The value is
// guaranteed valid after LoadConfig; the error covers hand-built configs.
func (c *Config) SyncInterval() (time.Duration, error) {
	interval, err := time.ParseDuration(c.Sync.Interval)
	if err != nil {
		return 0, fmt.Errorf("sync.interval must be a valid duration: %w", err)
	}
	if interval <= 0 {
		return 0, fmt.Errorf("sync.interval must be positive, got %s", interval)
	}
	return interval, nil
}

// SourceTimeout returns the parsed per-request HTTP timeout, or zero when
// unset (the HTTP client applies its own default).
func (c *Config) SourceTimeout() (time.Duration, error) {
	if c.Source.Timeout == "" {
		return 0, nil
	}
	timeout, err := time.ParseDuration(c.Source.Timeout)
	if err != nil {
		return 0, fmt.Errorf("source.timeout must be a valid duration: %w", err)
	}
	return timeout, nil
}

// ServerAddress returns the listen address, using ":8080" if not specified
func (c *Config) ServerAddress() string {
	if c.Server.Address == "" {
		return ":8080"
	}
	return c.Server.Address
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if c.Source.Endpoint == "" {
		return fmt.Errorf("source.endpoint is required")
	}
	if _, err := url.ParseRequestURI(c.Source.Endpoint); err != nil {
		return fmt.Errorf("source.endpoint is not a valid URL: %w", err)
	}
	if c.Source.Timeout != "" {
		if _, err := time.ParseDuration(c.Source.Timeout); err != nil {
			return fmt.Errorf("source.timeout must be a valid duration (e.g. '10s'): %w", err)
		}
	}

	if c.Sync.Interval == "" {
		return fmt.Errorf("sync.interval is required")
	}
	interval, err := time.ParseDuration(c.Sync.Interval)
	if err != nil {
		return fmt.Errorf("sync.interval must be a valid duration (e.g. '20s', '5m'): %w", err)
	}
	if interval <= 0 {
		return fmt.Errorf("sync.interval must be positive, got %s", interval)
	}

	seen := make(map[string]bool)
	for i, lang := range c.Sync.Languages {
		if lang == "" {
			return fmt.Errorf("sync.languages[%d]: language identifier cannot be empty", i)
		}
		if seen[lang] {
			return fmt.Errorf("sync.languages[%d]: duplicate language identifier '%s'", i, lang)
		}
		seen[lang] = true
	}

	if c.Database != nil {
		if err := c.validateDatabase(); err != nil {
			return err
		}
	}

	return nil
}

// validateDatabase validates the database configuration
func (c *Config) validateDatabase() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database.database is required")
	}
	return nil
}
