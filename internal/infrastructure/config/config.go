package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the storeapp server.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Data     DataConfig     `yaml:"data"`
	Auth     AuthConfig     `yaml:"auth"`
	Version  VersionConfig  `yaml:"version"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host     string        `yaml:"host"`
	Port     int           `yaml:"port"`
	TLS      TLSConfig     `yaml:"tls"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig    `yaml:"cors"`
}

// TLSConfig contains TLS certificate settings.
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// TimeoutConfig contains HTTP timeout settings (seconds).
type TimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
// An empty origin list allows all origins.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// DatabaseConfig contains SQLite database settings for the credential and
// audit tables.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// DataConfig contains the store catalog persistence settings.
type DataConfig struct {
	// Path is the filesystem path to the catalog JSON document.
	Path string `yaml:"path"`
}

// AuthConfig contains token and bootstrap account settings.
type AuthConfig struct {
	// TokenSecret signs access tokens. Required, minimum 32 characters.
	TokenSecret string `yaml:"token_secret"`

	// TokenTTL is the access token lifetime in minutes.
	TokenTTL int `yaml:"token_ttl"`

	// SuperadminID is the reserved superadmin account id. It is created at
	// first startup and can never be recreated or shadowed by an admin.
	SuperadminID string `yaml:"superadmin_id"`

	// SuperadminPassword is used only when the superadmin account does not
	// exist yet. Changing it later has no effect on the stored hash.
	SuperadminPassword string `yaml:"superadmin_password"`
}

// VersionConfig contains client-facing version metadata served by the
// version endpoint.
type VersionConfig struct {
	Latest      string `yaml:"latest"`
	Notes       string `yaml:"notes"`
	DownloadURL string `yaml:"download_url"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: STOREAPP_SECTION_KEY
// For example: STOREAPP_DATABASE_PATH, STOREAPP_SERVER_PORT
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Timeouts: TimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		Database: DatabaseConfig{
			Path:        "./data/storeapp.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		Data: DataConfig{
			Path: "./data/catalog.json",
		},
		Auth: AuthConfig{
			TokenTTL:     30,
			SuperadminID: "superadmin",
		},
		Version: VersionConfig{
			Latest: "1.0.0",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: STOREAPP_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Server
	if v := os.Getenv("STOREAPP_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("STOREAPP_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}

	// Storage
	if v := os.Getenv("STOREAPP_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("STOREAPP_DATA_PATH"); v != "" {
		cfg.Data.Path = v
	}

	// Auth - token secret (IMPORTANT: always override in production)
	if v := os.Getenv("STOREAPP_TOKEN_SECRET"); v != "" {
		cfg.Auth.TokenSecret = v
	}
	if v := os.Getenv("STOREAPP_SUPERADMIN_ID"); v != "" {
		cfg.Auth.SuperadminID = v
	}
	if v := os.Getenv("STOREAPP_SUPERADMIN_PW"); v != "" {
		cfg.Auth.SuperadminPassword = v
	}

	// Version metadata
	if v := os.Getenv("STOREAPP_LATEST_VERSION"); v != "" {
		cfg.Version.Latest = v
	}
	if v := os.Getenv("STOREAPP_VERSION_NOTES"); v != "" {
		cfg.Version.Notes = v
	}
	if v := os.Getenv("STOREAPP_DOWNLOAD_URL"); v != "" {
		cfg.Version.DownloadURL = v
	}
}

// Validate checks the configuration for errors and security issues.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 1 and 65535")
	}

	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	if c.Data.Path == "" {
		errs = append(errs, "data.path is required")
	}

	// Token secret is REQUIRED. An empty or weak secret would allow
	// attackers to forge tokens and gain write access to store data.
	const minSecretLength = 32
	if c.Auth.TokenSecret == "" {
		errs = append(errs, "auth.token_secret is required (set STOREAPP_TOKEN_SECRET environment variable)")
	} else if len(c.Auth.TokenSecret) < minSecretLength {
		errs = append(errs, "auth.token_secret must be at least 32 characters for adequate security")
	}

	if c.Auth.SuperadminID == "" {
		errs = append(errs, "auth.superadmin_id is required")
	}

	// The superadmin password is REQUIRED. First boot provisions the
	// superadmin account with this password; booting without one would
	// create an account nobody can log in as.
	if c.Auth.SuperadminPassword == "" {
		errs = append(errs, "auth.superadmin_password is required (set STOREAPP_SUPERADMIN_PW environment variable)")
	}

	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, "auth.token_ttl must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// TokenTTLDuration returns the access token lifetime as a Duration.
func (c AuthConfig) TokenTTLDuration() time.Duration {
	return time.Duration(c.TokenTTL) * time.Minute
}

// ReadTimeout returns the server read timeout as a Duration.
func (c ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.Timeouts.Read) * time.Second
}

// WriteTimeout returns the server write timeout as a Duration.
func (c ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.Timeouts.Write) * time.Second
}

// IdleTimeout returns the server idle timeout as a Duration.
func (c ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(c.Timeouts.Idle) * time.Second
}
