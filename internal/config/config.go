// Package config loads the organizer's TOML configuration with optional
// per-environment overlays and ORGANIZER_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/organizer/pkg/database"
	"github.com/JaimeStill/organizer/pkg/middleware"
	"github.com/JaimeStill/organizer/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvOrganizerEnv             = "ORGANIZER_ENV"
	EnvOrganizerShutdownTimeout = "ORGANIZER_SHUTDOWN_TIMEOUT"
	EnvOrganizerVersion         = "ORGANIZER_VERSION"
)

var databaseEnv = &database.Env{
	Driver:          "ORGANIZER_DB_DRIVER",
	Path:            "ORGANIZER_DB_PATH",
	BusyTimeout:     "ORGANIZER_DB_BUSY_TIMEOUT",
	Host:            "ORGANIZER_DB_HOST",
	Port:            "ORGANIZER_DB_PORT",
	Name:            "ORGANIZER_DB_NAME",
	User:            "ORGANIZER_DB_USER",
	Password:        "ORGANIZER_DB_PASSWORD",
	SSLMode:         "ORGANIZER_DB_SSL_MODE",
	MaxOpenConns:    "ORGANIZER_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "ORGANIZER_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "ORGANIZER_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "ORGANIZER_DB_CONN_TIMEOUT",
	SkipMigrations:  "ORGANIZER_DB_SKIP_MIGRATIONS",
}

var storageEnv = &storage.Env{
	Backend:          "ORGANIZER_STORAGE_BACKEND",
	Path:             "ORGANIZER_STORAGE_PATH",
	ContainerName:    "ORGANIZER_STORAGE_CONTAINER_NAME",
	ConnectionString: "ORGANIZER_STORAGE_CONNECTION_STRING",
	MaxListSize:      "ORGANIZER_STORAGE_MAX_LIST_SIZE",
}

// Config is the root configuration for the organizer service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	Library         LibraryConfig   `toml:"library"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the ORGANIZER_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvOrganizerEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	return parseDuration(c.ShutdownTimeout)
}

// Load reads configuration from the working directory. See LoadDir.
func Load() (*Config, error) {
	return LoadDir(".")
}

// LoadDir reads dir/config.toml when present, merges dir/config.<ORGANIZER_ENV>.toml
// over it when that file exists, and finalizes every section. Without a base file,
// defaults and environment variables provide all configuration and CORS is
// enabled for the local UI.
func LoadDir(dir string) (*Config, error) {
	cfg := &Config{
		API: APIConfig{CORS: middleware.CORSConfig{Enabled: true}},
	}

	base := filepath.Join(dir, BaseConfigFile)
	if _, err := os.Stat(base); err == nil {
		if cfg, err = load(base); err != nil {
			return nil, err
		}
	}

	if env := os.Getenv(EnvOrganizerEnv); env != "" {
		path := filepath.Join(dir, fmt.Sprintf(OverlayConfigPattern, env))
		if _, err := os.Stat(path); err == nil {
			overlay, err := load(path)
			if err != nil {
				return nil, fmt.Errorf("load overlay %s: %w", path, err)
			}
			cfg.Merge(overlay)
		}
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sections.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Library.Merge(&overlay.Library)
}

func (c *Config) finalize() error {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if v := os.Getenv(EnvOrganizerShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvOrganizerVersion); v != "" {
		c.Version = v
	}
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}

	sections := []struct {
		name     string
		finalize func() error
	}{
		{"server", c.Server.Finalize},
		{"database", func() error { return c.Database.Finalize(databaseEnv) }},
		{"storage", func() error { return c.Storage.Finalize(storageEnv) }},
		{"api", c.API.Finalize},
		{"library", c.Library.Finalize},
	}

	for _, s := range sections {
		if err := s.finalize(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &cfg, nil
}
