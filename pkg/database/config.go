package database

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds connection parameters for the embedded SQLite file or a PostgreSQL server.
// Path applies to sqlite; Host through SSLMode apply to postgres.
type Config struct {
	Driver          string `toml:"driver"`
	Path            string `toml:"path"`
	BusyTimeout     string `toml:"busy_timeout"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	Name            string `toml:"name"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	SSLMode         string `toml:"ssl_mode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime string `toml:"conn_max_lifetime"`
	ConnTimeout     string `toml:"conn_timeout"`
	SkipMigrations  bool   `toml:"skip_migrations"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Driver          string
	Path            string
	BusyTimeout     string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    string
	MaxIdleConns    string
	ConnMaxLifetime string
	ConnTimeout     string
	SkipMigrations  string
}

// BusyTimeoutDuration returns BusyTimeout as a time.Duration.
func (c *Config) BusyTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.BusyTimeout)
	return d
}

// ConnMaxLifetimeDuration returns ConnMaxLifetime as a time.Duration.
func (c *Config) ConnMaxLifetimeDuration() time.Duration {
	d, _ := time.ParseDuration(c.ConnMaxLifetime)
	return d
}

// ConnTimeoutDuration returns ConnTimeout as a time.Duration.
func (c *Config) ConnTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ConnTimeout)
	return d
}

// DriverName returns the database/sql driver name registered for Driver.
func (c *Config) DriverName() string {
	if c.Driver == DriverPostgres {
		return "pgx"
	}
	return "sqlite"
}

// Dsn returns the connection string passed to sql.Open.
func (c *Config) Dsn() string {
	if c.Driver == DriverPostgres {
		return fmt.Sprintf(
			"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
			c.Host, c.Port, c.Name, c.User, c.Password, c.SSLMode,
		)
	}

	return fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)",
		c.Path, c.BusyTimeoutDuration().Milliseconds(),
	)
}

// MigrationURL returns the URL form understood by golang-migrate database drivers.
func (c *Config) MigrationURL() string {
	if c.Driver == DriverPostgres {
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Password),
			Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
			Path:     c.Name,
			RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
		}
		return u.String()
	}
	return "sqlite://" + c.Path
}

// Finalize applies environment variable overrides, fills defaults for unset
// fields, and validates. Env runs first so driver-dependent defaults see the override.
func (c *Config) Finalize(env *Env) error {
	if env != nil {
		c.loadEnv(env)
	}
	c.loadDefaults()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. SkipMigrations only applies when set.
func (c *Config) Merge(overlay *Config) {
	if overlay.Driver != "" {
		c.Driver = overlay.Driver
	}
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
	if overlay.BusyTimeout != "" {
		c.BusyTimeout = overlay.BusyTimeout
	}
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	if overlay.Name != "" {
		c.Name = overlay.Name
	}
	if overlay.User != "" {
		c.User = overlay.User
	}
	if overlay.Password != "" {
		c.Password = overlay.Password
	}
	if overlay.SSLMode != "" {
		c.SSLMode = overlay.SSLMode
	}
	if overlay.MaxOpenConns != 0 {
		c.MaxOpenConns = overlay.MaxOpenConns
	}
	if overlay.MaxIdleConns != 0 {
		c.MaxIdleConns = overlay.MaxIdleConns
	}
	if overlay.ConnMaxLifetime != "" {
		c.ConnMaxLifetime = overlay.ConnMaxLifetime
	}
	if overlay.ConnTimeout != "" {
		c.ConnTimeout = overlay.ConnTimeout
	}
	if overlay.SkipMigrations {
		c.SkipMigrations = true
	}
}

func (c *Config) loadDefaults() {
	if c.Driver == "" {
		c.Driver = DriverSQLite
	}
	if c.Path == "" {
		c.Path = "data/organizer.db"
	}
	if c.BusyTimeout == "" {
		c.BusyTimeout = "5s"
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 5432
	}
	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}
	// sqlite serializes writers; one connection avoids SQLITE_BUSY between pooled conns.
	if c.MaxOpenConns == 0 {
		if c.Driver == DriverSQLite {
			c.MaxOpenConns = 1
		} else {
			c.MaxOpenConns = 10
		}
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = min(c.MaxOpenConns, 2)
	}
	if c.ConnMaxLifetime == "" {
		c.ConnMaxLifetime = "0s"
	}
	if c.ConnTimeout == "" {
		c.ConnTimeout = "5s"
	}
}

func (c *Config) loadEnv(env *Env) {
	lookup := func(name string, apply func(string)) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			apply(v)
		}
	}

	lookup(env.Driver, func(v string) { c.Driver = v })
	lookup(env.Path, func(v string) { c.Path = v })
	lookup(env.BusyTimeout, func(v string) { c.BusyTimeout = v })
	lookup(env.Host, func(v string) { c.Host = v })
	lookup(env.Port, func(v string) {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	})
	lookup(env.Name, func(v string) { c.Name = v })
	lookup(env.User, func(v string) { c.User = v })
	lookup(env.Password, func(v string) { c.Password = v })
	lookup(env.SSLMode, func(v string) { c.SSLMode = v })
	lookup(env.MaxOpenConns, func(v string) {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxOpenConns = n
		}
	})
	lookup(env.MaxIdleConns, func(v string) {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxIdleConns = n
		}
	})
	lookup(env.ConnMaxLifetime, func(v string) { c.ConnMaxLifetime = v })
	lookup(env.ConnTimeout, func(v string) { c.ConnTimeout = v })
	lookup(env.SkipMigrations, func(v string) {
		if b, err := strconv.ParseBool(v); err == nil {
			c.SkipMigrations = b
		}
	})
}

func (c *Config) validate() error {
	switch c.Driver {
	case DriverSQLite:
		if c.Path == "" {
			return fmt.Errorf("path required")
		}
	case DriverPostgres:
		if c.Name == "" {
			return fmt.Errorf("name required")
		}
		if c.User == "" {
			return fmt.Errorf("user required")
		}
	default:
		return fmt.Errorf("unsupported driver: %q", c.Driver)
	}

	if c.MaxOpenConns < 1 {
		return fmt.Errorf("max_open_conns must be positive")
	}
	if _, err := time.ParseDuration(c.BusyTimeout); err != nil {
		return fmt.Errorf("invalid busy_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid conn_max_lifetime: %w", err)
	}
	if _, err := time.ParseDuration(c.ConnTimeout); err != nil {
		return fmt.Errorf("invalid conn_timeout: %w", err)
	}
	return nil
}
