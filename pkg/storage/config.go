package storage

import (
	"fmt"
	"os"
	"strconv"
)

// Storage backends.
const (
	BackendFilesystem = "filesystem"
	BackendAzure      = "azure"
)

// MaxListCap bounds the page size used when listing blobs.
const MaxListCap int32 = 5000

// Config selects a blob backend and holds its connection parameters.
// Path applies to the filesystem backend; ContainerName and ConnectionString to Azure.
type Config struct {
	Backend          string `toml:"backend"`
	Path             string `toml:"path"`
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
	MaxListSize      int32  `toml:"max_list_size"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Backend          string
	Path             string
	ContainerName    string
	ConnectionString string
	MaxListSize      string
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

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
	if overlay.ContainerName != "" {
		c.ContainerName = overlay.ContainerName
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
	if overlay.MaxListSize != 0 {
		c.MaxListSize = overlay.MaxListSize
	}
}

func (c *Config) loadDefaults() {
	if c.Backend == "" {
		c.Backend = BackendFilesystem
	}
	if c.Path == "" {
		c.Path = "data/archive"
	}
	if c.ContainerName == "" {
		c.ContainerName = "organizer"
	}
	if c.MaxListSize <= 0 {
		c.MaxListSize = 50
	}
	if c.MaxListSize > MaxListCap {
		c.MaxListSize = MaxListCap
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := lookup(env.Backend); v != "" {
		c.Backend = v
	}
	if v := lookup(env.Path); v != "" {
		c.Path = v
	}
	if v := lookup(env.ContainerName); v != "" {
		c.ContainerName = v
	}
	if v := lookup(env.ConnectionString); v != "" {
		c.ConnectionString = v
	}
	if v := lookup(env.MaxListSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxListSize = int32(min(n, int(MaxListCap)))
		}
	}
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendFilesystem:
		return nil
	case BackendAzure:
		if c.ConnectionString == "" {
			return fmt.Errorf("connection_string required for %s backend", BackendAzure)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownBackend, c.Backend)
	}
}

func lookup(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
