package openapi

import "os"

// Config holds the document metadata published in the generated spec's info object.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

// ConfigEnv names the environment variables that override Config fields.
// Empty names are skipped.
type ConfigEnv struct {
	Title       string
	Description string
}

// Finalize fills defaults, then applies environment overrides.
func (c *Config) Finalize(env *ConfigEnv) error {
	if c.Title == "" {
		c.Title = "Organizer API"
	}
	if c.Description == "" {
		c.Description = "Personal library of reusable prompt texts."
	}

	if env != nil {
		override(&c.Title, env.Title)
		override(&c.Description, env.Description)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
}

func override(field *string, name string) {
	if name == "" {
		return
	}
	if v := os.Getenv(name); v != "" {
		*field = v
	}
}
