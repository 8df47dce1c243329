package middleware

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// DefaultOrigin is the development server origin of the local UI.
const DefaultOrigin = "http://localhost:5173"

// ErrInvalidCORS reports a CORS setting that cannot be applied.
var ErrInvalidCORS = errors.New("invalid cors config")

// CORSConfig holds CORS policy settings.
type CORSConfig struct {
	Enabled          bool     `toml:"enabled"`
	Origins          []string `toml:"origins"`
	AllowedMethods   []string `toml:"allowed_methods"`
	AllowedHeaders   []string `toml:"allowed_headers"`
	AllowCredentials bool     `toml:"allow_credentials"`
	MaxAge           int      `toml:"max_age"`
}

// CORSEnv maps CORS config fields to environment variable names for override injection.
// List values are comma-separated.
type CORSEnv struct {
	Enabled          string
	Origins          string
	AllowedMethods   string
	AllowedHeaders   string
	AllowCredentials string
	MaxAge           string
}

// Finalize fills defaults, applies environment overrides, and validates.
// Malformed override values are errors rather than being ignored.
func (c *CORSConfig) Finalize(env *CORSEnv) error {
	if len(c.Origins) == 0 {
		c.Origins = []string{DefaultOrigin}
	}
	if len(c.AllowedMethods) == 0 {
		c.AllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(c.AllowedHeaders) == 0 {
		c.AllowedHeaders = []string{"Content-Type"}
	}
	if c.MaxAge <= 0 {
		c.MaxAge = 3600
	}

	if env != nil {
		if err := c.loadEnv(env); err != nil {
			return err
		}
	}
	return c.validate()
}

// Merge overwrites fields from overlay. Boolean fields always apply; slice and int
// fields only apply when set.
func (c *CORSConfig) Merge(overlay *CORSConfig) {
	c.Enabled = overlay.Enabled
	c.AllowCredentials = overlay.AllowCredentials

	if overlay.Origins != nil {
		c.Origins = overlay.Origins
	}
	if overlay.AllowedMethods != nil {
		c.AllowedMethods = overlay.AllowedMethods
	}
	if overlay.AllowedHeaders != nil {
		c.AllowedHeaders = overlay.AllowedHeaders
	}
	if overlay.MaxAge > 0 {
		c.MaxAge = overlay.MaxAge
	}
}

func (c *CORSConfig) loadEnv(env *CORSEnv) error {
	var errs []error
	parse := func(name string, apply func(string) error) {
		if v := lookup(name); v != "" {
			if err := apply(v); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
	}

	parse(env.Enabled, func(v string) (err error) {
		c.Enabled, err = strconv.ParseBool(v)
		return err
	})
	parse(env.AllowCredentials, func(v string) (err error) {
		c.AllowCredentials, err = strconv.ParseBool(v)
		return err
	})
	parse(env.MaxAge, func(v string) (err error) {
		c.MaxAge, err = strconv.Atoi(v)
		return err
	})
	parse(env.Origins, func(v string) error {
		c.Origins = splitList(v)
		return nil
	})
	parse(env.AllowedMethods, func(v string) error {
		c.AllowedMethods = splitList(v)
		return nil
	})
	parse(env.AllowedHeaders, func(v string) error {
		c.AllowedHeaders = splitList(v)
		return nil
	})

	return errors.Join(errs...)
}

// Origins are matched against the Origin header verbatim, so each must be a
// bare scheme://host[:port] with no path.
func (c *CORSConfig) validate() error {
	for _, origin := range c.Origins {
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" || (u.Path != "" && u.Path != "/") {
			return fmt.Errorf("%w: origin %q", ErrInvalidCORS, origin)
		}
		if strings.HasSuffix(origin, "/") {
			return fmt.Errorf("%w: origin %q has a trailing slash", ErrInvalidCORS, origin)
		}
	}
	if c.MaxAge < 0 {
		return fmt.Errorf("%w: negative max_age", ErrInvalidCORS)
	}
	return nil
}

func lookup(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}

func splitList(v string) []string {
	items := []string{}
	for item := range strings.SplitSeq(v, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
