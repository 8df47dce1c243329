package config

import (
	"fmt"
	"os"

	"golang.org/x/text/language"
)

const EnvLibraryLocale = "ORGANIZER_LIBRARY_LOCALE"

// LibraryConfig holds prompt library settings.
type LibraryConfig struct {
	// Locale is the BCP 47 tag whose collation orders titles.
	Locale string `toml:"locale"`
}

// LocaleTag returns Locale as a language.Tag. Finalize guarantees it parses.
func (c *LibraryConfig) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *LibraryConfig) Finalize() error {
	if c.Locale == "" {
		c.Locale = "en"
	}
	if v := os.Getenv(EnvLibraryLocale); v != "" {
		c.Locale = v
	}

	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *LibraryConfig) Merge(overlay *LibraryConfig) {
	if overlay.Locale != "" {
		c.Locale = overlay.Locale
	}
}
