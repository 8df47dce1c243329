// Package migrations embeds the prompt library schema and applies it with golang-migrate.
package migrations

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"

	"github.com/JaimeStill/organizer/pkg/database"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

// New creates a migrator for the configured driver. The caller must Close it.
func New(cfg *database.Config) (*migrate.Migrate, error) {
	source, err := iofs.New(files, cfg.Driver)
	if err != nil {
		return nil, fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, cfg.MigrationURL())
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}

	return m, nil
}

// Up applies all pending migrations. A schema that is already current is not an error.
func Up(cfg *database.Config, logger *slog.Logger) error {
	m, err := New(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Info("migrations applied", "driver", cfg.Driver, "version", version, "dirty", dirty)
	return nil
}
