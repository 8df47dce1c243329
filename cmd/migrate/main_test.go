package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4"

	"github.com/JaimeStill/organizer/internal/migrations"
	"github.com/JaimeStill/organizer/pkg/database"
)

func newMigrator(t *testing.T) *migrate.Migrate {
	t.Helper()

	cfg := &database.Config{Path: filepath.Join(t.TempDir(), "organizer.db")}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	m, err := migrations.New(cfg)
	if err != nil {
		t.Fatalf("migrations.New: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestRun(t *testing.T) {
	m := newMigrator(t)

	steps := []struct {
		name string
		opts options
		want string
	}{
		{"version before migrating", options{version: true}, "version: none"},
		{"up", options{up: true}, "migrations applied"},
		{"up again", options{up: true}, "migrations applied"},
		{"version after up", options{version: true}, "version: 1, dirty: false"},
		{"down", options{down: true}, "migrations reverted"},
		{"force", options{force: 1, forced: true}, "forced to version 1"},
	}

	for _, s := range steps {
		var out bytes.Buffer
		if err := run(m, s.opts, &out); err != nil {
			t.Fatalf("%s: %v", s.name, err)
		}
		if !strings.Contains(out.String(), s.want) {
			t.Errorf("%s: output %q, want %q", s.name, out.String(), s.want)
		}
	}
}

func TestRunUsage(t *testing.T) {
	m := newMigrator(t)

	if err := run(m, options{}, &bytes.Buffer{}); !errors.Is(err, errUsage) {
		t.Errorf("got %v, want errUsage", err)
	}
}
