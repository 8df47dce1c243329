package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/JaimeStill/organizer/internal/config"
	"github.com/JaimeStill/organizer/pkg/database"
	"github.com/JaimeStill/organizer/pkg/storage"
)

const baseConfig = `
shutdown_timeout = "20s"
version = "1.2.0"

[server]
host = "127.0.0.1"
port = 8181

[database]
driver = "sqlite"
path = "var/prompts.db"

[storage]
backend = "filesystem"
path = "var/archive"

[api]
base_path = "/api"
max_body_size = "256KB"

[api.cors]
enabled = false

[library]
locale = "de"
`

const overlayConfig = `
[server]
port = 9090

[library]
locale = "sv"
`

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Addr() != "127.0.0.1:8080" {
		t.Errorf("addr: got %s", cfg.Server.Addr())
	}
	if cfg.Database.Driver != database.DriverSQLite {
		t.Errorf("driver: got %s", cfg.Database.Driver)
	}
	if cfg.Storage.Backend != storage.BackendFilesystem {
		t.Errorf("storage backend: got %s", cfg.Storage.Backend)
	}
	if cfg.API.BasePath != "/api" || cfg.API.MaxBodySizeBytes() != 1024*1024 {
		t.Errorf("api: got %s %d", cfg.API.BasePath, cfg.API.MaxBodySizeBytes())
	}
	if !cfg.API.CORS.Enabled || cfg.API.CORS.Origins[0] != "http://localhost:5173" {
		t.Errorf("cors: got %+v", cfg.API.CORS)
	}
	if cfg.API.OpenAPI.Title != "Organizer API" {
		t.Errorf("openapi title: got %s", cfg.API.OpenAPI.Title)
	}
	if cfg.Library.LocaleTag() != language.English {
		t.Errorf("locale: got %s", cfg.Library.LocaleTag())
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("shutdown timeout: got %s", cfg.ShutdownTimeoutDuration())
	}
	if cfg.Env() != "local" {
		t.Errorf("env: got %s", cfg.Env())
	}
}

func TestLoadFileAndOverlay(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, config.BaseConfigFile, baseConfig)
	writeFile(t, "config.prod.toml", overlayConfig)
	t.Setenv(config.EnvOrganizerEnv, "prod")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("overlay port: got %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Path != "var/prompts.db" {
		t.Errorf("database path: got %s", cfg.Database.Path)
	}
	if cfg.API.CORS.Enabled {
		t.Error("cors should be disabled by file")
	}
	if cfg.API.MaxBodySizeBytes() != 256*1024 {
		t.Errorf("max body size: got %d", cfg.API.MaxBodySizeBytes())
	}
	if cfg.Library.Locale != "sv" {
		t.Errorf("overlay locale: got %s", cfg.Library.Locale)
	}
	if cfg.Version != "1.2.0" || cfg.ShutdownTimeoutDuration() != 20*time.Second {
		t.Errorf("root fields: got %s %s", cfg.Version, cfg.ShutdownTimeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, config.BaseConfigFile, baseConfig)

	t.Setenv("ORGANIZER_SERVER_PORT", "7070")
	t.Setenv("ORGANIZER_DB_PATH", "env.db")
	t.Setenv("ORGANIZER_STORAGE_PATH", "env-archive")
	t.Setenv("ORGANIZER_LIBRARY_LOCALE", "fr")
	t.Setenv("ORGANIZER_API_MAX_BODY_SIZE", "2MB")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("port: got %d", cfg.Server.Port)
	}
	if cfg.Database.Path != "env.db" {
		t.Errorf("db path: got %s", cfg.Database.Path)
	}
	if cfg.Storage.Path != "env-archive" {
		t.Errorf("storage path: got %s", cfg.Storage.Path)
	}
	if cfg.Library.LocaleTag() != language.French {
		t.Errorf("locale: got %s", cfg.Library.LocaleTag())
	}
	if cfg.API.MaxBodySizeBytes() != 2*1024*1024 {
		t.Errorf("max body size: got %d", cfg.API.MaxBodySizeBytes())
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr string
	}{
		{"bad toml", "version = ", nil, "parse config"},
		{"bad locale", "", map[string]string{"ORGANIZER_LIBRARY_LOCALE": "not a locale!"}, "locale"},
		{"nested base path", "", map[string]string{"ORGANIZER_API_BASE_PATH": "/api/v1"}, "base_path"},
		{"bad body size", "", map[string]string{"ORGANIZER_API_MAX_BODY_SIZE": "lots"}, "max_body_size"},
		{"bad shutdown timeout", "", map[string]string{"ORGANIZER_SHUTDOWN_TIMEOUT": "soon"}, "shutdown_timeout"},
		{"bad storage backend", "", map[string]string{"ORGANIZER_STORAGE_BACKEND": "tape"}, "storage"},
		{"bad port", "", map[string]string{"ORGANIZER_SERVER_PORT": "http"}, "ORGANIZER_SERVER_PORT"},
		{"port out of range", "[server]\nport = 70000\n", nil, "invalid port"},
		{"bad write timeout", "", map[string]string{"ORGANIZER_SERVER_WRITE_TIMEOUT": "1 minute"}, "write_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			if tt.content != "" {
				writeFile(t, config.BaseConfigFile, tt.content)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvOrganizerEnv, "prod")

	if err := os.WriteFile(filepath.Join(dir, config.BaseConfigFile), []byte(baseConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.prod.toml"), []byte(overlayConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("overlay port: got %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.Addr() != "127.0.0.1:9090" {
		t.Errorf("addr: got %s", cfg.Server.Addr())
	}
	if cfg.Database.Path != "var/prompts.db" {
		t.Errorf("db path: got %s", cfg.Database.Path)
	}
}

func TestServerMergeDurations(t *testing.T) {
	base := config.ServerConfig{ReadTimeout: "5s", WriteTimeout: "5s"}
	base.Merge(&config.ServerConfig{WriteTimeout: "1m"})

	if base.ReadTimeout != "5s" || base.WriteTimeout != "1m" {
		t.Errorf("merge: got read %s write %s", base.ReadTimeout, base.WriteTimeout)
	}
}
