package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shawn0818/lebron-bot/internal/config"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestConfigLoad_FromYAML(t *testing.T) {
	yaml := `
logger:
  level: debug
  format: console
  env: dev

api:
  base_url: https://feed.example.com
  timeout: 10s
  retries: 5

database:
  path: /tmp/games.db

server:
  addr: ":9090"
`
	cfg, err := config.Load(writeTempConfig(t, yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.BaseURL != "https://feed.example.com" {
		t.Errorf("unexpected base url: %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("unexpected timeout: %v", cfg.API.Timeout)
	}
	if cfg.API.Retries != 5 {
		t.Errorf("unexpected retries: %d", cfg.API.Retries)
	}
	if cfg.Database.Path != "/tmp/games.db" {
		t.Errorf("unexpected db path: %q", cfg.Database.Path)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("unexpected server addr: %q", cfg.Server.Addr)
	}
	if cfg.Logger.Level != "debug" {
		t.Errorf("unexpected log level: %q", cfg.Logger.Level)
	}
}

func TestConfigLoad_DefaultsFillGaps(t *testing.T) {
	yaml := `
logger:
  level: info
  format: json
  env: prod
`
	cfg, err := config.Load(writeTempConfig(t, yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.BaseURL != "https://cdn.nba.com" {
		t.Errorf("expected default base url, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("expected default timeout, got %v", cfg.API.Timeout)
	}
	if cfg.Database.Path != "lebron.db" {
		t.Errorf("expected default db path, got %q", cfg.Database.Path)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default server addr, got %q", cfg.Server.Addr)
	}
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	t.Setenv("APP_DATABASE_PATH", "/var/lib/lebron/override.db")

	cfg, err := config.Load(writeTempConfig(t, "logger:\n  level: info\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Path != "/var/lib/lebron/override.db" {
		t.Errorf("env override not applied, got %q", cfg.Database.Path)
	}
}

func TestConfigLoad_MissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
