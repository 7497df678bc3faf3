package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validConfig = `
app:
  name: barrioliga
  environment: test
  port: 8080
  base_url: http://localhost:8080
league:
  season: "2026"
  repair_cron: "0 4 * * *"
database:
  driver: sqlite
  filename: data/league.db
admin:
  username: admin
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("APP_SECRET_KEY", "test-secret")
	t.Setenv("ADMIN_PASSWORD_HASH", "test-hash")

	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.App.Port != 8080 {
		t.Errorf("port = %d", cfg.App.Port)
	}
	if cfg.League.Season != "2026" {
		t.Errorf("season = %q", cfg.League.Season)
	}
	if cfg.App.SecretKey != "test-secret" {
		t.Errorf("secret key not loaded from environment")
	}
	if cfg.Admin.PasswordHash != "test-hash" {
		t.Errorf("password hash not loaded from environment")
	}
}

func TestLoad_MissingSeason(t *testing.T) {
	content := `
app:
  name: barrioliga
  port: 8080
database:
  driver: sqlite
  filename: data/league.db
admin:
  username: admin
`
	if _, err := Load(writeConfig(t, content)); err == nil {
		t.Fatal("expected error for missing season")
	}
}

func TestValidate_UnsupportedDriver(t *testing.T) {
	var cfg Config
	cfg.App.Name = "barrioliga"
	cfg.App.Port = 8080
	cfg.League.Season = "2026"
	cfg.Database.Driver = "postgres"
	cfg.Admin.Username = "admin"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
