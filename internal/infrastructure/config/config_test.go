package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const (
	testSecret   = "config-test-secret-at-least-32-chars!!"
	testPassword = "config-test-password"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfigFile(t, "auth:\n  token_secret: "+testSecret+"\n  superadmin_password: "+testPassword+"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 8080 {
		t.Errorf("server = %s:%d, want 0.0.0.0:8080", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Database.Path != "./data/storeapp.db" {
		t.Errorf("database.path = %q", cfg.Database.Path)
	}
	if cfg.Data.Path != "./data/catalog.json" {
		t.Errorf("data.path = %q", cfg.Data.Path)
	}
	if cfg.Auth.TokenTTL != 30 {
		t.Errorf("token_ttl = %d, want 30", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.SuperadminID != "superadmin" {
		t.Errorf("superadmin_id = %q", cfg.Auth.SuperadminID)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %s/%s, want info/json", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9090
auth:
  token_secret: `+testSecret+`
  token_ttl: 60
  superadmin_id: boss
  superadmin_password: `+testPassword+`
version:
  latest: "2.3.4"
  notes: "bug fixes"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Auth.TokenTTL != 60 {
		t.Errorf("token_ttl = %d, want 60", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.SuperadminID != "boss" {
		t.Errorf("superadmin_id = %q, want boss", cfg.Auth.SuperadminID)
	}
	if cfg.Version.Latest != "2.3.4" || cfg.Version.Notes != "bug fixes" {
		t.Errorf("version = %+v", cfg.Version)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9090
auth:
  token_secret: file-secret-that-is-long-enough-32ch
`)

	t.Setenv("STOREAPP_SERVER_PORT", "7070")
	t.Setenv("STOREAPP_TOKEN_SECRET", testSecret)
	t.Setenv("STOREAPP_SUPERADMIN_ID", "root")
	t.Setenv("STOREAPP_SUPERADMIN_PW", testPassword)
	t.Setenv("STOREAPP_LATEST_VERSION", "9.9.9")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want env override 7070", cfg.Server.Port)
	}
	if cfg.Auth.TokenSecret != testSecret {
		t.Error("token_secret should come from environment")
	}
	if cfg.Auth.SuperadminID != "root" {
		t.Errorf("superadmin_id = %q, want root", cfg.Auth.SuperadminID)
	}
	if cfg.Auth.SuperadminPassword != testPassword {
		t.Error("superadmin_password should come from environment")
	}
	if cfg.Version.Latest != "9.9.9" {
		t.Errorf("version.latest = %q, want 9.9.9", cfg.Version.Latest)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() should error on missing file")
	}
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"missing secret", func(c *Config) { c.Auth.TokenSecret = "" }, "token_secret is required"},
		{"short secret", func(c *Config) { c.Auth.TokenSecret = "short" }, "at least 32 characters"},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"missing db path", func(c *Config) { c.Database.Path = "" }, "database.path"},
		{"missing data path", func(c *Config) { c.Data.Path = "" }, "data.path"},
		{"missing superadmin id", func(c *Config) { c.Auth.SuperadminID = "" }, "superadmin_id"},
		{"missing superadmin password", func(c *Config) { c.Auth.SuperadminPassword = "" }, "superadmin_password is required"},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, "token_ttl"},
		{"negative ttl", func(c *Config) { c.Auth.TokenTTL = -5 }, "token_ttl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Auth.TokenSecret = testSecret
			cfg.Auth.SuperadminPassword = testPassword
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestDurationHelpers(t *testing.T) {
	cfg := defaultConfig()

	if got := cfg.Auth.TokenTTLDuration(); got != 30*time.Minute {
		t.Errorf("TokenTTLDuration() = %v, want 30m", got)
	}
	if got := cfg.Server.ReadTimeout(); got != 30*time.Second {
		t.Errorf("ReadTimeout() = %v, want 30s", got)
	}
	if got := cfg.Server.IdleTimeout(); got != 60*time.Second {
		t.Errorf("IdleTimeout() = %v, want 60s", got)
	}
}
