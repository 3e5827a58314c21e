package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("test-version")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Version != "test-version" {
		t.Errorf("expected version test-version, got %s", cfg.Version)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Env != "local" {
		t.Errorf("expected default env local, got %s", cfg.Env)
	}
	if cfg.Database.Database != "platewise_engine" {
		t.Errorf("expected default database platewise_engine, got %s", cfg.Database.Database)
	}
	if cfg.MigrationsPath != "migrations" {
		t.Errorf("expected default migrations path, got %s", cfg.MigrationsPath)
	}
	if cfg.Database.MaxConnections != 25 {
		t.Errorf("expected default max connections 25, got %d", cfg.Database.MaxConnections)
	}
	if cfg.Database.MaxConnLifetime != time.Hour {
		t.Errorf("expected default conn lifetime 1h, got %s", cfg.Database.MaxConnLifetime)
	}
	if cfg.Database.MaxConnIdleTime != 30*time.Minute {
		t.Errorf("expected default conn idle time 30m, got %s", cfg.Database.MaxConnIdleTime)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PGHOST", "db.internal")
	t.Setenv("PGPASSWORD", "s3cret")

	cfg, err := Load("dev")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("expected host db.internal, got %s", cfg.Database.Host)
	}
	if cfg.Database.Password != "s3cret" {
		t.Error("expected password from environment")
	}
}

func TestLoad_TLSRequiresBothPaths(t *testing.T) {
	t.Setenv("TLS_CERT_PATH", "/tmp/does-not-matter.pem")
	t.Setenv("TLS_KEY_PATH", "")

	if _, err := Load("dev"); err == nil {
		t.Fatal("expected error when only one TLS path is set")
	}
}

func TestLoad_TLSFilesMustExist(t *testing.T) {
	dir := t.TempDir()
	certPath := filepath.Join(dir, "cert.pem")
	keyPath := filepath.Join(dir, "key.pem")

	t.Setenv("TLS_CERT_PATH", certPath)
	t.Setenv("TLS_KEY_PATH", keyPath)

	if _, err := Load("dev"); err == nil {
		t.Fatal("expected error when TLS files do not exist")
	}

	if err := os.WriteFile(certPath, []byte("cert"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(keyPath, []byte("key"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load("dev"); err != nil {
		t.Fatalf("expected success with both TLS files present: %v", err)
	}
}

func TestParseJWKSEndpoints(t *testing.T) {
	endpoints := parseJWKSEndpoints("https://a=https://a/jwks.json, https://b = https://b/jwks.json")

	if len(endpoints) != 2 {
		t.Fatalf("expected 2 endpoints, got %d", len(endpoints))
	}
	if endpoints["https://a"] != "https://a/jwks.json" {
		t.Errorf("unexpected endpoint for issuer a: %q", endpoints["https://a"])
	}
	if endpoints["https://b"] != "https://b/jwks.json" {
		t.Errorf("whitespace not trimmed: %q", endpoints["https://b"])
	}

	if got := parseJWKSEndpoints(""); len(got) != 0 {
		t.Errorf("expected empty map for empty input, got %v", got)
	}
}

func TestConnectionString(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "platewise",
		Password: "pw",
		Database: "platewise_engine",
		SSLMode:  "disable",
	}

	want := "host=localhost port=5432 user=platewise password=pw dbname=platewise_engine sslmode=disable"
	if got := cfg.ConnectionString(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
