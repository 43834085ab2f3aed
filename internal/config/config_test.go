package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != DefaultDBName {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.DefaultPeriod != "week" {
		t.Fatalf("expected week, got %q", cfg.DefaultPeriod)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
}

func TestLoadOrCreateReadsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "db_path = \"/tmp/other.db\"\ndefault_period = \"month\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "/tmp/other.db" {
		t.Fatalf("unexpected db path %q", cfg.DBPath)
	}
	if cfg.DefaultPeriod != "month" {
		t.Fatalf("unexpected period %q", cfg.DefaultPeriod)
	}
}

func TestLoadOrCreateFillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("default_color = \"#FF0000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != DefaultDBName {
		t.Fatalf("expected fallback db path, got %q", cfg.DBPath)
	}
	if cfg.DefaultPeriod != "week" {
		t.Fatalf("expected fallback period, got %q", cfg.DefaultPeriod)
	}
}
