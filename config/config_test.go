package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, "id_base: 20000\ndatabase: /tmp/values.db\nlog_file: /tmp/sss.log\n")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.IDBase != 20000 {
		t.Fatalf("expected id_base 20000, got %d", cfg.IDBase)
	}
	if cfg.Database != "/tmp/values.db" {
		t.Fatalf("unexpected database %q", cfg.Database)
	}
	if cfg.LogFile != "/tmp/sss.log" {
		t.Fatalf("unexpected log file %q", cfg.LogFile)
	}
}

func TestLoadFilePartial(t *testing.T) {
	path := writeConfig(t, "database: custom.db\n")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.IDBase != defaultIDBase {
		t.Fatalf("missing keys must keep defaults, got id_base %d", cfg.IDBase)
	}
	if cfg.Database != "custom.db" {
		t.Fatalf("unexpected database %q", cfg.Database)
	}
}

func TestLoadFileRejectsBadBase(t *testing.T) {
	path := writeConfig(t, "id_base: -5\n")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.IDBase != defaultIDBase {
		t.Fatalf("non-positive base must fall back to the default, got %d", cfg.IDBase)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("explicit missing file must be an error")
	}
}

func TestLoadWithoutConfigFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.IDBase != defaultIDBase || cfg.Database != defaultDatabase {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadReadsXDGConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", t.TempDir())

	sub := filepath.Join(dir, "sssutility")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "config.yaml"), []byte("id_base: 30000\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.IDBase != 30000 {
		t.Fatalf("expected 30000 from config file, got %d", cfg.IDBase)
	}
}
