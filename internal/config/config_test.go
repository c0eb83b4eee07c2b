package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if cfg.Storage.Backend != StorageBackendMemory {
		t.Fatalf("unexpected storage backend %q", cfg.Storage.Backend)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("unexpected log level %q", cfg.Logging.Level)
	}
	if cfg.UI.EmptyTitle == "" || cfg.UI.EmptyHint == "" {
		t.Fatal("expected empty-state texts by default")
	}
	if !cfg.Logging.DevFile.Enabled || cfg.Logging.DevFile.Dir != "" {
		t.Fatalf("expected dev file logging into the platform dir by default, got %#v", cfg.Logging.DevFile)
	}
	if cfg.Keys.Toggle != "space" || cfg.Keys.Delete != "d" {
		t.Fatalf("unexpected default keys %#v", cfg.Keys)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	defaults := Default()
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), defaults)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UI.Title != defaults.UI.Title {
		t.Fatalf("expected default title, got %q", cfg.UI.Title)
	}
}

func TestLoadEmptyFileUsesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "\n  \n"), Default())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Backend != StorageBackendMemory {
		t.Fatalf("unexpected backend %q", cfg.Storage.Backend)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[storage]
backend = " SQLite "

[logging]
level = "DEBUG"

[logging.dev_file]
enabled = false

[ui]
title = "Lista de Tarefas"
empty_title = "Nenhuma tarefa ainda"

[keys]
toggle = "x"
`)
	cfg, err := Load(path, Default())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Backend != StorageBackendSQLite {
		t.Fatalf("unexpected backend %q", cfg.Storage.Backend)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected level %q", cfg.Logging.Level)
	}
	if cfg.Logging.DevFile.Enabled {
		t.Fatal("expected dev file logging disabled from config override")
	}
	if cfg.UI.Title != "Lista de Tarefas" || cfg.UI.EmptyTitle != "Nenhuma tarefa ainda" {
		t.Fatalf("unexpected ui config %#v", cfg.UI)
	}
	if cfg.UI.Subtitle != Default().UI.Subtitle {
		t.Fatalf("expected untouched subtitle default, got %q", cfg.UI.Subtitle)
	}
	if cfg.Keys.Toggle != "x" || cfg.Keys.Delete != "d" {
		t.Fatalf("unexpected keys %#v", cfg.Keys)
	}
}

func TestLoadRejectsInvalidBackend(t *testing.T) {
	_, err := Load(writeConfig(t, "[storage]\nbackend = \"postgres\"\n"), Default())
	if err == nil || !strings.Contains(err.Error(), "storage.backend") {
		t.Fatalf("expected storage.backend error, got %v", err)
	}
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	_, err := Load(writeConfig(t, "[logging]\nlevel = \"loud\"\n"), Default())
	if err == nil || !strings.Contains(err.Error(), "logging.level") {
		t.Fatalf("expected logging.level error, got %v", err)
	}
}

func TestLoadRejectsDuplicateKeys(t *testing.T) {
	_, err := Load(writeConfig(t, "[keys]\ntoggle = \"d\"\n"), Default())
	if err == nil || !strings.Contains(err.Error(), "duplicates") {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	if _, err := Load(writeConfig(t, "[storage\nbackend="), Default()); err == nil {
		t.Fatal("expected decode error")
	}
}
