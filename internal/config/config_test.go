package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeDerivesPaths(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.LibraryDir = dir
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.DBPath != filepath.Join(dir, "catalog.db") {
		t.Fatalf("unexpected db path %q", cfg.DBPath)
	}
	if cfg.BlobPath != filepath.Join(dir, "blobs.db") {
		t.Fatalf("unexpected blob path %q", cfg.BlobPath)
	}
}

func TestNormalizeLocalBackend(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.LibraryDir = dir
	cfg.StorageBackend = BackendLocal
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.BlobPath != filepath.Join(dir, "objects") {
		t.Fatalf("unexpected blob path %q", cfg.BlobPath)
	}
}

func TestNormalizeRejectsUnknownBackend(t *testing.T) {
	cfg := Default()
	cfg.LibraryDir = t.TempDir()
	cfg.StorageBackend = "s3"
	if err := cfg.normalize(); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cuebank.toml")
	content := "library_dir = \"" + dir + "\"\nstorage_backend = \"local\"\nlog_level = \"debug\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Default()
	if err := loadFile(path, &cfg); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.StorageBackend != BackendLocal || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
