// Package config loads cuebank's runtime configuration from TOML with
// defaults suitable for a single-user library under the home directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultLogLevel    = "warn"
	DefaultBackend     = "sqlite"
	DefaultLibraryName = ".cuebank"

	configPathEnvKey = "CUEBANK_CONFIG"
	configFileName   = ".cuebank.toml"

	// BackendSQLite and BackendLocal are the supported blob backends.
	BackendSQLite = "sqlite"
	BackendLocal  = "local"
)

// Config defines runtime configuration for cuebank.
type Config struct {
	// LibraryDir holds the catalog database and blob storage. Defaults to
	// ~/.cuebank.
	LibraryDir string `toml:"library_dir"`
	// DBPath overrides the snapshot database location.
	DBPath string `toml:"db_path"`
	// BlobPath overrides the blob storage location (a file for the sqlite
	// backend, a directory for the local backend).
	BlobPath string `toml:"blob_path"`
	// StorageBackend selects the blob backend: "sqlite" or "local".
	StorageBackend string `toml:"storage_backend"`
	// LogLevel is the default slog level; flag and env override it.
	LogLevel string `toml:"log_level"`
	// FFProbePath overrides the ffprobe binary used to probe imports.
	FFProbePath string `toml:"ffprobe_path"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		StorageBackend: DefaultBackend,
		LogLevel:       DefaultLogLevel,
	}
}

// Load reads configuration from the default locations: built-in defaults,
// then ~/.cuebank.toml, then the file named by $CUEBANK_CONFIG.
func Load() (Config, error) {
	cfg := Default()

	if home, err := os.UserHomeDir(); err == nil {
		if err := loadFileIfExists(filepath.Join(home, configFileName), &cfg); err != nil {
			return cfg, err
		}
	}
	if path := strings.TrimSpace(os.Getenv(configPathEnvKey)); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := cfg.normalize(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	return nil
}

func loadFileIfExists(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return loadFile(path, cfg)
}

// normalize fills derived paths and validates enumerations.
func (c *Config) normalize() error {
	if strings.TrimSpace(c.LibraryDir) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		c.LibraryDir = filepath.Join(home, DefaultLibraryName)
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.LibraryDir, "catalog.db")
	}
	if c.StorageBackend == "" {
		c.StorageBackend = DefaultBackend
	}
	switch c.StorageBackend {
	case BackendSQLite:
		if c.BlobPath == "" {
			c.BlobPath = filepath.Join(c.LibraryDir, "blobs.db")
		}
	case BackendLocal:
		if c.BlobPath == "" {
			c.BlobPath = filepath.Join(c.LibraryDir, "objects")
		}
	default:
		return fmt.Errorf("invalid storage_backend %q (want %q or %q)", c.StorageBackend, BackendSQLite, BackendLocal)
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	return nil
}

// EnsureLibraryDir creates the library directory when missing.
func (c *Config) EnsureLibraryDir() error {
	return os.MkdirAll(c.LibraryDir, 0o755)
}
