package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"cuebank/internal/blobstore"
	"cuebank/internal/catalog"
	"cuebank/internal/config"
	"cuebank/internal/probe"
	"cuebank/internal/store"
)

// withCatalog opens the stores, loads the catalog, runs fn, and closes
// everything again. Every command goes through here.
func withCatalog(cfg *config.Config, cmd *cobra.Command, fn func(cat *catalog.Catalog) error) error {
	if err := cfg.EnsureLibraryDir(); err != nil {
		return fmt.Errorf("prepare library directory: %w", err)
	}

	snaps, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open catalog database: %w", err)
	}
	defer snaps.Close()

	blobs, err := openBlobStore(cfg)
	if err != nil {
		return err
	}

	cat := catalog.New(snaps, blobs, &probe.FFProbe{Path: cfg.FFProbePath}, slog.Default())
	defer cat.Close()
	if err := cat.Load(cmd.Context()); err != nil {
		return err
	}

	return fn(cat)
}

func openBlobStore(cfg *config.Config) (blobstore.BlobStore, error) {
	switch cfg.StorageBackend {
	case config.BackendLocal:
		return blobstore.NewLocal(cfg.BlobPath, slog.Default())
	default:
		return blobstore.NewSQLite(cfg.BlobPath, slog.Default()), nil
	}
}
