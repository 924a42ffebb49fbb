package main

import (
	"github.com/spf13/cobra"

	"cuebank/internal/catalog"
	"cuebank/internal/config"
)

func newInfoCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show library location and catalog counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cfg, cmd, func(cat *catalog.Catalog) error {
				trashed := 0
				for _, track := range cat.AllTracks() {
					if track.InTrash() {
						trashed++
					}
				}
				summary := struct {
					LibraryDir     string `json:"library_dir"`
					StorageBackend string `json:"storage_backend"`
					Tracks         int    `json:"tracks"`
					TracksInTrash  int    `json:"tracks_in_trash"`
					Folders        int    `json:"folders"`
				}{
					LibraryDir:     cfg.LibraryDir,
					StorageBackend: cfg.StorageBackend,
					Tracks:         len(cat.AllTracks()),
					TracksInTrash:  trashed,
					Folders:        len(cat.Folders()),
				}
				if *jsonOutput {
					return writeJSON(summary)
				}
				if err := writePlain("library: %s (%s blobs)\n", summary.LibraryDir, summary.StorageBackend); err != nil {
					return err
				}
				return writePlain("tracks: %d (%d in trash), folders: %d\n", summary.Tracks, summary.TracksInTrash, summary.Folders)
			})
		},
	}
	return cmd
}
