package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cuebank/internal/catalog"
	"cuebank/internal/config"
)

func newImportCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var folderID string
	var title string

	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import audio files into the catalog",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("at least one file is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if title != "" && len(args) > 1 {
				return errors.New("--title only applies to a single file")
			}
			return withCatalog(cfg, cmd, func(cat *catalog.Catalog) error {
				for _, path := range args {
					data, err := os.ReadFile(path)
					if err != nil {
						return err
					}
					track, err := cat.CreateTrack(cmd.Context(), data, filepath.Base(path), folderID)
					if err != nil {
						return err
					}
					if title != "" {
						cat.RenameTrack(cmd.Context(), track.ID, title)
						track.Title = title
					}
					if *jsonOutput {
						if err := writeJSON(track); err != nil {
							return err
						}
						continue
					}
					if err := writePlain("%s\n", formatTrackLine(*track)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&folderID, "folder", "f", "", "destination folder id (default: library root)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "display title (default: tag or filename)")

	return cmd
}
