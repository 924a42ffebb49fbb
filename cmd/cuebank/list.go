package main

import (
	"github.com/spf13/cobra"

	"cuebank/internal/catalog"
	"cuebank/internal/config"
	"cuebank/internal/models"
)

func newListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog contents",
	}

	tracksCmd := &cobra.Command{
		Use:   "tracks",
		Short: "List all tracks in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cfg, cmd, func(cat *catalog.Catalog) error {
				tracks := cat.AllTracks()
				if *jsonOutput {
					return writeJSON(tracks)
				}
				for _, track := range tracks {
					if err := writePlain("%s\n", formatTrackLine(track)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	foldersCmd := &cobra.Command{
		Use:   "folders",
		Short: "List all folders and projects in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cfg, cmd, func(cat *catalog.Catalog) error {
				folders := cat.Folders()
				if *jsonOutput {
					return writeJSON(folders)
				}
				for _, folder := range folders {
					if err := writePlain("%s\n", formatFolderLine(folder)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	trashCmd := &cobra.Command{
		Use:   "trash",
		Short: "List trashed tracks and folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cfg, cmd, func(cat *catalog.Catalog) error {
				var tracks []models.Track
				for _, track := range cat.AllTracks() {
					if track.InTrash() {
						tracks = append(tracks, track)
					}
				}
				var folders []models.Folder
				for _, folder := range cat.Folders() {
					if folder.InTrash() {
						folders = append(folders, folder)
					}
				}
				if *jsonOutput {
					return writeJSON(struct {
						Tracks  []models.Track  `json:"tracks"`
						Folders []models.Folder `json:"folders"`
					}{tracks, folders})
				}
				for _, folder := range folders {
					if err := writePlain("%s\n", formatFolderLine(folder)); err != nil {
						return err
					}
				}
				for _, track := range tracks {
					if err := writePlain("%s\n", formatTrackLine(track)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.AddCommand(tracksCmd, foldersCmd, trashCmd)
	return cmd
}
