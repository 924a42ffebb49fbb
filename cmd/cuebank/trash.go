package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cuebank/internal/catalog"
	"cuebank/internal/config"
)

func newTrashCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	trashCmd := &cobra.Command{
		Use:   "trash",
		Short: "Soft-delete tracks and folders, or empty the trash",
	}

	trackCmd := &cobra.Command{
		Use:   "track <track-id>",
		Short: "Move a track to the trash",
		Args:  requireOneID("track id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cfg, cmd, func(cat *catalog.Catalog) error {
				if !cat.SoftDeleteTrack(cmd.Context(), args[0]) {
					return fmt.Errorf("unknown track %s", args[0])
				}
				return reportTrack(cat, args[0], jsonOutput)
			})
		},
	}

	folderCmd := &cobra.Command{
		Use:   "folder <folder-id>",
		Short: "Move a folder to the trash",
		Args:  requireOneID("folder id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cfg, cmd, func(cat *catalog.Catalog) error {
				if !cat.SoftDeleteFolder(cmd.Context(), args[0]) {
					return fmt.Errorf("cannot trash folder %s", args[0])
				}
				folder, _ := cat.Folder(args[0])
				if *jsonOutput {
					return writeJSON(folder)
				}
				return writePlain("%s\n", formatFolderLine(folder))
			})
		},
	}

	emptyCmd := &cobra.Command{
		Use:   "empty",
		Short: "Permanently purge everything in the trash",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cfg, cmd, func(cat *catalog.Catalog) error {
				result, err := cat.PurgeTrash(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(result)
				}
				return writePlain("purged %d tracks and %d folders\n", result.TracksPurged, result.FoldersPurged)
			})
		},
	}

	trashCmd.AddCommand(trackCmd, folderCmd, emptyCmd)
	return trashCmd
}

func newRecoverCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	recoverCmd := &cobra.Command{
		Use:   "recover",
		Short: "Recover tracks and folders from the trash",
	}

	trackCmd := &cobra.Command{
		Use:   "track <track-id>",
		Short: "Recover a trashed track to the library root",
		Args:  requireOneID("track id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cfg, cmd, func(cat *catalog.Catalog) error {
				if !cat.RecoverTrack(cmd.Context(), args[0]) {
					return fmt.Errorf("track %s is not in the trash", args[0])
				}
				return reportTrack(cat, args[0], jsonOutput)
			})
		},
	}

	folderCmd := &cobra.Command{
		Use:   "folder <folder-id>",
		Short: "Recover a trashed folder to its previous parent",
		Args:  requireOneID("folder id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cfg, cmd, func(cat *catalog.Catalog) error {
				if !cat.RecoverFolder(cmd.Context(), args[0]) {
					return fmt.Errorf("folder %s is not in the trash", args[0])
				}
				folder, _ := cat.Folder(args[0])
				if *jsonOutput {
					return writeJSON(folder)
				}
				return writePlain("%s\n", formatFolderLine(folder))
			})
		},
	}

	recoverCmd.AddCommand(trackCmd, folderCmd)
	return recoverCmd
}

func requireOneID(what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return errors.New(what + " is required")
		}
		return nil
	}
}
