package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cuebank/internal/catalog"
	"cuebank/internal/config"
)

func newRenameCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <track-id> <title>",
		Short: "Rename a track",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("track id and title are required")
			}
			if args[1] == "" {
				return errors.New("title must not be empty")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cfg, cmd, func(cat *catalog.Catalog) error {
				if !cat.RenameTrack(cmd.Context(), args[0], args[1]) {
					return fmt.Errorf("unknown track %s", args[0])
				}
				return reportTrack(cat, args[0], jsonOutput)
			})
		},
	}
	return cmd
}

func newMoveCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <track-id> [folder-id]",
		Short: "Move a track into a folder, or to the root when no folder is given",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("track id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			folderID := ""
			if len(args) > 1 {
				folderID = args[1]
			}
			return withCatalog(cfg, cmd, func(cat *catalog.Catalog) error {
				if !cat.MoveTrack(cmd.Context(), args[0], folderID) {
					return fmt.Errorf("cannot move track %s to %q", args[0], folderID)
				}
				return reportTrack(cat, args[0], jsonOutput)
			})
		},
	}
	return cmd
}

func newFolderCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	folderCmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage folders",
	}

	var parentID string
	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a folder",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("folder name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cfg, cmd, func(cat *catalog.Catalog) error {
				folder, err := cat.CreateFolder(cmd.Context(), args[0], parentID)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(folder)
				}
				return writePlain("%s\n", formatFolderLine(*folder))
			})
		},
	}
	createCmd.Flags().StringVarP(&parentID, "parent", "p", "", "parent folder id (default: library root)")

	renameCmd := &cobra.Command{
		Use:   "rename <folder-id> <name>",
		Short: "Rename a folder",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("folder id and name are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cfg, cmd, func(cat *catalog.Catalog) error {
				if !cat.RenameFolder(cmd.Context(), args[0], args[1]) {
					return fmt.Errorf("cannot rename folder %s", args[0])
				}
				folder, _ := cat.Folder(args[0])
				if *jsonOutput {
					return writeJSON(folder)
				}
				return writePlain("%s\n", formatFolderLine(folder))
			})
		},
	}

	folderCmd.AddCommand(createCmd, renameCmd)
	return folderCmd
}

func newProjectCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project <name>",
		Short: "Create a top-level project",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("project name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cfg, cmd, func(cat *catalog.Catalog) error {
				project, err := cat.CreateProject(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(project)
				}
				return writePlain("%s\n", formatFolderLine(*project))
			})
		},
	}
	return cmd
}

func reportTrack(cat *catalog.Catalog, id string, jsonOutput *bool) error {
	track, ok := cat.Track(id)
	if !ok {
		return fmt.Errorf("unknown track %s", id)
	}
	if *jsonOutput {
		return writeJSON(track)
	}
	return writePlain("%s\n", formatTrackLine(track))
}
