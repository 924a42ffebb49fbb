package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"cuebank/internal/catalog"
	"cuebank/internal/config"
	"cuebank/internal/models"
)

func newMarkerCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	markerCmd := &cobra.Command{
		Use:   "marker",
		Short: "Edit a track's time markers",
	}

	var name string
	var playbackStart, loopEnd bool
	addCmd := &cobra.Command{
		Use:   "add <track-id> <time>",
		Short: "Add a marker",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("track id and time are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			markerTime, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid time %q", args[1])
			}
			return withCatalog(cfg, cmd, func(cat *catalog.Catalog) error {
				track, ok := cat.Track(args[0])
				if !ok {
					return fmt.Errorf("unknown track %s", args[0])
				}
				marker := models.Marker{
					ID:              uuid.NewString(),
					Time:            markerTime,
					Name:            name,
					IsPlaybackStart: playbackStart,
					IsLoopEnd:       loopEnd,
				}
				markers := append(append([]models.Marker{}, track.Markers...), marker)
				if !cat.UpdateMarkers(cmd.Context(), track.ID, markers) {
					return fmt.Errorf("unknown track %s", args[0])
				}
				if *jsonOutput {
					return writeJSON(marker)
				}
				return writePlain("%s\n", marker.ID)
			})
		},
	}
	addCmd.Flags().StringVarP(&name, "name", "n", "", "marker name")
	addCmd.Flags().BoolVar(&playbackStart, "playback-start", false, "mark as playback start")
	addCmd.Flags().BoolVar(&loopEnd, "loop-end", false, "mark as loop end")

	listCmd := &cobra.Command{
		Use:   "list <track-id>",
		Short: "List markers sorted by time",
		Args:  requireOneID("track id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cfg, cmd, func(cat *catalog.Catalog) error {
				track, ok := cat.Track(args[0])
				if !ok {
					return fmt.Errorf("unknown track %s", args[0])
				}
				markers := append([]models.Marker{}, track.Markers...)
				sort.SliceStable(markers, func(i, j int) bool { return markers[i].Time < markers[j].Time })
				if *jsonOutput {
					return writeJSON(markers)
				}
				for _, m := range markers {
					flags := ""
					if m.IsPlaybackStart {
						flags += " [start]"
					}
					if m.IsLoopEnd {
						flags += " [loop-end]"
					}
					if err := writePlain("%s  t=%-8.2f %s%s\n", m.ID, m.Time, m.Name, flags); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <track-id> <marker-id>",
		Short: "Delete a marker",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("track id and marker id are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cfg, cmd, func(cat *catalog.Catalog) error {
				track, ok := cat.Track(args[0])
				if !ok {
					return fmt.Errorf("unknown track %s", args[0])
				}
				markers := make([]models.Marker, 0, len(track.Markers))
				for _, m := range track.Markers {
					if m.ID != args[1] {
						markers = append(markers, m)
					}
				}
				if !cat.UpdateMarkers(cmd.Context(), track.ID, markers) {
					return fmt.Errorf("unknown track %s", args[0])
				}
				return writePlain("%d markers\n", len(markers))
			})
		},
	}

	markerCmd.AddCommand(addCmd, listCmd, deleteCmd)
	return markerCmd
}
