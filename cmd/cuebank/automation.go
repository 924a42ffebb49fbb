package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"cuebank/internal/catalog"
	"cuebank/internal/config"
	"cuebank/internal/envelope"
)

func newAutomationCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	autoCmd := &cobra.Command{
		Use:     "automation",
		Aliases: []string{"auto"},
		Short:   "Edit a track's automation envelope",
	}

	var at float64
	var atSet bool
	showCmd := &cobra.Command{
		Use:   "show <track-id>",
		Short: "Show automation points, or the curve value at --at",
		Args:  requireOneID("track id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			atSet = cmd.Flags().Changed("at")
			return withCatalog(cfg, cmd, func(cat *catalog.Catalog) error {
				track, ok := cat.Track(args[0])
				if !ok {
					return fmt.Errorf("unknown track %s", args[0])
				}
				if atSet {
					value := envelope.ValueAt(track.Automation, at)
					if *jsonOutput {
						return writeJSON(map[string]float64{"time": at, "value": value})
					}
					return writePlain("%.2f\n", value)
				}
				points := append(track.Automation[:0:0], track.Automation...)
				sort.SliceStable(points, func(i, j int) bool { return points[i].Time < points[j].Time })
				if *jsonOutput {
					return writeJSON(points)
				}
				for _, p := range points {
					if err := writePlain("%s  t=%-8.2f v=%.2f\n", p.ID, p.Time, p.Value); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	showCmd.Flags().Float64Var(&at, "at", 0, "evaluate the envelope at this time")

	addCmd := &cobra.Command{
		Use:   "add <track-id> <time> [value]",
		Short: "Insert an automation point; without a value the current curve value is used",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("track id and time are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			pointTime, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid time %q", args[1])
			}
			return withCatalog(cfg, cmd, func(cat *catalog.Catalog) error {
				track, ok := cat.Track(args[0])
				if !ok {
					return fmt.Errorf("unknown track %s", args[0])
				}
				points := track.Automation
				var inserted any
				if len(args) > 2 {
					value, err := strconv.ParseFloat(args[2], 64)
					if err != nil {
						return fmt.Errorf("invalid value %q", args[2])
					}
					points, inserted = envelope.InsertPoint(points, pointTime, value, track.Duration)
				} else {
					points, inserted = envelope.InsertPointAtTime(points, pointTime, track.Duration)
				}
				if !cat.UpdateAutomation(cmd.Context(), track.ID, points) {
					return fmt.Errorf("unknown track %s", args[0])
				}
				if *jsonOutput {
					return writeJSON(inserted)
				}
				return writePlain("%d points\n", len(points))
			})
		},
	}

	moveCmd := &cobra.Command{
		Use:   "move <track-id> <point-id> <time> <value>",
		Short: "Move an automation point",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 4 {
				return errors.New("track id, point id, time, and value are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			pointTime, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid time %q", args[2])
			}
			value, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q", args[3])
			}
			return withCatalog(cfg, cmd, func(cat *catalog.Catalog) error {
				track, ok := cat.Track(args[0])
				if !ok {
					return fmt.Errorf("unknown track %s", args[0])
				}
				points := envelope.MovePoint(track.Automation, args[1], pointTime, value, track.Duration)
				if !cat.UpdateAutomation(cmd.Context(), track.ID, points) {
					return fmt.Errorf("unknown track %s", args[0])
				}
				return writePlain("%d points\n", len(points))
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <track-id> <point-id>",
		Short: "Delete an automation point",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("track id and point id are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cfg, cmd, func(cat *catalog.Catalog) error {
				track, ok := cat.Track(args[0])
				if !ok {
					return fmt.Errorf("unknown track %s", args[0])
				}
				points := envelope.DeletePoint(track.Automation, args[1])
				if !cat.UpdateAutomation(cmd.Context(), track.ID, points) {
					return fmt.Errorf("unknown track %s", args[0])
				}
				return writePlain("%d points\n", len(points))
			})
		},
	}

	autoCmd.AddCommand(showCmd, addCmd, moveCmd, deleteCmd)
	return autoCmd
}
