package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cuebank/internal/catalog"
	"cuebank/internal/config"
)

func newAudioCmd(cfg *config.Config) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "audio <track-id>",
		Short: "Write a track's audio payload to a file or stdout",
		Args:  requireOneID("track id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cfg, cmd, func(cat *catalog.Catalog) error {
				data, ok := cat.OpenAudio(cmd.Context(), args[0])
				if !ok {
					return fmt.Errorf("no audio for track %s", args[0])
				}
				if outputPath == "" {
					_, err := os.Stdout.Write(data)
					return err
				}
				return os.WriteFile(outputPath, data, 0o644)
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")
	return cmd
}
