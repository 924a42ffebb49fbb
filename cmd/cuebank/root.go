package main

import (
	"github.com/spf13/cobra"

	"cuebank/internal/config"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var jsonOutput bool
	var logLevel string

	cmd := &cobra.Command{
		Use:   "cuebank",
		Short: "Cuebank is a local media catalog for theatrical sound cues",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return configureLoggerForCLI(logLevel, cfg.LogLevel)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Version = version
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newImportCmd(cfg, &jsonOutput),
		newListCmd(cfg, &jsonOutput),
		newRenameCmd(cfg, &jsonOutput),
		newMoveCmd(cfg, &jsonOutput),
		newFolderCmd(cfg, &jsonOutput),
		newProjectCmd(cfg, &jsonOutput),
		newTrashCmd(cfg, &jsonOutput),
		newRecoverCmd(cfg, &jsonOutput),
		newAutomationCmd(cfg, &jsonOutput),
		newMarkerCmd(cfg, &jsonOutput),
		newAudioCmd(cfg),
		newExportCmd(cfg),
		newInfoCmd(cfg, &jsonOutput),
	)

	return cmd
}
