package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"cuebank/internal/catalog"
	"cuebank/internal/config"
	"cuebank/internal/models"
)

// exportDocument is the YAML layout of a catalog export. Audio payloads are
// not included; the export is metadata only.
type exportDocument struct {
	Folders []models.Folder `yaml:"folders"`
	Tracks  []models.Track  `yaml:"tracks"`
}

func newExportCmd(cfg *config.Config) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog metadata as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cfg, cmd, func(cat *catalog.Catalog) error {
				doc := exportDocument{Folders: cat.Folders(), Tracks: cat.AllTracks()}

				w := os.Stdout
				if outputPath != "" {
					f, err := os.Create(outputPath)
					if err != nil {
						return err
					}
					defer f.Close()
					w = f
				}
				enc := yaml.NewEncoder(w)
				defer enc.Close()
				return enc.Encode(doc)
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")
	return cmd
}
