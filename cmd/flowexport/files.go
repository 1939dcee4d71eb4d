package main

import (
	"github.com/jgivc/flowexport/internal/adapter/sink"
	"github.com/jgivc/flowexport/internal/app"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func filesCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "files",
		Short: "Exports all sessions into a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if outputDir != "" {
				cfg.OutputDir = outputDir
			}

			a := app.New(cfg)

			return a.Run(cmd.Context(), sink.NewDirSink(afero.NewOsFs(), cfg.OutputDir))
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "d", "", "Output directory name (default current directory)")

	return cmd
}
