package main

import (
	"fmt"
	"os"

	"github.com/jgivc/flowexport/internal/adapter/sink"
	"github.com/jgivc/flowexport/internal/app"
	"github.com/spf13/cobra"
)

func zipCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "zip",
		Short: "Exports all sessions into a zip archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			out, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("cannot create archive file: %w", err)
			}

			a := app.New(cfg)

			return a.Run(cmd.Context(), sink.NewZipSink(out))
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "Output archive name")
	_ = cmd.MarkFlagRequired("output-file")

	return cmd
}
