package main

import (
	"fmt"
	"os"

	"github.com/jgivc/flowexport/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgPath   string
	email     string
	password  string
	format    string
	startDate string
	endDate   string
	verbosity int
	keepGoing bool
)

var rootCmd = &cobra.Command{
	Use:           "flowexport",
	Short:         "Exports training sessions from Polar Flow in various formats",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = cmd.Help()

		return fmt.Errorf("missing mode, expected one of: files, zip")
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgPath, "config", "c", "", "Path to config file")
	pf.StringVarP(&email, "email", "u", "", "Registration email")
	pf.StringVarP(&password, "password", "p", "", "Registration password")
	pf.StringVarP(&format, "format", "f", config.DefaultFormat, "Export format: tcx, gpx or csv")
	pf.StringVarP(&startDate, "start", "s", config.DefaultStartDate, "Start date for export, format DD.MM.YYYY")
	pf.StringVarP(&endDate, "end", "e", config.DefaultEndDate, "End date for export, format DD.MM.YYYY")
	pf.CountVarP(&verbosity, "verbose", "v", "Sets the level of verbosity")
	pf.BoolVar(&keepGoing, "keep-going", false, "Log failed downloads and continue instead of aborting")

	rootCmd.AddCommand(filesCmd(), zipCmd())
}

// loadConfig merges the config file, environment and command line flags.
// Explicitly set flags win over everything else.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	pf := rootCmd.PersistentFlags()
	if pf.Changed("email") {
		cfg.Email = email
	}
	if pf.Changed("password") {
		cfg.Password = password
	}
	if pf.Changed("format") {
		cfg.Format = format
	}
	if pf.Changed("start") {
		cfg.StartDate = startDate
	}
	if pf.Changed("end") {
		cfg.EndDate = endDate
	}
	if pf.Changed("keep-going") {
		cfg.KeepGoing = keepGoing
	}
	cfg.Verbosity = verbosity

	if cfg.Email == "" || cfg.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	if _, err := config.ParseDay(cfg.StartDate); err != nil {
		return nil, err
	}
	if _, err := config.ParseDay(cfg.EndDate); err != nil {
		return nil, err
	}

	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
