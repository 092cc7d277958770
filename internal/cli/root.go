// Package cli implements the salesboard command tree.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/salesboard/internal/config"
	"github.com/rshade/salesboard/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// app carries the state resolved once per invocation and shared by subcommands.
type app struct {
	lookupEnv func(string) (string, bool)
	cfg       *config.Config
	cfgPath   string
	base      zerolog.Logger
	logResult *logging.LogPathResult
}

// NewRootCmd creates the root Cobra command for the salesboard CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit env lookup for testability.
func NewRootCmdWithEnv(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	a := &app{lookupEnv: lookupEnv, cfg: config.New(), base: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:          "salesboard",
		Short:        "Sales KPI cards for the terminal",
		Long:         "salesboard: Format sales metrics and lay them out as KPI, comparison and progress cards",
		Version:      ver,
		Example:      rootCmdExample,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configFlag, _ := cmd.Flags().GetString("config")
			cfg, path, err := config.Discover(configFlag, a.lookupEnv)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.cfgPath = path

			result := setupLogging(cmd, cfg)
			a.logResult = &result
			a.base = result.Logger
			if path != "" {
				logger.Debug().Ctx(cmd.Context()).Str("path", path).Msg("loaded configuration")
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, a.logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default ~/.salesboard/config.yaml)")
	cmd.AddCommand(
		newDashboardCmd(a),
		newFormatCmd(a),
		newCompareCmd(a),
		newProgressCmd(a),
		newVersionCmd(ver),
	)

	return cmd
}

const rootCmdExample = `  # Render the dashboard for an order export
  salesboard dashboard --data orders.csv

  # Combine exports, pin the reporting day and use four columns
  salesboard dashboard --data 2026-09.csv --data 2026-10.csv --as-of 2026-10-15 --columns 4

  # Browse the dashboard interactively
  salesboard dashboard --data orders.csv --interactive

  # Format a single value
  salesboard format 1530000 --kind compact

  # Compare two periods where lower is better
  salesboard compare 820 1000 --reverse-good

  # Check progress toward a target
  salesboard progress 42000 50000`
