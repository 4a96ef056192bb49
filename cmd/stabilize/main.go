// Package main is the entry point for the stabilize command.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/kutil/util"

	"github.com/dshills/stabilize/internal/app"
	"github.com/dshills/stabilize/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	util.Exit(run())
}

func run() int {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCommand() *cobra.Command {
	var opts app.Options
	var level string

	cmd := &cobra.Command{
		Use:   "stabilize",
		Short: "Promote a feature to accepted and remove its gates from the tests",
		Long: `stabilize moves a feature's entry from the active table to the accepted
table of the feature gate file, stamps it with the current version and
deletes every #![feature(...)] line naming it under the test directory.

Without --feature nothing is changed.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Feature == "" {
				return nil
			}
			if level != "" {
				opts.Verbosity = logging.ParseVerbosity(level)
			}
			opts.Stdin = cmd.InOrStdin()
			opts.Stdout = cmd.OutOrStdout()

			application, err := app.New(opts)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			return application.Run()
		},
	}

	flags := cmd.Flags()
	flags.CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (repeatable)")
	flags.StringVarP(&opts.Feature, "feature", "f", "", "Feature to stabilize")
	flags.StringVarP(&opts.Root, "root", "C", "", "Source tree to work in (overrides config)")
	flags.StringVarP(&opts.ConfigPath, "config", "c", "stabilize.toml", "Path to configuration file")
	flags.BoolVar(&opts.KeepGoing, "keep-going", false, "Continue the sweep past files that fail")
	flags.StringVar(&opts.ReportPath, "report", "", "Write the sweep report as JSON to this path")
	flags.StringVar(&opts.LogPath, "log", "", "Write logs to this file instead of stderr")
	flags.BoolVar(&opts.Confirm, "confirm", false, "Ask before each step")
	flags.StringVar(&level, "log-level", "", "Log level: quiet, error, warn, notice, info or debug (overrides -v)")

	return cmd
}
