package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timetrack/internal/config"
	"github.com/Tiliavir/timetrack/internal/report"
	"github.com/Tiliavir/timetrack/internal/store"
	"github.com/Tiliavir/timetrack/internal/tracker"
	"github.com/Tiliavir/timetrack/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "timetrack",
	Short: "timetrack – a personal work-hours tracker",
	Long: `timetrack records arrival, break and departure events and reconstructs
worked hours per day and week against a configurable quota.
All data is stored in a single SQLite database in ~/.timetrack/.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(morningCmd)
	rootCmd.AddCommand(breakCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(closingCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(exportCmd)
}

// openStore loads the configuration and opens the event log, exiting on
// failure.
func openStore() (*store.Store, config.Config) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	path, err := cfg.DatabasePath()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	s, err := store.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return s, cfg
}

// fail prints err and exits. State-rule violations and missing arrivals are
// user errors (exit 1); everything else is a storage or integrity fault
// (exit 2).
func fail(err error) {
	fmt.Fprintln(os.Stderr, ui.Failure(err))

	var stateErr *tracker.StateError
	var noArrival *report.NoArrivalError
	if errors.As(err, &stateErr) || errors.As(err, &noArrival) {
		os.Exit(1)
	}
	os.Exit(2)
}
