package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timetrack/internal/report"
	"github.com/Tiliavir/timetrack/internal/ui"
)

var dayDate string

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Show worked time for a single day",
	Args:  cobra.NoArgs,
	RunE:  runDay,
}

func init() {
	dayCmd.Flags().StringVar(&dayDate, "date", "", "Day to report on (YYYY-MM-DD, default today)")
}

// parseDateFlag parses a --date value in local time; an empty value means
// fallback.
func parseDateFlag(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return parsed, nil
}

func runDay(cmd *cobra.Command, args []string) error {
	now := time.Now()

	date, err := parseDateFlag(dayDate, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	s, _ := openStore()
	defer s.Close()

	r, err := report.Day(s, date, now)
	if err != nil {
		fail(err)
	}
	fmt.Print(ui.RenderDay(r))
	return nil
}
