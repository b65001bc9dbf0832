package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timetrack/internal/report"
	"github.com/Tiliavir/timetrack/internal/ui"
)

var weekOffset int

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show worked time for a week against the quota",
	Args:  cobra.NoArgs,
	RunE:  runWeek,
}

func init() {
	weekCmd.Flags().IntVar(&weekOffset, "offset", 0, "Week to report on (0 = current, -1 = last week, …)")
}

func runWeek(cmd *cobra.Command, args []string) error {
	if weekOffset > 0 {
		fmt.Fprintln(os.Stderr, "future weeks have no events to report on")
		os.Exit(1)
	}

	s, cfg := openStore()
	defer s.Close()

	r, err := report.Week(s, weekOffset, time.Now(), cfg.Quota())
	if err != nil {
		fail(err)
	}
	fmt.Print(ui.RenderWeek(r))
	return nil
}
