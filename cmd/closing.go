package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timetrack/internal/tracker"
	"github.com/Tiliavir/timetrack/internal/ui"
)

var closingCmd = &cobra.Command{
	Use:   "closing",
	Short: "End your day: record your departure",
	Args:  cobra.NoArgs,
	RunE:  runClosing,
}

func runClosing(cmd *cobra.Command, args []string) error {
	s, _ := openStore()
	defer s.Close()

	c, err := tracker.New(s).EndDay()
	if err != nil {
		fail(err)
	}
	fmt.Println(ui.Success(c))
	return nil
}
