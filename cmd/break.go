package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timetrack/internal/tracker"
	"github.com/Tiliavir/timetrack/internal/ui"
)

var breakCmd = &cobra.Command{
	Use:   "break",
	Short: "Suspend tracking: record the start of a break",
	Args:  cobra.NoArgs,
	RunE:  runBreak,
}

func runBreak(cmd *cobra.Command, args []string) error {
	s, _ := openStore()
	defer s.Close()

	c, err := tracker.New(s).StartBreak()
	if err != nil {
		fail(err)
	}
	fmt.Println(ui.Success(c))
	return nil
}
