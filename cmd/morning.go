package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timetrack/internal/tracker"
	"github.com/Tiliavir/timetrack/internal/ui"
)

var morningCmd = &cobra.Command{
	Use:   "morning",
	Short: "Start your day: record your arrival",
	Args:  cobra.NoArgs,
	RunE:  runMorning,
}

func runMorning(cmd *cobra.Command, args []string) error {
	s, _ := openStore()
	defer s.Close()

	c, err := tracker.New(s).StartDay()
	if err != nil {
		fail(err)
	}
	fmt.Println(ui.Success(c))
	return nil
}
