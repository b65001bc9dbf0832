package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timetrack/internal/tracker"
	"github.com/Tiliavir/timetrack/internal/ui"
)

var resumeCmd = &cobra.Command{
	Use:     "resume",
	Aliases: []string{"continue"},
	Short:   "Resume tracking: record the end of a break",
	Args:    cobra.NoArgs,
	RunE:    runResume,
}

func runResume(cmd *cobra.Command, args []string) error {
	s, _ := openStore()
	defer s.Close()

	c, err := tracker.New(s).EndBreak()
	if err != nil {
		fail(err)
	}
	fmt.Println(ui.Success(c))
	return nil
}
