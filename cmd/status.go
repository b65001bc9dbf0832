package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timetrack/internal/model"
	"github.com/Tiliavir/timetrack/internal/timecalc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current tracking state",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	now := time.Now()

	s, _ := openStore()
	defer s.Close()

	last, err := s.LastEvent()
	if err != nil {
		fail(err)
	}
	if last == nil {
		fmt.Println("No events recorded yet. Start your day with `timetrack morning`.")
		return nil
	}

	since := timecalc.FormatDuration(now.Sub(last.Time))
	switch last.Kind {
	case model.Arrive, model.Resume:
		fmt.Printf("Working since %s (%s).\n", last.Time.Format("15:04"), since)
	case model.Break:
		fmt.Printf("On a break since %s (%s).\n", last.Time.Format("15:04"), since)
	case model.Leave:
		fmt.Printf("Left at %s on %s.\n", last.Time.Format("15:04"), last.Time.Format("2006-01-02"))
	}
	return nil
}
