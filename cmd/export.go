package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timetrack/internal/model"
	"github.com/Tiliavir/timetrack/internal/timecalc"
)

var (
	exportFormat string
	exportAll    bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export raw events to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "Export the whole log instead of the current week")
}

// exportedEvent is the JSON shape of one event.
type exportedEvent struct {
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}

func runExport(cmd *cobra.Command, args []string) error {
	now := time.Now()

	s, _ := openStore()
	defer s.Close()

	var events []model.Event
	var err error
	if exportAll {
		events, err = s.AllEvents()
	} else {
		events, err = s.EventsBetween(timecalc.WeekStart(now, 0), timecalc.NextMidnight(now))
	}
	if err != nil {
		fail(err)
	}

	switch exportFormat {
	case "json":
		exported := make([]exportedEvent, 0, len(events))
		for _, ev := range events {
			exported = append(exported, exportedEvent{Kind: string(ev.Kind), Timestamp: ev.Time})
		}
		data, err := json.MarshalIndent(exported, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "error encoding JSON:", err)
			os.Exit(2)
		}
		fmt.Println(string(data))
	default: // csv
		fmt.Println("kind,timestamp")
		for _, ev := range events {
			fmt.Printf("%s,%s\n", ev.Kind, ev.Time.Format(time.RFC3339))
		}
	}

	return nil
}
