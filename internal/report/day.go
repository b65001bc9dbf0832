// Package report derives day and week summaries from the event log. All
// queries are read-only; reports are computed on demand and never persisted.
package report

import (
	"fmt"
	"time"

	"github.com/Tiliavir/timetrack/internal/model"
	"github.com/Tiliavir/timetrack/internal/timecalc"
)

// EventLog is the read-only view of the store used by the aggregators.
type EventLog interface {
	FirstArrivalBetween(from, to time.Time) (*model.Event, error)
	EventsBetween(from, to time.Time) ([]model.Event, error)
}

// NoArrivalError reports a day without a recorded arrival. The week
// aggregator downgrades it to an absent row; everywhere else it is a
// user-visible failure.
type NoArrivalError struct {
	Date time.Time
}

func (e *NoArrivalError) Error() string {
	return fmt.Sprintf("no arrival recorded on %s", e.Date.Format("2006-01-02"))
}

// InconsistentSequenceError reports an event that cannot legally appear at
// its position in a day's log. It indicates a corrupted or concurrently
// modified log, never a user mistake, and is always fatal.
type InconsistentSequenceError struct {
	Event model.Event
	Open  bool // whether a work interval was open when the event was seen
}

func (e *InconsistentSequenceError) Error() string {
	position := "outside a work interval"
	if e.Open {
		position = "inside a work interval"
	}
	return fmt.Sprintf("inconsistent event log: %s at %s %s",
		e.Event.Kind, e.Event.Time.Format("2006-01-02 15:04:05"), position)
}

// DayReport summarizes one day of recorded work.
type DayReport struct {
	Date    time.Time // midnight of the reported day
	Events  []model.Event
	Present bool // an interval was still open at now
	Worked  time.Duration
}

// Day replays the events of the calendar day containing date into work
// intervals and sums the worked duration. An interval still open at the end
// of the replay contributes up to now and marks the user as present.
func Day(log EventLog, date, now time.Time) (DayReport, error) {
	dayStart := timecalc.StartOfDay(date)
	dayEnd := timecalc.NextMidnight(date)

	arrival, err := log.FirstArrivalBetween(dayStart, dayEnd)
	if err != nil {
		return DayReport{}, err
	}
	if arrival == nil {
		return DayReport{}, &NoArrivalError{Date: dayStart}
	}

	events, err := log.EventsBetween(arrival.Time, dayEnd)
	if err != nil {
		return DayReport{}, err
	}

	r := DayReport{Date: dayStart, Events: events}
	var openStart time.Time
	open := false
	for _, ev := range events {
		switch {
		case !open && ev.Kind.Opens():
			openStart = ev.Time
			open = true
		case open && ev.Kind.Closes():
			r.Worked += ev.Time.Sub(openStart)
			open = false
		default:
			return DayReport{}, &InconsistentSequenceError{Event: ev, Open: open}
		}
	}
	if open {
		r.Worked += now.Sub(openStart)
		r.Present = true
	}
	return r, nil
}
