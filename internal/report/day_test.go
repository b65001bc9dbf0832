package report_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Tiliavir/timetrack/internal/model"
	"github.com/Tiliavir/timetrack/internal/report"
	"github.com/Tiliavir/timetrack/internal/store"
)

// monday is the base day for the report tests (2026-02-23, a Monday).
var monday = time.Date(2026, 2, 23, 0, 0, 0, 0, time.Local)

func openTestLog(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "timetrack.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// record appends without transition validation, so tests can build both
// well-formed and corrupted logs.
func record(t *testing.T, s *store.Store, kind model.Kind, ts time.Time) {
	t.Helper()
	if err := s.Append(model.Event{Kind: kind, Time: ts}, nil); err != nil {
		t.Fatalf("Append(%s, %v): %v", kind, ts, err)
	}
}

func at(day time.Time, hour, min int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func TestDayClosedDay(t *testing.T) {
	s := openTestLog(t)
	record(t, s, model.Arrive, at(monday, 8, 0))
	record(t, s, model.Break, at(monday, 12, 0))
	record(t, s, model.Resume, at(monday, 13, 0))
	record(t, s, model.Leave, at(monday, 17, 0))

	r, err := report.Day(s, monday, at(monday, 23, 0))
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	if r.Worked != 8*time.Hour {
		t.Errorf("Worked = %v, want 8h", r.Worked)
	}
	if r.Present {
		t.Error("Present = true, want false for a closed day")
	}
	if len(r.Events) != 4 {
		t.Errorf("Events = %d, want 4", len(r.Events))
	}
	if !r.Date.Equal(monday) {
		t.Errorf("Date = %v, want %v", r.Date, monday)
	}
}

func TestDayOpenInterval(t *testing.T) {
	s := openTestLog(t)
	record(t, s, model.Arrive, at(monday, 8, 0))

	r, err := report.Day(s, monday, at(monday, 10, 0))
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	if r.Worked != 2*time.Hour {
		t.Errorf("Worked = %v, want 2h", r.Worked)
	}
	if !r.Present {
		t.Error("Present = false, want true for an open interval")
	}

	// The open-interval contribution grows with the clock.
	later, err := report.Day(s, monday, at(monday, 10, 30))
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	if later.Worked != 2*time.Hour+30*time.Minute {
		t.Errorf("Worked at later now = %v, want 2h30m", later.Worked)
	}
}

func TestDayNoArrival(t *testing.T) {
	s := openTestLog(t)

	_, err := report.Day(s, monday, at(monday, 10, 0))
	var noArrival *report.NoArrivalError
	if !errors.As(err, &noArrival) {
		t.Fatalf("Day on empty log = %v, want *NoArrivalError", err)
	}
	if !noArrival.Date.Equal(monday) {
		t.Errorf("NoArrivalError date = %v, want %v", noArrival.Date, monday)
	}
}

func TestDayBreakCycles(t *testing.T) {
	s := openTestLog(t)
	record(t, s, model.Arrive, at(monday, 8, 0))
	record(t, s, model.Break, at(monday, 9, 0))
	record(t, s, model.Resume, at(monday, 9, 15))
	record(t, s, model.Break, at(monday, 12, 0))
	record(t, s, model.Resume, at(monday, 12, 45))
	record(t, s, model.Break, at(monday, 15, 0))
	record(t, s, model.Resume, at(monday, 15, 10))
	record(t, s, model.Leave, at(monday, 17, 0))

	r, err := report.Day(s, monday, at(monday, 23, 0))
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	// 9h span minus 15m + 45m + 10m of breaks.
	want := 9*time.Hour - 70*time.Minute
	if r.Worked != want {
		t.Errorf("Worked = %v, want %v", r.Worked, want)
	}
	if r.Present {
		t.Error("Present = true, want false")
	}
}

func TestDayUnpairedBreak(t *testing.T) {
	s := openTestLog(t)
	record(t, s, model.Arrive, at(monday, 8, 0))
	record(t, s, model.Break, at(monday, 12, 0))
	record(t, s, model.Leave, at(monday, 17, 0))

	_, err := report.Day(s, monday, at(monday, 23, 0))
	var inconsistent *report.InconsistentSequenceError
	if !errors.As(err, &inconsistent) {
		t.Fatalf("Day with unpaired break = %v, want *InconsistentSequenceError", err)
	}
	if inconsistent.Event.Kind != model.Leave {
		t.Errorf("offending event = %s, want leave", inconsistent.Event.Kind)
	}
}

func TestDayDoubleArrive(t *testing.T) {
	s := openTestLog(t)
	record(t, s, model.Arrive, at(monday, 8, 0))
	record(t, s, model.Arrive, at(monday, 9, 0))

	_, err := report.Day(s, monday, at(monday, 10, 0))
	var inconsistent *report.InconsistentSequenceError
	if !errors.As(err, &inconsistent) {
		t.Fatalf("Day with double arrive = %v, want *InconsistentSequenceError", err)
	}
	if !inconsistent.Open {
		t.Error("expected the offending event inside an open interval")
	}
}

func TestDayIgnoresEventsBeforeArrival(t *testing.T) {
	s := openTestLog(t)
	// Leftover leave from an overnight shift, before today's arrival.
	record(t, s, model.Leave, at(monday, 0, 30))
	record(t, s, model.Arrive, at(monday, 8, 0))

	r, err := report.Day(s, monday, at(monday, 10, 0))
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	if r.Worked != 2*time.Hour {
		t.Errorf("Worked = %v, want 2h", r.Worked)
	}
	if len(r.Events) != 1 {
		t.Errorf("Events = %d, want 1 (pre-arrival leave excluded)", len(r.Events))
	}
}
