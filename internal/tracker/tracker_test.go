package tracker_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Tiliavir/timetrack/internal/model"
	"github.com/Tiliavir/timetrack/internal/store"
	"github.com/Tiliavir/timetrack/internal/tracker"
)

// newTestTracker returns a tracker over a fresh on-disk store with a clock
// that advances one minute per recorded event.
func newTestTracker(t *testing.T) (*tracker.Tracker, *store.Store) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "timetrack.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	clock := time.Date(2026, 2, 23, 8, 0, 0, 0, time.Local)
	tr := tracker.New(s)
	tr.Now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return tr, s
}

// seed drives the tracker through ops, failing the test on any rejection.
func seed(t *testing.T, tr *tracker.Tracker, ops ...func() (tracker.Confirmation, error)) {
	t.Helper()
	for _, op := range ops {
		if _, err := op(); err != nil {
			t.Fatalf("seeding state: %v", err)
		}
	}
}

func logLength(t *testing.T, s *store.Store) int {
	t.Helper()
	events, err := s.AllEvents()
	if err != nil {
		t.Fatalf("AllEvents: %v", err)
	}
	return len(events)
}

func TestTransitionTable(t *testing.T) {
	type outcome struct {
		kind model.Kind // appended kind on success
		err  error      // expected cause on rejection
	}

	tests := []struct {
		name  string
		setup func(tr *tracker.Tracker) []func() (tracker.Confirmation, error)
		want  map[string]outcome
	}{
		{
			name: "empty log",
			want: map[string]outcome{
				"StartDay":   {kind: model.Arrive},
				"StartBreak": {err: tracker.ErrNotWorking},
				"EndBreak":   {err: tracker.ErrNotBreaking},
				"EndDay":     {err: tracker.ErrNotWorking},
			},
		},
		{
			name: "after arrive",
			setup: func(tr *tracker.Tracker) []func() (tracker.Confirmation, error) {
				return []func() (tracker.Confirmation, error){tr.StartDay}
			},
			want: map[string]outcome{
				"StartDay":   {err: tracker.ErrAlreadyPresent},
				"StartBreak": {kind: model.Break},
				"EndBreak":   {err: tracker.ErrNotBreaking},
				"EndDay":     {kind: model.Leave},
			},
		},
		{
			name: "after break",
			setup: func(tr *tracker.Tracker) []func() (tracker.Confirmation, error) {
				return []func() (tracker.Confirmation, error){tr.StartDay, tr.StartBreak}
			},
			want: map[string]outcome{
				"StartDay":   {err: tracker.ErrAlreadyPresent},
				"StartBreak": {err: tracker.ErrNotWorking},
				"EndBreak":   {kind: model.Resume},
				"EndDay":     {err: tracker.ErrNotWorking},
			},
		},
		{
			name: "after resume",
			setup: func(tr *tracker.Tracker) []func() (tracker.Confirmation, error) {
				return []func() (tracker.Confirmation, error){tr.StartDay, tr.StartBreak, tr.EndBreak}
			},
			want: map[string]outcome{
				"StartDay":   {err: tracker.ErrAlreadyPresent},
				"StartBreak": {kind: model.Break},
				"EndBreak":   {err: tracker.ErrNotBreaking},
				"EndDay":     {kind: model.Leave},
			},
		},
		{
			name: "after leave",
			setup: func(tr *tracker.Tracker) []func() (tracker.Confirmation, error) {
				return []func() (tracker.Confirmation, error){tr.StartDay, tr.EndDay}
			},
			want: map[string]outcome{
				"StartDay":   {kind: model.Arrive},
				"StartBreak": {err: tracker.ErrNotWorking},
				"EndBreak":   {err: tracker.ErrNotBreaking},
				"EndDay":     {err: tracker.ErrNotWorking},
			},
		},
	}

	for _, tt := range tests {
		for op, want := range tt.want {
			t.Run(tt.name+"/"+op, func(t *testing.T) {
				tr, s := newTestTracker(t)
				if tt.setup != nil {
					seed(t, tr, tt.setup(tr)...)
				}
				before := logLength(t, s)

				ops := map[string]func() (tracker.Confirmation, error){
					"StartDay":   tr.StartDay,
					"StartBreak": tr.StartBreak,
					"EndBreak":   tr.EndBreak,
					"EndDay":     tr.EndDay,
				}
				c, err := ops[op]()

				if want.err != nil {
					if !errors.Is(err, want.err) {
						t.Fatalf("%s = %v, want cause %v", op, err, want.err)
					}
					if got := logLength(t, s); got != before {
						t.Errorf("rejected %s changed log length: %d -> %d", op, before, got)
					}
					return
				}

				if err != nil {
					t.Fatalf("%s: %v", op, err)
				}
				if c.Event.Kind != want.kind {
					t.Errorf("%s appended %s, want %s", op, c.Event.Kind, want.kind)
				}
				if got := logLength(t, s); got != before+1 {
					t.Errorf("%s log length = %d, want %d", op, got, before+1)
				}
			})
		}
	}
}

func TestStateErrorCarriesCurrentKind(t *testing.T) {
	tr, _ := newTestTracker(t)
	seed(t, tr, tr.StartDay, tr.StartBreak)

	_, err := tr.EndDay()
	var stateErr *tracker.StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("EndDay during break = %v, want *StateError", err)
	}
	if stateErr.Current != model.Break {
		t.Errorf("StateError current = %q, want %q", stateErr.Current, model.Break)
	}
	if !errors.Is(err, tracker.ErrNotWorking) {
		t.Errorf("StateError cause = %v, want ErrNotWorking", stateErr.Cause)
	}
}

func TestConfirmationPrior(t *testing.T) {
	tr, _ := newTestTracker(t)

	first, err := tr.StartDay()
	if err != nil {
		t.Fatalf("StartDay: %v", err)
	}
	if first.Prior != nil {
		t.Errorf("first confirmation prior = %v, want nil", first.Prior)
	}

	c, err := tr.StartBreak()
	if err != nil {
		t.Fatalf("StartBreak: %v", err)
	}
	if c.Prior == nil || c.Prior.Kind != model.Arrive {
		t.Fatalf("break prior = %v, want the arrival", c.Prior)
	}
	if !c.Prior.Time.Equal(first.Event.Time) {
		t.Errorf("break prior time = %v, want %v", c.Prior.Time, first.Event.Time)
	}
}

func TestUnlimitedBreakCycles(t *testing.T) {
	tr, s := newTestTracker(t)
	seed(t, tr, tr.StartDay)

	for i := 0; i < 5; i++ {
		seed(t, tr, tr.StartBreak, tr.EndBreak)
	}
	if _, err := tr.EndDay(); err != nil {
		t.Fatalf("EndDay after break cycles: %v", err)
	}

	if got := logLength(t, s); got != 12 {
		t.Errorf("log length = %d, want 12", got)
	}
}
