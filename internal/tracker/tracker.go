// Package tracker validates work events against the most recent log entry
// and records them. It holds no state of its own; every decision derives
// from the log's last event.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/Tiliavir/timetrack/internal/model"
)

// Causes for rejected operations.
var (
	ErrAlreadyPresent = errors.New("you are already at work")
	ErrNotWorking     = errors.New("you are not working right now")
	ErrNotBreaking    = errors.New("you are not taking a break right now")
)

// StateError reports an operation rejected by the transition rules. Current
// is the kind of the most recent recorded event, or empty when the log holds
// none.
type StateError struct {
	Op      string
	Cause   error
	Current model.Kind
}

func (e *StateError) Error() string {
	if e.Current == "" {
		return fmt.Sprintf("%s: %s (no events recorded)", e.Op, e.Cause)
	}
	return fmt.Sprintf("%s: %s (last event: %s)", e.Op, e.Cause, e.Current)
}

func (e *StateError) Unwrap() error { return e.Cause }

// EventLog is the subset of the store the tracker writes through. Append
// must read the most recent event, pass it to guard (nil when the log is
// empty), and insert only when guard returns nil, as one atomic unit.
type EventLog interface {
	Append(ev model.Event, guard func(last *model.Event) error) error
}

// Confirmation describes a successfully recorded event. Prior is the event
// transitioned away from when one exists (the arrival before a break, the
// break before a resume), so the presentation layer can phrase durations.
type Confirmation struct {
	Event model.Event
	Prior *model.Event
}

// Tracker records work events against an event log.
type Tracker struct {
	Log EventLog
	Now func() time.Time // defaults to time.Now, overridable in tests
}

// New returns a Tracker writing to log.
func New(log EventLog) *Tracker {
	return &Tracker{Log: log, Now: time.Now}
}

// StartDay records an arrival. Legal only when the log is empty or the most
// recent event is a leave.
func (t *Tracker) StartDay() (Confirmation, error) {
	return t.record("start day", model.Arrive, func(last *model.Event) error {
		if last != nil && last.Kind != model.Leave {
			return ErrAlreadyPresent
		}
		return nil
	})
}

// StartBreak records the start of a break. Legal only while working, i.e.
// when the most recent event is an arrive or resume. Any number of breaks
// per day is allowed.
func (t *Tracker) StartBreak() (Confirmation, error) {
	return t.record("start break", model.Break, func(last *model.Event) error {
		if last == nil || !last.Kind.Opens() {
			return ErrNotWorking
		}
		return nil
	})
}

// EndBreak records the end of a break. Legal only when the most recent event
// is a break.
func (t *Tracker) EndBreak() (Confirmation, error) {
	return t.record("end break", model.Resume, func(last *model.Event) error {
		if last == nil || last.Kind != model.Break {
			return ErrNotBreaking
		}
		return nil
	})
}

// EndDay records the leave for the day. Legal only while working.
func (t *Tracker) EndDay() (Confirmation, error) {
	return t.record("end day", model.Leave, func(last *model.Event) error {
		if last == nil || !last.Kind.Opens() {
			return ErrNotWorking
		}
		return nil
	})
}

// record appends one event at the current instant. Validation and insert run
// inside the log's Append transaction, so a rejected operation has no effect
// and no concurrent invocation can interleave between read and write.
func (t *Tracker) record(op string, kind model.Kind, check func(last *model.Event) error) (Confirmation, error) {
	ev := model.Event{Kind: kind, Time: t.Now()}

	var prior *model.Event
	err := t.Log.Append(ev, func(last *model.Event) error {
		if err := check(last); err != nil {
			var current model.Kind
			if last != nil {
				current = last.Kind
			}
			return &StateError{Op: op, Cause: err, Current: current}
		}
		prior = last
		return nil
	})
	if err != nil {
		return Confirmation{}, err
	}
	return Confirmation{Event: ev, Prior: prior}, nil
}
