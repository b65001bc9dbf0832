package model

import "time"

// Kind identifies the type of a recorded work event.
type Kind string

// The four event kinds. The spellings are part of the on-disk schema.
const (
	Arrive Kind = "arrive"
	Break  Kind = "break"
	Resume Kind = "resume"
	Leave  Kind = "leave"
)

// Valid reports whether k is one of the known event kinds.
func (k Kind) Valid() bool {
	switch k {
	case Arrive, Break, Resume, Leave:
		return true
	}
	return false
}

// Opens reports whether an event of this kind opens a presence interval.
func (k Kind) Opens() bool {
	return k == Arrive || k == Resume
}

// Closes reports whether an event of this kind closes a presence interval.
func (k Kind) Closes() bool {
	return k == Break || k == Leave
}

// Event is a single recorded (kind, timestamp) fact. Events are immutable
// once recorded; no two events share both kind and timestamp.
type Event struct {
	Kind Kind
	Time time.Time
}
