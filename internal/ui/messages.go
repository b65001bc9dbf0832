// Package ui turns structured tracker and report facts into user-facing
// text. Wording is chosen here and only here: the core emits deterministic
// facts, and the random flavor below varies phrasing, never behavior.
package ui

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/Tiliavir/timetrack/internal/model"
	"github.com/Tiliavir/timetrack/internal/report"
	"github.com/Tiliavir/timetrack/internal/timecalc"
	"github.com/Tiliavir/timetrack/internal/tracker"
)

const clockFormat = "15:04"

// All variants of a set take the same arguments in the same order.
var (
	arrivalVariants = []string{ // clock
		"Welcome back! Arrival recorded at %s.",
		"Good morning. Your day starts at %s.",
		"Clocked in at %s. Have a productive day!",
	}
	breakVariants = []string{ // clock, time worked since arriving or resuming
		"Break started at %s, after %s of work.",
		"Enjoy your break! %s, %s of work behind you.",
		"Taking five at %s. You put in %s since you last sat down.",
	}
	resumeVariants = []string{ // clock, break length
		"Back to work at %s. Your break took %s.",
		"Resumed at %s after a %s break.",
		"Welcome back at %s. That was %s of break.",
	}
	leaveVariants = []string{ // clock
		"Signing off at %s. Have a nice evening!",
		"Closing time: %s. See you tomorrow.",
		"Day ended at %s. Well done.",
	}

	alreadyPresentVariants = []string{ // state description
		"You are already here — no need to arrive twice (currently %s).",
		"Arrival refused: you are currently %s.",
	}
	notWorkingVariants = []string{ // state description
		"That only works while you are working, but you are currently %s.",
		"Not so fast: you are currently %s, not working.",
	}
	notBreakingVariants = []string{ // state description
		"There is no break to end — you are currently %s.",
		"Resume refused: you are currently %s, not on a break.",
	}
)

func pick(variants []string) string {
	return variants[rand.Intn(len(variants))]
}

// Success returns a confirmation message for a recorded event. Prior-aware
// variants phrase the span since the event transitioned away from.
func Success(c tracker.Confirmation) string {
	clock := c.Event.Time.Format(clockFormat)
	switch c.Event.Kind {
	case model.Arrive:
		return fmt.Sprintf(pick(arrivalVariants), clock)
	case model.Break:
		if c.Prior != nil {
			worked := timecalc.FormatDuration(c.Event.Time.Sub(c.Prior.Time))
			return fmt.Sprintf(pick(breakVariants), clock, worked)
		}
		return fmt.Sprintf("Break started at %s.", clock)
	case model.Resume:
		if c.Prior != nil {
			length := timecalc.FormatDuration(c.Event.Time.Sub(c.Prior.Time))
			return fmt.Sprintf(pick(resumeVariants), clock, length)
		}
		return fmt.Sprintf("Back to work at %s.", clock)
	case model.Leave:
		return fmt.Sprintf(pick(leaveVariants), clock)
	}
	return fmt.Sprintf("%s recorded at %s.", c.Event.Kind, clock)
}

// Failure returns a user-facing message for err. State-rule violations get
// flavored phrasing; integrity faults are surfaced verbatim.
func Failure(err error) string {
	var stateErr *tracker.StateError
	if errors.As(err, &stateErr) {
		return stateMessage(stateErr)
	}
	var noArrival *report.NoArrivalError
	if errors.As(err, &noArrival) {
		return fmt.Sprintf("No arrival recorded on %s — nothing to report.", noArrival.Date.Format("2006-01-02"))
	}
	return "Error: " + err.Error()
}

func stateMessage(e *tracker.StateError) string {
	state := describeState(e.Current)
	switch {
	case errors.Is(e, tracker.ErrAlreadyPresent):
		return fmt.Sprintf(pick(alreadyPresentVariants), state)
	case errors.Is(e, tracker.ErrNotWorking):
		return fmt.Sprintf(pick(notWorkingVariants), state)
	case errors.Is(e, tracker.ErrNotBreaking):
		return fmt.Sprintf(pick(notBreakingVariants), state)
	}
	return "Error: " + e.Error()
}

// describeState names the state implied by the most recent event kind; the
// empty kind means the log holds no events yet.
func describeState(k model.Kind) string {
	switch k {
	case model.Arrive, model.Resume:
		return "working"
	case model.Break:
		return "on a break"
	case model.Leave:
		return "gone for the day"
	}
	return "not tracking at all"
}
