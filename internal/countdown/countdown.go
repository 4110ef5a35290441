// Package countdown computes time remaining until a deadline and fires a
// one-shot hook when the tracked deadline passes.
package countdown

import (
	"time"
)

// TimeLeft is a deadline broken into display units.
type TimeLeft struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
	Overdue bool
}

// Remaining returns the time from now until target. A target at or before
// now yields all zeros with Overdue set.
func Remaining(target, now time.Time) TimeLeft {
	diff := target.Sub(now)
	if diff <= 0 {
		return TimeLeft{Overdue: true}
	}

	total := int64(diff / time.Second)
	return TimeLeft{
		Days:    int(total / 86400),
		Hours:   int(total / 3600 % 24),
		Minutes: int(total / 60 % 60),
		Seconds: int(total % 60),
	}
}

// Level is a coarse urgency band used for styling.
type Level int

const (
	LevelUrgent Level = iota
	LevelFocused
	LevelCalm
	LevelOverdue
)

// Urgency maps a TimeLeft to its band: more than two weeks is calm, more than
// one week is focused, anything less is urgent.
func Urgency(tl TimeLeft) Level {
	switch {
	case tl.Overdue:
		return LevelOverdue
	case tl.Days > 14:
		return LevelCalm
	case tl.Days > 7:
		return LevelFocused
	default:
		return LevelUrgent
	}
}

// DefaultGoal returns the fallback countdown target used when no mission
// is tracked: days calendar days after now.
func DefaultGoal(now time.Time, days int) time.Time {
	if days <= 0 {
		days = 30
	}
	return now.AddDate(0, 0, days)
}
