package countdown

import "time"

// Tracker watches a single deadline. OnComplete fires at most once per
// tracked mission; switching to a different mission re-arms it.
type Tracker struct {
	trackedID  string
	fired      bool
	OnComplete func(missionID string)
}

// NewTracker creates a Tracker with the given completion hook.
func NewTracker(onComplete func(missionID string)) *Tracker {
	return &Tracker{OnComplete: onComplete}
}

// Track switches the tracked mission. An empty id tracks the goal date.
func (t *Tracker) Track(id string) {
	if id == t.trackedID {
		return
	}
	t.trackedID = id
	t.fired = false
}

// TrackedID returns the currently tracked mission ID, or "".
func (t *Tracker) TrackedID() string { return t.trackedID }

// Fired reports whether the hook already ran for the current target.
func (t *Tracker) Fired() bool { return t.fired }

// Observe computes the remaining time for the tracked target and runs the
// hook the first time it reaches zero. A nil target never fires.
func (t *Tracker) Observe(id string, target *time.Time, now time.Time) TimeLeft {
	t.Track(id)
	if target == nil {
		return TimeLeft{}
	}

	tl := Remaining(*target, now)
	if tl.Overdue && !t.fired {
		t.fired = true
		if t.OnComplete != nil {
			t.OnComplete(t.trackedID)
		}
	}
	return tl
}
