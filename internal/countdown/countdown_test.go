package countdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func TestRemaining(t *testing.T) {
	tests := []struct {
		name   string
		target time.Time
		want   TimeLeft
	}{
		{"past", now.Add(-time.Second), TimeLeft{Overdue: true}},
		{"exactly now", now, TimeLeft{Overdue: true}},
		{"seconds", now.Add(42 * time.Second), TimeLeft{Seconds: 42}},
		{
			"mixed",
			now.Add(3*24*time.Hour + 5*time.Hour + 7*time.Minute + 9*time.Second + 400*time.Millisecond),
			TimeLeft{Days: 3, Hours: 5, Minutes: 7, Seconds: 9},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Remaining(tt.target, now))
		})
	}
}

func TestUrgency(t *testing.T) {
	assert.Equal(t, LevelOverdue, Urgency(TimeLeft{Overdue: true}))
	assert.Equal(t, LevelCalm, Urgency(TimeLeft{Days: 15}))
	assert.Equal(t, LevelFocused, Urgency(TimeLeft{Days: 14}))
	assert.Equal(t, LevelFocused, Urgency(TimeLeft{Days: 8}))
	assert.Equal(t, LevelUrgent, Urgency(TimeLeft{Days: 7}))
}

func TestDefaultGoal(t *testing.T) {
	assert.True(t, DefaultGoal(now, 30).Equal(now.AddDate(0, 0, 30)))
	assert.True(t, DefaultGoal(now, 0).Equal(now.AddDate(0, 0, 30)))
}

func TestTrackerFiresOncePerMission(t *testing.T) {
	var fired []string
	tr := NewTracker(func(id string) { fired = append(fired, id) })

	past := now.Add(-time.Minute)
	tr.Observe("m1", &past, now)
	tr.Observe("m1", &past, now.Add(time.Second))
	tr.Observe("m1", &past, now.Add(2*time.Second))
	assert.Equal(t, []string{"m1"}, fired)
	assert.True(t, tr.Fired())

	tr.Observe("m2", &past, now)
	assert.Equal(t, []string{"m1", "m2"}, fired)

	// Returning to a mission re-arms the hook.
	tr.Observe("m1", &past, now)
	assert.Equal(t, []string{"m1", "m2", "m1"}, fired)
}

func TestTrackerWaitsForZero(t *testing.T) {
	calls := 0
	tr := NewTracker(func(string) { calls++ })

	target := now.Add(2 * time.Second)
	tl := tr.Observe("m1", &target, now)
	assert.False(t, tl.Overdue)
	assert.Zero(t, calls)

	tl = tr.Observe("m1", &target, now.Add(2*time.Second))
	assert.True(t, tl.Overdue)
	assert.Equal(t, 1, calls)
}

func TestTrackerNilTarget(t *testing.T) {
	calls := 0
	tr := NewTracker(func(string) { calls++ })

	tl := tr.Observe("m1", nil, now)
	assert.Equal(t, TimeLeft{}, tl)
	assert.Zero(t, calls)
	assert.Equal(t, "m1", tr.TrackedID())
}
