package sync

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counting(name string, interval time.Duration, calls *atomic.Int32) Job {
	return Job{
		Name:     name,
		Interval: interval,
		Run: func(context.Context) (int, error) {
			return int(calls.Add(1)), nil
		},
	}
}

func nextResult(t *testing.T, s *Scheduler) JobResultMsg {
	t.Helper()
	select {
	case msg := <-s.Results():
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for job result")
		return JobResultMsg{}
	}
}

func TestSchedulerRunsImmediatelyAndOnTick(t *testing.T) {
	var calls atomic.Int32
	s := New()
	s.Register(counting(JobNotificationSweep, 20*time.Millisecond, &calls))

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	first := nextResult(t, s)
	assert.Equal(t, JobNotificationSweep, first.Job)
	assert.Equal(t, 1, first.Changed)

	second := nextResult(t, s)
	assert.Equal(t, 2, second.Changed)
}

func TestSchedulerTrigger(t *testing.T) {
	var calls atomic.Int32
	s := New()
	s.Register(counting(JobOverdueCheck, time.Hour, &calls))

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	nextResult(t, s)
	require.NoError(t, s.Trigger(JobOverdueCheck))
	msg := nextResult(t, s)
	assert.Equal(t, 2, msg.Changed)

	assert.Error(t, s.Trigger("nope"))
}

func TestSchedulerReportsErrors(t *testing.T) {
	boom := errors.New("boom")
	s := New()
	s.Register(Job{
		Name:     "failing",
		Interval: time.Hour,
		Run:      func(context.Context) (int, error) { return 0, boom },
	})

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	msg := nextResult(t, s)
	assert.ErrorIs(t, msg.Error, boom)

	statuses := s.Statuses()
	require.Len(t, statuses, 1)
	assert.Equal(t, JobError, statuses[0].State)
	assert.Equal(t, 1, statuses[0].Runs)
}

func TestSchedulerStop(t *testing.T) {
	var calls atomic.Int32
	s := New()
	s.Register(counting("a", 5*time.Millisecond, &calls))

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()), "second start is a no-op")
	nextResult(t, s)

	s.Stop()
	s.Stop()

	after := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, calls.Load(), "no runs after Stop returns")

	assert.ErrorIs(t, s.Start(context.Background()), ErrSchedulerStopped)
}

func TestSchedulerStopBeforeStart(t *testing.T) {
	s := New()
	s.Stop()
	assert.ErrorIs(t, s.Start(context.Background()), ErrSchedulerStopped)
}

func TestWaitForNextResult(t *testing.T) {
	var calls atomic.Int32
	s := New()
	s.Register(counting("a", time.Hour, &calls))
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	msg := s.WaitForNextResult()()
	res, ok := msg.(JobResultMsg)
	require.True(t, ok)
	assert.Equal(t, "a", res.Job)
}
