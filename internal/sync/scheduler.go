// Package sync runs the recurring background jobs (overdue checks,
// notification sweeps) and surfaces their results to Bubble Tea.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

// Job names used by the mission tracker.
const (
	JobOverdueCheck      = "overdue-check"
	JobNotificationSweep = "notification-sweep"
)

// ErrSchedulerStopped is returned when Start is called after Stop.
var ErrSchedulerStopped = errors.New("scheduler stopped")

// runTimeout bounds a single job run.
const runTimeout = 30 * time.Second

// JobState represents the current state of a job.
type JobState int

const (
	JobIdle JobState = iota
	JobRunning
	JobError
)

// Job is a unit of recurring work. Run returns how many items it changed.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) (int, error)
}

// JobStatus holds the run state for a single job.
type JobStatus struct {
	Name    string
	State   JobState
	LastRun time.Time
	Runs    int
	Error   error
}

// JobResultMsg is a tea.Msg sent when a job run completes.
type JobResultMsg struct {
	Job     string
	Changed int
	Error   error
}

type jobEntry struct {
	job     Job
	trigger chan struct{}
}

// Scheduler owns one ticker goroutine per registered job.
type Scheduler struct {
	jobs     []jobEntry
	statuses map[string]*JobStatus
	resultCh chan JobResultMsg
	cancel   context.CancelFunc
	group    *errgroup.Group
	mu       gosync.Mutex
	running  bool
	stopped  bool
}

// New creates an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{
		statuses: make(map[string]*JobStatus),
		resultCh: make(chan JobResultMsg, 16),
	}
}

// Register adds a job. Jobs registered after Start are not run.
func (s *Scheduler) Register(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, jobEntry{job: job, trigger: make(chan struct{}, 1)})
	s.statuses[job.Name] = &JobStatus{Name: job.Name, State: JobIdle}
}

// Start launches every registered job. Each job runs once immediately,
// then on every tick of its interval. Starting twice is a no-op; starting
// after Stop returns ErrSchedulerStopped.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrSchedulerStopped
	}
	if s.running {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	for _, entry := range s.jobs {
		g.Go(func() error {
			s.loop(ctx, entry)
			return nil
		})
	}

	s.cancel = cancel
	s.group = g
	s.running = true
	return nil
}

// Stop cancels all jobs and waits for in-flight runs to return. It is safe
// to call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.running = false
	cancel, g := s.cancel, s.group
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	_ = g.Wait()
}

// Trigger requests an immediate run of the named job. Requests made while
// one is already pending are coalesced.
func (s *Scheduler) Trigger(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.jobs {
		if entry.job.Name != name {
			continue
		}
		select {
		case entry.trigger <- struct{}{}:
		default:
		}
		return nil
	}
	return fmt.Errorf("trigger %q: unknown job", name)
}

// Statuses returns the current status of all jobs, sorted by name.
func (s *Scheduler) Statuses() []JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]JobStatus, 0, len(s.statuses))
	for _, st := range s.statuses {
		statuses = append(statuses, *st)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })
	return statuses
}

// loop runs a single job until ctx is cancelled.
func (s *Scheduler) loop(ctx context.Context, entry jobEntry) {
	interval := entry.job.Interval
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.runOnce(ctx, entry.job)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, entry.job)
		case <-entry.trigger:
			s.runOnce(ctx, entry.job)
		}
	}
}

// runOnce performs one run, records its status and publishes the result.
func (s *Scheduler) runOnce(ctx context.Context, job Job) {
	s.setStatus(job.Name, JobRunning, nil)

	runCtx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	n, err := job.Run(runCtx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Printf("job %s: %v", job.Name, err)
		s.setStatus(job.Name, JobError, err)
		s.sendResult(JobResultMsg{Job: job.Name, Error: err})
		return
	}

	s.setStatus(job.Name, JobIdle, nil)
	s.sendResult(JobResultMsg{Job: job.Name, Changed: n})
}

func (s *Scheduler) setStatus(name string, state JobState, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, ok := s.statuses[name]
	if !ok {
		return
	}

	status.State = state
	status.Error = err
	if state != JobRunning {
		status.LastRun = time.Now()
		status.Runs++
	}
}

// sendResult publishes a result without blocking.
func (s *Scheduler) sendResult(msg JobResultMsg) {
	select {
	case s.resultCh <- msg:
	default:
		// Drop if the UI is not keeping up; the next run reports again.
	}
}

// Results exposes the result channel for consumers outside Bubble Tea.
func (s *Scheduler) Results() <-chan JobResultMsg {
	return s.resultCh
}

// WaitForNextResult returns a tea.Cmd that waits for the next job result.
// Call it again after handling each JobResultMsg to keep listening.
func (s *Scheduler) WaitForNextResult() tea.Cmd {
	return func() tea.Msg {
		return <-s.resultCh
	}
}
