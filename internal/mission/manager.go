// Package mission implements the mission store: the authoritative mission
// list, status derivation, statistics, selection, and the notifications
// raised by mission events.
package mission

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/mission-tracker/internal/model"
	"github.com/nhle/mission-tracker/internal/notify"
	"github.com/nhle/mission-tracker/internal/store"
)

// ErrEmptyTitle is returned by AddMission when the title is blank after
// trimming. No mission is created and no notification is raised.
var ErrEmptyTitle = errors.New("mission title is required")

// NewMission describes the user input for AddMission.
type NewMission struct {
	Title       string
	Description string
	Priority    model.Priority
	TargetAt    *time.Time
}

// Manager owns the mission collection, the notification queue and the
// tracked-mission selection. Every method is safe for concurrent use and
// atomic with respect to the others.
type Manager struct {
	mu         sync.Mutex
	store      store.Store
	notes      *notify.Center
	now        func() time.Time
	newID      func() string
	selectedID string
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator overrides how mission IDs are minted.
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) { m.newID = gen }
}

// NewManager creates a Manager over the given store and notification center.
func NewManager(s store.Store, notes *notify.Center, opts ...Option) *Manager {
	m := &Manager{
		store: s,
		notes: notes,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init prepares the store for first use: it optionally loads the demo
// missions and then runs one overdue check.
func (m *Manager) Init(ctx context.Context, seed bool) error {
	if seed {
		if _, err := m.Seed(ctx); err != nil {
			return err
		}
	}
	if _, err := m.CheckOverdue(ctx); err != nil {
		return err
	}
	return nil
}

// AddMission creates an active mission and raises an info notification.
func (m *Manager) AddMission(ctx context.Context, in NewMission) (model.Mission, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Mission{}, ErrEmptyTitle
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	mission := model.Mission{
		ID:          m.newID(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Priority:    in.Priority.OrDefault(),
		Status:      model.StatusActive,
		CreatedAt:   m.now(),
		TargetAt:    copyTime(in.TargetAt),
	}
	if err := m.store.CreateMission(ctx, mission); err != nil {
		return model.Mission{}, fmt.Errorf("adding mission: %w", err)
	}

	m.notes.Push(model.NotificationInfo,
		"Mission Launched",
		fmt.Sprintf(`"%s" has been added to your missions.`, title),
	)
	return mission, nil
}

// CompleteMission moves an active or overdue mission to completed and
// raises a success notification. It reports whether a transition happened;
// unknown and already-completed missions are left alone.
func (m *Manager) CompleteMission(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mission, err := m.store.GetMissionByID(ctx, id)
	if errors.Is(err, store.ErrMissionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("completing mission: %w", err)
	}
	if mission.IsCompleted() {
		return false, nil
	}

	now := m.now()
	mission.Status = model.StatusCompleted
	mission.CompletedAt = &now
	if err := m.store.UpdateMission(ctx, *mission); err != nil {
		return false, fmt.Errorf("completing mission: %w", err)
	}

	m.notes.Push(model.NotificationSuccess,
		"Mission Complete!",
		fmt.Sprintf(`Congratulations! "%s" has been completed.`, mission.Title),
	)
	return true, nil
}

// DeleteMission removes a mission. Deleting the tracked mission clears the
// selection; unknown IDs are ignored.
func (m *Manager) DeleteMission(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.store.DeleteMission(ctx, id); err != nil {
		return fmt.Errorf("deleting mission: %w", err)
	}
	if m.selectedID == id {
		m.selectedID = ""
	}
	return nil
}

// UpdateMission merges patch into the stored mission. Status is taken as
// given and not re-derived. Unknown IDs are ignored.
func (m *Manager) UpdateMission(ctx context.Context, id string, patch model.MissionPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	mission, err := m.store.GetMissionByID(ctx, id)
	if errors.Is(err, store.ErrMissionNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("updating mission: %w", err)
	}

	updated := patch.Apply(*mission)
	if err := m.store.UpdateMission(ctx, updated); err != nil {
		return fmt.Errorf("updating mission: %w", err)
	}
	return nil
}

// CheckOverdue marks every active mission whose target has passed as
// overdue and returns how many changed. Running it again without a clock
// change is a no-op.
func (m *Manager) CheckOverdue(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	active := model.StatusActive
	missions, err := m.store.GetMissions(ctx, store.MissionFilter{Status: &active})
	if err != nil {
		return 0, fmt.Errorf("checking overdue missions: %w", err)
	}

	now := m.now()
	var ids []string
	for _, mission := range missions {
		if mission.PastTarget(now) {
			ids = append(ids, mission.ID)
		}
	}

	n, err := m.store.MarkOverdue(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("checking overdue missions: %w", err)
	}
	return n, nil
}

// Missions returns the missions matching filter in display order.
func (m *Manager) Missions(ctx context.Context, filter model.Filter) ([]model.Mission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	missions, err := m.store.GetMissions(ctx, store.FilterFor(filter))
	if err != nil {
		return nil, fmt.Errorf("listing missions: %w", err)
	}
	return missions, nil
}

// Search returns the missions matching filter whose title or description
// contains query, in display order. An empty query matches everything.
func (m *Manager) Search(ctx context.Context, filter model.Filter, query string) ([]model.Mission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f := store.FilterFor(filter)
	if q := strings.TrimSpace(query); q != "" {
		f.Query = &q
	}
	missions, err := m.store.GetMissions(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("searching missions: %w", err)
	}
	return missions, nil
}

// Mission looks up a single mission. It returns nil when the ID is unknown.
func (m *Manager) Mission(ctx context.Context, id string) (*model.Mission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookup(ctx, id)
}

func (m *Manager) lookup(ctx context.Context, id string) (*model.Mission, error) {
	if id == "" {
		return nil, nil
	}
	mission, err := m.store.GetMissionByID(ctx, id)
	if errors.Is(err, store.ErrMissionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up mission: %w", err)
	}
	return mission, nil
}

// Stats returns the current mission statistics.
func (m *Manager) Stats(ctx context.Context) (model.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, err := m.store.GetStats(ctx)
	if err != nil {
		return model.Stats{}, fmt.Errorf("computing stats: %w", err)
	}
	return st, nil
}

// Select tracks a mission for the countdown. The selection is a lookup key
// only; it never keeps a deleted mission alive.
func (m *Manager) Select(id string) {
	m.mu.Lock()
	m.selectedID = id
	m.mu.Unlock()
}

// ClearSelection stops tracking any mission.
func (m *Manager) ClearSelection() {
	m.Select("")
}

// SelectedID returns the tracked mission ID, or "".
func (m *Manager) SelectedID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selectedID
}

// Selected returns the tracked mission, or nil when nothing is tracked.
func (m *Manager) Selected(ctx context.Context) (*model.Mission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookup(ctx, m.selectedID)
}

// AddNotification raises an arbitrary notification.
func (m *Manager) AddNotification(typ model.NotificationType, title, message string) model.Notification {
	return m.notes.Push(typ, title, message)
}

// NotifyCountdownComplete raises the notification for a countdown that
// reached zero. An empty or unknown id refers to the goal countdown.
func (m *Manager) NotifyCountdownComplete(ctx context.Context, id string) (model.Notification, error) {
	m.mu.Lock()
	mission, err := m.lookup(ctx, id)
	m.mu.Unlock()
	if err != nil {
		return model.Notification{}, err
	}

	if mission == nil {
		return m.notes.Push(model.NotificationWarning,
			"Countdown Complete",
			"Your goal date has arrived.",
		), nil
	}
	return m.notes.Push(model.NotificationOverdue,
		"Mission Overdue!",
		fmt.Sprintf(`"%s" has passed its target time.`, mission.Title),
	), nil
}

// Notifications returns the active notifications, oldest first.
func (m *Manager) Notifications() []model.Notification {
	return m.notes.Active()
}

// DismissNotification removes a notification now. Unknown IDs are ignored.
func (m *Manager) DismissNotification(id string) {
	m.notes.Dismiss(id)
}

// ExpireNotification is the auto-removal path for a notification timer.
func (m *Manager) ExpireNotification(id string) {
	m.notes.Expire(id)
}

// SweepNotifications drops every notification whose lifetime elapsed.
func (m *Manager) SweepNotifications() int {
	return m.notes.Sweep()
}

// NotificationTTL returns how long notifications live.
func (m *Manager) NotificationTTL() time.Duration {
	return m.notes.TTL()
}

// Now returns the manager's current time.
func (m *Manager) Now() time.Time {
	return m.now()
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
