package app

import (
	"context"
	"errors"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/mission-tracker/internal/mission"
	"github.com/nhle/mission-tracker/internal/model"
)

// missionOp names the mutation a missionResultMsg reports on.
type missionOp int

const (
	opAdd missionOp = iota
	opComplete
	opDelete
	opUpdate
	opCheck
)

// missionResultMsg is sent after a mission mutation finishes.
type missionResultMsg struct {
	op      missionOp
	id      string
	changed bool
	err     error
}

// statsLoadedMsg carries fresh dashboard statistics.
type statsLoadedMsg struct {
	stats model.Stats
	err   error
}

// countdownLoadedMsg carries the tracked mission (nil for the goal date).
type countdownLoadedMsg struct {
	mission *model.Mission
	now     time.Time
	err     error
}

// editReadyMsg carries the mission to be edited.
type editReadyMsg struct {
	mission *model.Mission
	err     error
}

// detailLoadedMsg carries the mission for the detail view.
type detailLoadedMsg struct {
	mission *model.Mission
	err     error
}

// notificationExpiredMsg fires when a notification's lifetime elapses.
type notificationExpiredMsg struct {
	id string
}

// tickMsg drives the clock and countdown once per second.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// addMission launches a new mission.
func (m *Model) addMission(in mission.NewMission) tea.Cmd {
	mgr := m.manager
	return func() tea.Msg {
		ms, err := mgr.AddMission(context.Background(), in)
		return missionResultMsg{op: opAdd, id: ms.ID, changed: err == nil, err: err}
	}
}

// completeMission completes the mission with the given ID.
func (m *Model) completeMission(id string) tea.Cmd {
	mgr := m.manager
	return func() tea.Msg {
		changed, err := mgr.CompleteMission(context.Background(), id)
		return missionResultMsg{op: opComplete, id: id, changed: changed, err: err}
	}
}

// deleteMission removes the mission with the given ID.
func (m *Model) deleteMission(id string) tea.Cmd {
	mgr := m.manager
	return func() tea.Msg {
		err := mgr.DeleteMission(context.Background(), id)
		return missionResultMsg{op: opDelete, id: id, changed: err == nil, err: err}
	}
}

// updateMission applies an edit from the form.
func (m *Model) updateMission(id string, patch model.MissionPatch) tea.Cmd {
	mgr := m.manager
	return func() tea.Msg {
		err := mgr.UpdateMission(context.Background(), id, patch)
		return missionResultMsg{op: opUpdate, id: id, changed: err == nil, err: err}
	}
}

// checkOverdue runs an overdue check outside the schedule.
func (m *Model) checkOverdue() tea.Cmd {
	mgr := m.manager
	return func() tea.Msg {
		n, err := mgr.CheckOverdue(context.Background())
		return missionResultMsg{op: opCheck, changed: n > 0, err: err}
	}
}

// loadStats fetches the dashboard statistics.
func (m *Model) loadStats() tea.Cmd {
	mgr := m.manager
	return func() tea.Msg {
		st, err := mgr.Stats(context.Background())
		return statsLoadedMsg{stats: st, err: err}
	}
}

// loadCountdown fetches the tracked mission for the countdown panel.
func (m *Model) loadCountdown() tea.Cmd {
	mgr := m.manager
	return func() tea.Msg {
		ms, err := mgr.Selected(context.Background())
		return countdownLoadedMsg{mission: ms, now: mgr.Now(), err: err}
	}
}

// startEdit loads a mission for the edit form.
func (m *Model) startEdit(id string) tea.Cmd {
	mgr := m.manager
	return func() tea.Msg {
		ms, err := mgr.Mission(context.Background(), id)
		return editReadyMsg{mission: ms, err: err}
	}
}

// loadDetail fetches a mission for the detail view.
func (m *Model) loadDetail(id string) tea.Cmd {
	mgr := m.manager
	return func() tea.Msg {
		ms, err := mgr.Mission(context.Background(), id)
		return detailLoadedMsg{mission: ms, err: err}
	}
}

// syncNotifications refreshes the visible toasts and schedules one expiry
// timer for every notification seen for the first time.
func (m *Model) syncNotifications() tea.Cmd {
	active := m.manager.Notifications()
	now := m.manager.Now()

	live := make(map[string]bool, len(active))
	var cmds []tea.Cmd
	for _, n := range active {
		live[n.ID] = true
		if m.scheduled[n.ID] {
			continue
		}
		m.scheduled[n.ID] = true

		id := n.ID
		wait := n.ExpiresAt.Sub(now)
		if wait < 0 {
			wait = 0
		}
		cmds = append(cmds, tea.Tick(wait, func(time.Time) tea.Msg {
			return notificationExpiredMsg{id: id}
		}))
	}
	for id := range m.scheduled {
		if !live[id] {
			delete(m.scheduled, id)
		}
	}

	m.notes = active
	return tea.Batch(cmds...)
}

// reportError logs a failed operation and surfaces it as a warning toast.
func (m *Model) reportError(what string, err error) tea.Cmd {
	if errors.Is(err, mission.ErrEmptyTitle) {
		m.manager.AddNotification(model.NotificationWarning, "Mission Not Added", "A mission needs a title.")
		return m.syncNotifications()
	}
	log.Printf("%s: %v", what, err)
	m.manager.AddNotification(model.NotificationWarning, "Something went wrong", what+" failed.")
	return m.syncNotifications()
}
