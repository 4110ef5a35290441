package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mission-tracker/internal/countdown"
	"github.com/nhle/mission-tracker/internal/keys"
	"github.com/nhle/mission-tracker/internal/mission"
	"github.com/nhle/mission-tracker/internal/model"
	appsync "github.com/nhle/mission-tracker/internal/sync"
	"github.com/nhle/mission-tracker/internal/ui"
	"github.com/nhle/mission-tracker/internal/ui/clock"
	"github.com/nhle/mission-tracker/internal/ui/command"
	"github.com/nhle/mission-tracker/internal/ui/countdownpanel"
	"github.com/nhle/mission-tracker/internal/ui/dashboard"
	"github.com/nhle/mission-tracker/internal/ui/detail"
	helpview "github.com/nhle/mission-tracker/internal/ui/help"
	"github.com/nhle/mission-tracker/internal/ui/missionform"
	"github.com/nhle/mission-tracker/internal/ui/missionlist"
	"github.com/nhle/mission-tracker/internal/ui/toast"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewHelp
	ViewCommand
	ViewMissionCreate
	ViewMissionEdit
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and the timers that drive the clock, countdown and toasts.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	manager      *mission.Manager
	scheduler    *appsync.Scheduler
	cfg          *model.AppConfig
	keys         *keys.KeyMap
	missionList  missionlist.Model
	detail       detail.Model
	formView     missionform.Model
	helpView     helpview.Model
	commandView  command.Model
	dashboard    dashboard.Model
	tracker      *countdown.Tracker
	goal         time.Time
	target       countdownpanel.Target
	timeLeft     countdown.TimeLeft
	notes        []model.Notification
	scheduled    map[string]bool
	now          time.Time
	ready        bool
}

// New creates the root model. The scheduler may be nil, in which case
// background jobs are not surfaced.
func New(mgr *mission.Manager, sched *appsync.Scheduler, cfg *model.AppConfig) Model {
	if cfg == nil {
		cfg = model.DefaultAppConfig()
	}
	k := keys.DefaultKeyMap()
	now := mgr.Now()

	tracker := countdown.NewTracker(func(id string) {
		if _, err := mgr.NotifyCountdownComplete(context.Background(), id); err != nil {
			mgr.AddNotification(model.NotificationWarning, "Countdown Complete", "The countdown reached zero.")
		}
	})

	return Model{
		currentView: ViewList,
		manager:     mgr,
		scheduler:   sched,
		cfg:         cfg,
		keys:        k,
		missionList: missionlist.New(mgr, k, mgr.Now, 80, 24),
		detail:      detail.New(k, mgr.Now, 80, 24),
		formView:    missionform.New(time.Local, 80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.NewModel(80, 24),
		dashboard:   dashboard.New(34),
		tracker:     tracker,
		goal:        countdown.DefaultGoal(now, cfg.Missions.GoalDays),
		scheduled:   make(map[string]bool),
		now:         now,
	}
}

// Init loads the initial data and starts the display tick.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.missionList.Init(),
		m.loadStats(),
		m.loadCountdown(),
		tick(),
		func() tea.Msg { return notificationsChangedMsg{} },
	}
	if m.scheduler != nil {
		cmds = append(cmds, m.scheduler.WaitForNextResult())
	}
	return tea.Batch(cmds...)
}

// notificationsChangedMsg asks the root model to resync toasts.
type notificationsChangedMsg struct{}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentHeight := m.layout.ContentHeight()
		m.missionList.SetSize(m.layout.ListWidth(), contentHeight)
		m.dashboard.SetWidth(m.layout.SidebarWidth())
		m.detail.SetSize(m.layout.ListWidth(), contentHeight)
		m.formView.SetSize(msg.Width, contentHeight)
		m.helpView.SetSize(msg.Width, contentHeight)
		m.commandView.SetSize(msg.Width, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case tickMsg:
		m.now = m.manager.Now()
		m.missionList.PruneHighlights(m.now)
		return m, tea.Batch(tick(), m.loadCountdown())

	case countdownLoadedMsg:
		if msg.err != nil {
			return m, m.reportError("loading countdown", msg.err)
		}
		m.observeCountdown(msg.mission, msg.now)
		return m, m.syncNotifications()

	case statsLoadedMsg:
		if msg.err != nil {
			return m, m.reportError("loading stats", msg.err)
		}
		m.dashboard.SetStats(msg.stats)
		return m, nil

	case notificationsChangedMsg:
		return m, m.syncNotifications()

	case notificationExpiredMsg:
		m.manager.ExpireNotification(msg.id)
		return m, m.syncNotifications()

	case appsync.JobResultMsg:
		var cmds []tea.Cmd
		if m.scheduler != nil {
			cmds = append(cmds, m.scheduler.WaitForNextResult())
		}
		switch {
		case msg.Error != nil:
			cmds = append(cmds, m.reportError(msg.Job, msg.Error))
		case msg.Job == appsync.JobOverdueCheck && msg.Changed > 0:
			cmds = append(cmds, m.refresh())
		case msg.Job == appsync.JobNotificationSweep:
			cmds = append(cmds, m.syncNotifications())
		}
		return m, tea.Batch(cmds...)

	case missionResultMsg:
		if msg.err != nil {
			return m, m.reportError(opName(msg.op), msg.err)
		}
		if msg.op == opComplete && msg.changed {
			m.missionList.Highlight(msg.id, m.manager.Now().Add(m.cfg.Missions.HighlightDuration()))
		}
		cmd := m.refresh()
		if m.currentView == ViewDetail {
			if ms := m.detail.Mission(); ms != nil {
				cmd = tea.Batch(cmd, m.loadDetail(ms.ID))
			}
		}
		return m, cmd

	case detailLoadedMsg:
		if msg.err != nil {
			return m, m.reportError("loading mission", msg.err)
		}
		if msg.mission == nil {
			m.currentView = ViewList
			return m, nil
		}
		m.detail.SetMission(msg.mission)
		if m.currentView != ViewDetail {
			m.previousView = m.currentView
			m.currentView = ViewDetail
		}
		return m, nil

	case detail.BackMsg:
		m.currentView = ViewList
		return m, nil

	case detail.ActionMsg:
		return m, m.detailAction(msg)

	case missionlist.TrackMsg:
		m.manager.Select(msg.ID)
		m.missionList.SetTracked(msg.ID)
		return m, m.loadCountdown()

	case missionlist.CompleteMsg:
		return m, m.completeMission(msg.ID)

	case missionlist.DeleteMsg:
		return m, m.deleteMission(msg.ID)

	case missionlist.EditMsg:
		return m, m.startEdit(msg.ID)

	case editReadyMsg:
		if msg.err != nil {
			return m, m.reportError("loading mission", msg.err)
		}
		if msg.mission == nil {
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewMissionEdit
		return m, m.formView.StartEdit(*msg.mission)

	case missionform.CreatedMsg:
		m.currentView = ViewList
		return m, m.addMission(msg.Mission)

	case missionform.UpdatedMsg:
		m.currentView = ViewList
		return m, m.updateMission(msg.ID, msg.Patch)

	case missionform.CancelMsg:
		m.currentView = ViewList
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(command.Command(msg))

	case command.ErrorMsg:
		m.currentView = m.previousView
		m.manager.AddNotification(model.NotificationWarning, "Unknown command", msg.Err.Error())
		return m, m.syncNotifications()

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that work regardless of the active view.
// Text-entry views only see ctrl+c and esc.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m.quit(), true
	}

	switch m.currentView {
	case ViewMissionCreate, ViewMissionEdit, ViewDetail:
		return nil, false
	case ViewCommand:
		if key.Matches(msg, m.keys.Back) {
			m.commandView.Reset()
			m.currentView = m.previousView
			return nil, true
		}
		return nil, false
	case ViewHelp:
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back) {
			m.currentView = m.previousView
		}
		return nil, true
	}

	if m.missionList.Searching() {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit(), true

	case key.Matches(msg, m.keys.Help):
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return nil, true

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m.commandView.Focus(), true

	case key.Matches(msg, m.keys.New):
		return m.openCreate(), true

	case key.Matches(msg, m.keys.Untrack):
		return m.untrack(), true

	case key.Matches(msg, m.keys.Details):
		sel, ok := m.missionList.Selected()
		if !ok {
			return nil, true
		}
		return m.loadDetail(sel.ID), true

	case key.Matches(msg, m.keys.Dismiss):
		if len(m.notes) == 0 {
			return nil, true
		}
		m.manager.DismissNotification(m.notes[len(m.notes)-1].ID)
		return m.syncNotifications(), true

	case key.Matches(msg, m.keys.Check):
		return m.triggerCheck(), true
	}

	return nil, false
}

func (m *Model) openCreate() tea.Cmd {
	m.previousView = m.currentView
	m.currentView = ViewMissionCreate
	return m.formView.StartCreate()
}

func (m *Model) untrack() tea.Cmd {
	m.manager.ClearSelection()
	m.missionList.SetTracked("")
	return m.loadCountdown()
}

// detailAction runs an action requested from the detail view.
func (m *Model) detailAction(msg detail.ActionMsg) tea.Cmd {
	switch msg.Action {
	case detail.ActionComplete:
		return m.completeMission(msg.MissionID)
	case detail.ActionEdit:
		return m.startEdit(msg.MissionID)
	case detail.ActionTrack:
		id := msg.MissionID
		return func() tea.Msg { return missionlist.TrackMsg{ID: id} }
	case detail.ActionDelete:
		m.currentView = ViewList
		return m.deleteMission(msg.MissionID)
	default:
		return nil
	}
}

// triggerCheck asks the scheduler for an immediate overdue check, falling
// back to running it inline when there is no scheduler.
func (m *Model) triggerCheck() tea.Cmd {
	if m.scheduler != nil && m.scheduler.Trigger(appsync.JobOverdueCheck) == nil {
		return nil
	}
	return m.checkOverdue()
}

func (m *Model) quit() tea.Cmd {
	if m.scheduler != nil {
		m.scheduler.Stop()
	}
	return tea.Quit
}

// refresh reloads every view that depends on the mission collection.
func (m *Model) refresh() tea.Cmd {
	return tea.Batch(
		m.missionList.Load(),
		m.loadStats(),
		m.loadCountdown(),
		m.syncNotifications(),
	)
}

// observeCountdown points the countdown at the tracked mission, or at the
// goal date when nothing is tracked, and fires the zero hook if due.
func (m *Model) observeCountdown(ms *model.Mission, now time.Time) {
	if ms == nil {
		m.missionList.SetTracked("")
		goal := m.goal
		m.target = countdownpanel.Target{
			Label: "Goal date: " + goal.Format("Jan 2, 2006 15:04"),
			At:    &goal,
		}
		m.timeLeft = m.tracker.Observe("", &goal, now)
		return
	}

	m.missionList.SetTracked(ms.ID)
	if ms.IsCompleted() {
		m.tracker.Track(ms.ID)
		m.target = countdownpanel.Target{Label: ms.Title + " (completed)"}
		m.timeLeft = countdown.TimeLeft{}
		return
	}

	m.target = countdownpanel.Target{Label: ms.Title, At: ms.TargetAt}
	m.timeLeft = m.tracker.Observe(ms.ID, ms.TargetAt, now)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.missionList, cmd = m.missionList.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewMissionCreate, ViewMissionEdit:
		m.formView, cmd = m.formView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("✦ Mission Control", clock.View(m.now, m.cfg.Display.Clock24))
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, m.renderContent(), statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewMissionCreate, ViewMissionEdit:
		return m.formView.View()
	}

	body := m.missionList.View()
	if m.currentView == ViewDetail {
		body = m.detail.View()
	}

	sidebarWidth := m.layout.SidebarWidth()
	sidebar := lipgloss.JoinVertical(lipgloss.Left,
		countdownpanel.View(m.target, m.timeLeft, sidebarWidth),
		m.dashboard.View(),
		toast.View(m.notes, sidebarWidth),
	)
	return m.layout.RenderBody(body, sidebar)
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | tab complete | esc back"
	case ViewMissionCreate, ViewMissionEdit:
		return "enter submit | esc cancel"
	case ViewDetail:
		return "esc back | x complete | e edit | enter track | d delete | j/k scroll"
	}
	if m.missionList.Searching() {
		return "enter search | esc clear"
	}

	hints := "q quit | ? help | n new | x complete | enter track | tab filter"
	if n := len(m.notes); n > 0 {
		hints += fmt.Sprintf(" | c dismiss (%d)", n)
	}
	return hints
}

// executeCommand runs a parsed palette command.
func (m *Model) executeCommand(cmd command.Command) tea.Cmd {
	switch cmd.Name {
	case command.New:
		return m.openCreate()
	case command.Complete, command.Delete, command.Track:
		sel, ok := m.missionList.Selected()
		if !ok {
			return nil
		}
		switch cmd.Name {
		case command.Complete:
			return m.completeMission(sel.ID)
		case command.Delete:
			return m.deleteMission(sel.ID)
		default:
			return func() tea.Msg { return missionlist.TrackMsg{ID: sel.ID} }
		}
	case command.Untrack:
		return m.untrack()
	case command.Filter:
		return m.missionList.SetFilter(model.ParseFilter(cmd.Arg))
	case command.Check:
		return m.triggerCheck()
	case command.Quit:
		return m.quit()
	default:
		return nil
	}
}

func opName(op missionOp) string {
	switch op {
	case opAdd:
		return "adding mission"
	case opComplete:
		return "completing mission"
	case opDelete:
		return "deleting mission"
	case opUpdate:
		return "updating mission"
	default:
		return "checking overdue missions"
	}
}
