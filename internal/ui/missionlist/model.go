package missionlist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mission-tracker/internal/keys"
	"github.com/nhle/mission-tracker/internal/model"
	"github.com/nhle/mission-tracker/internal/theme"
)

// Source provides the missions shown in the list.
type Source interface {
	Search(ctx context.Context, filter model.Filter, query string) ([]model.Mission, error)
}

// MissionsLoadedMsg is sent when missions have been loaded.
type MissionsLoadedMsg struct {
	Missions []model.Mission
	Err      error
}

// TrackMsg asks for the mission to drive the countdown.
type TrackMsg struct{ ID string }

// CompleteMsg asks for the mission to be completed.
type CompleteMsg struct{ ID string }

// EditMsg asks for the mission to be opened in the form.
type EditMsg struct{ ID string }

// DeleteMsg asks for the mission to be deleted.
type DeleteMsg struct{ ID string }

// Model is the mission list view component.
type Model struct {
	list        list.Model
	source      Source
	keys        *keys.KeyMap
	filter      model.Filter
	query       string
	searchMode  bool
	searchInput textinput.Model
	highlights  map[string]time.Time
	trackedID   *string
	now         func() time.Time
	width       int
	height      int
}

// New creates a new mission list model.
func New(src Source, k *keys.KeyMap, now func() time.Time, width, height int) Model {
	highlights := make(map[string]time.Time)
	tracked := new(string)

	delegate := ItemDelegate{highlights: highlights, trackedID: tracked, now: now}
	l := list.New([]list.Item{}, delegate, width, height-3)
	l.Title = "Missions"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetFilteringEnabled(false)

	si := textinput.New()
	si.Placeholder = "search missions..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		source:      src,
		keys:        k,
		filter:      model.FilterAll,
		searchInput: si,
		highlights:  highlights,
		trackedID:   tracked,
		now:         now,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the initial set of missions.
func (m Model) Init() tea.Cmd {
	return m.Load()
}

// Update handles messages for the mission list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MissionsLoadedMsg:
		if msg.Err != nil {
			return m, nil
		}
		items := make([]list.Item, len(msg.Missions))
		for i, ms := range msg.Missions {
			items[i] = MissionItem{Mission: ms}
		}
		return m, m.list.SetItems(items)

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.query = strings.TrimSpace(m.searchInput.Value())
		return m, m.Load()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.query = ""
		return m, m.Load()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Track):
		return m, m.emitForSelected(func(id string) tea.Msg { return TrackMsg{ID: id} })

	case key.Matches(msg, m.keys.Complete):
		return m, m.emitForSelected(func(id string) tea.Msg { return CompleteMsg{ID: id} })

	case key.Matches(msg, m.keys.Edit):
		return m, m.emitForSelected(func(id string) tea.Msg { return EditMsg{ID: id} })

	case key.Matches(msg, m.keys.Delete):
		return m, m.emitForSelected(func(id string) tea.Msg { return DeleteMsg{ID: id} })

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.NextFilter):
		return m, m.SetFilter(m.shiftFilter(1))

	case key.Matches(msg, m.keys.PrevFilter):
		return m, m.SetFilter(m.shiftFilter(-1))
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) emitForSelected(build func(id string) tea.Msg) tea.Cmd {
	item, ok := m.list.SelectedItem().(MissionItem)
	if !ok {
		return nil
	}
	id := item.Mission.ID
	return func() tea.Msg { return build(id) }
}

func (m Model) shiftFilter(step int) model.Filter {
	n := len(model.Filters)
	for i, f := range model.Filters {
		if f == m.filter {
			return model.Filters[((i+step)%n+n)%n]
		}
	}
	return model.FilterAll
}

// SetFilter switches the status filter and reloads.
func (m *Model) SetFilter(f model.Filter) tea.Cmd {
	m.filter = f
	m.list.ResetSelected()
	return m.Load()
}

// Filter returns the active status filter.
func (m Model) Filter() model.Filter { return m.filter }

// Selected returns the mission under the cursor.
func (m Model) Selected() (model.Mission, bool) {
	item, ok := m.list.SelectedItem().(MissionItem)
	return item.Mission, ok
}

// Highlight marks a mission as just completed until the given time.
func (m Model) Highlight(id string, until time.Time) {
	m.highlights[id] = until
}

// PruneHighlights drops highlights that ended before now.
func (m Model) PruneHighlights(now time.Time) {
	for id, until := range m.highlights {
		if !now.Before(until) {
			delete(m.highlights, id)
		}
	}
}

// Highlighted reports whether a mission is currently highlighted.
func (m Model) Highlighted(id string) bool {
	until, ok := m.highlights[id]
	return ok && m.now().Before(until)
}

// SetTracked marks which mission drives the countdown.
func (m Model) SetTracked(id string) {
	*m.trackedID = id
}

// Searching reports whether the search input has focus.
func (m Model) Searching() bool { return m.searchMode }

// View renders the filter tabs above the list.
func (m Model) View() string {
	tabs := m.renderTabs()

	var body string
	switch {
	case m.searchMode:
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		body = lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	case len(m.list.Items()) == 0:
		body = m.renderEmptyState()
	default:
		body = m.list.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabs, body)
}

func (m Model) renderTabs() string {
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		Background(theme.ColorPrimary).
		Padding(0, 1)
	inactive := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Padding(0, 1)

	tabs := make([]string, 0, len(model.Filters)+1)
	for _, f := range model.Filters {
		label := strings.ToUpper(string(f[:1])) + string(f[1:])
		if f == m.filter {
			tabs = append(tabs, active.Render(label))
		} else {
			tabs = append(tabs, inactive.Render(label))
		}
	}
	if m.query != "" {
		tabs = append(tabs, theme.HelpStyle.Render(fmt.Sprintf(" search: %q", m.query)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderEmptyState shows guidance text when no missions match.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height - 1).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.filter != model.FilterAll || m.query != "" {
		return style.Render("No matching missions.\nTry another filter.")
	}
	return style.Render("No missions yet.\n\nPress n to launch one.")
}

// Load returns a tea.Cmd that queries the source with the current filter.
func (m Model) Load() tea.Cmd {
	filter, query, src := m.filter, m.query, m.source
	return func() tea.Msg {
		missions, err := src.Search(context.Background(), filter, query)
		return MissionsLoadedMsg{Missions: missions, Err: err}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-1)
	m.searchInput.Width = width - 4
}
