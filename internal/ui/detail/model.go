package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nhle/mission-tracker/internal/keys"
	"github.com/nhle/mission-tracker/internal/mission"
	"github.com/nhle/mission-tracker/internal/model"
	"github.com/nhle/mission-tracker/internal/theme"
)

// Actions a detail view can request.
const (
	ActionComplete = "complete"
	ActionEdit     = "edit"
	ActionTrack    = "track"
	ActionDelete   = "delete"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// ActionMsg signals the parent to act on the displayed mission.
type ActionMsg struct {
	Action    string
	MissionID string
}

// Model is the mission detail view component.
type Model struct {
	mission  *model.Mission
	viewport viewport.Model
	keys     *keys.KeyMap
	now      func() time.Time
	width    int
	height   int
}

// New creates a new detail view model.
func New(keys *keys.KeyMap, now func() time.Time, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     keys,
		now:      now,
		width:    width,
		height:   height,
	}
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }
		case key.Matches(msg, m.keys.Complete):
			return m, m.action(ActionComplete)
		case key.Matches(msg, m.keys.Edit):
			return m, m.action(ActionEdit)
		case key.Matches(msg, m.keys.Track):
			return m, m.action(ActionTrack)
		case key.Matches(msg, m.keys.Delete):
			return m, m.action(ActionDelete)
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) action(name string) tea.Cmd {
	if m.mission == nil {
		return nil
	}
	id := m.mission.ID
	return func() tea.Msg { return ActionMsg{Action: name, MissionID: id} }
}

// View renders the detail view.
func (m Model) View() string {
	if m.mission == nil {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No mission selected")
	}
	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	ms := m.mission
	if ms == nil {
		return ""
	}
	now := m.now()

	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(ms.Title))

	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
		theme.StatusStyle(ms.Status).Render(strings.ToUpper(string(ms.Status))),
		"  ",
		theme.PriorityStyle(ms.Priority).Render(string(ms.Priority)+" priority"),
	), "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Width(11)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)
	row := func(label, value string) string {
		return metaStyle.Render(label) + valStyle.Render(value)
	}

	sections = append(sections, row("Created:", stamp(ms.CreatedAt, now)))
	if ms.TargetAt != nil {
		sections = append(sections, row("Target:", stamp(*ms.TargetAt, now)))
	} else {
		sections = append(sections, row("Target:", "none"))
	}
	if ms.IsOverdue() && ms.TargetAt != nil {
		sections = append(sections, row("Overdue:", mission.FormatOverdue(*ms.TargetAt, now)))
	}
	if ms.CompletedAt != nil {
		sections = append(sections, row("Completed:", stamp(*ms.CompletedAt, now)))
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", max(min(m.width-4, 80), 1)))
	sections = append(sections, "", separator, "")

	descHeaderStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)
	sections = append(sections, descHeaderStyle.Render("Description"))

	body := ms.Description
	if body == "" {
		body = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("No description")
	}
	sections = append(sections, body)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func stamp(t, now time.Time) string {
	return fmt.Sprintf("%s (%s)",
		t.Local().Format("2006-01-02 15:04"),
		humanize.RelTime(t, now, "ago", "from now"),
	)
}

// SetMission updates the mission being displayed and re-renders.
func (m *Model) SetMission(ms *model.Mission) {
	m.mission = ms
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// Mission returns the mission on display, or nil.
func (m Model) Mission() *model.Mission { return m.mission }

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	m.viewport.SetContent(m.renderContent())
}
