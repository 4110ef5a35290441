// Package dashboard renders the mission statistics panel.
package dashboard

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mission-tracker/internal/model"
	"github.com/nhle/mission-tracker/internal/theme"
)

// Model is the dashboard view.
type Model struct {
	bar   progress.Model
	stats model.Stats
	width int
}

// New creates a dashboard of the given width.
func New(width int) Model {
	bar := progress.New(progress.WithGradient("#A78BFA", "#22D3EE"))
	m := Model{bar: bar}
	m.SetWidth(width)
	return m
}

// SetStats replaces the statistics shown.
func (m *Model) SetStats(st model.Stats) { m.stats = st }

// Stats returns the statistics currently shown.
func (m Model) Stats() model.Stats { return m.stats }

// SetWidth updates the panel width.
func (m *Model) SetWidth(width int) {
	m.width = width
	m.bar.Width = width - 6
	if m.bar.Width < 10 {
		m.bar.Width = 10
	}
}

// View renders four counters and the completion bar.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		Render("Dashboard")

	counters := lipgloss.JoinHorizontal(lipgloss.Top,
		counter("Total", m.stats.Total, lipgloss.NewStyle().Foreground(theme.ColorPrimary)),
		counter("Active", m.stats.Active, theme.StatusStyle(model.StatusActive)),
		counter("Done", m.stats.Completed, theme.StatusStyle(model.StatusCompleted)),
		counter("Overdue", m.stats.Overdue, theme.StatusStyle(model.StatusOverdue)),
	)

	rate := theme.MutedStyle.Render(fmt.Sprintf("Completion rate %d%%", m.stats.CompletionRate))

	return theme.PanelStyle.
		Width(m.width - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			counters,
			"",
			rate,
			m.bar.ViewAs(float64(m.stats.CompletionRate)/100),
		))
}

func counter(label string, n int, style lipgloss.Style) string {
	return lipgloss.NewStyle().
		PaddingRight(2).
		Render(lipgloss.JoinVertical(lipgloss.Center,
			style.Bold(true).Render(fmt.Sprintf("%d", n)),
			theme.MutedStyle.Render(label),
		))
}
