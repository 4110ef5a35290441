// Package countdownpanel renders the countdown for the tracked mission or,
// when nothing is tracked, the goal date.
package countdownpanel

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mission-tracker/internal/countdown"
	"github.com/nhle/mission-tracker/internal/theme"
)

// Target is what the panel counts down to.
type Target struct {
	Label string
	At    *time.Time
}

// View renders the panel at the given width.
func View(target Target, tl countdown.TimeLeft, width int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		Render("Countdown")

	label := theme.MutedStyle.Render(target.Label)

	var body string
	switch {
	case target.At == nil:
		body = theme.MutedStyle.Render("No target date set.")
	case tl.Overdue:
		body = theme.UrgencyStyle(countdown.LevelOverdue).Render("Mission is overdue!")
	default:
		style := theme.UrgencyStyle(countdown.Urgency(tl))
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			unit(style, tl.Days, "days"),
			unit(style, tl.Hours, "hrs"),
			unit(style, tl.Minutes, "min"),
			unit(style, tl.Seconds, "sec"),
		)
	}

	return theme.PanelStyle.
		Width(width - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, label, "", body))
}

func unit(style lipgloss.Style, n int, name string) string {
	return lipgloss.JoinVertical(lipgloss.Center,
		style.Render(fmt.Sprintf(" %02d ", n)),
		theme.MutedStyle.Render(name),
	)
}
