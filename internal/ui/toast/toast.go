// Package toast renders the active notifications.
package toast

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mission-tracker/internal/model"
	"github.com/nhle/mission-tracker/internal/theme"
)

// maxVisible caps how many toasts stack on screen.
const maxVisible = 3

// View renders notifications oldest first, keeping the newest maxVisible.
func View(notes []model.Notification, width int) string {
	if len(notes) == 0 {
		return ""
	}
	if len(notes) > maxVisible {
		notes = notes[len(notes)-maxVisible:]
	}

	rendered := make([]string, 0, len(notes))
	for _, n := range notes {
		title := lipgloss.NewStyle().Bold(true).Render(icon(n.Type) + " " + n.Title)
		rendered = append(rendered, theme.NotificationStyle(n.Type).
			Width(width-2).
			Render(lipgloss.JoinVertical(lipgloss.Left, title, n.Message)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

func icon(t model.NotificationType) string {
	switch t {
	case model.NotificationSuccess:
		return "✓"
	case model.NotificationWarning:
		return "⚠"
	case model.NotificationOverdue:
		return "⏰"
	default:
		return "🚀"
	}
}
