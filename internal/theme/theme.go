package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mission-tracker/internal/countdown"
	"github.com/nhle/mission-tracker/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorCyan    = lipgloss.AdaptiveColor{Dark: "#22D3EE", Light: "#0E7490"}
	ColorPurple  = lipgloss.AdaptiveColor{Dark: "#A78BFA", Light: "#6D28D9"}
	ColorPink    = lipgloss.AdaptiveColor{Dark: "#F472B6", Light: "#BE185D"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#343A52", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#4C4F7A", Light: "#E2E8F0"}
	ColorPrimary = ColorPurple
)

// Styles shared across views. Use rebuilds them for the selected theme.
var (
	HeaderStyle       lipgloss.Style
	StatusBarStyle    lipgloss.Style
	PanelStyle        lipgloss.Style
	ListItemStyle     lipgloss.Style
	SelectedItemStyle lipgloss.Style
	HighlightStyle    lipgloss.Style
	HelpStyle         lipgloss.Style
	BorderStyle       lipgloss.Style
	MutedStyle        lipgloss.Style
)

func init() { Use("cosmic") }

// Use switches the palette. "plain" drops the accent colors; any other
// name selects the default cosmic palette.
func Use(name string) {
	if name == "plain" {
		ColorPrimary = ColorWhite
	} else {
		ColorPrimary = ColorPurple
	}

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWhite).
		Background(ColorPrimary).
		Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorWhite).
		Background(ColorSubtle).
		Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	ListItemStyle = lipgloss.NewStyle().
		PaddingLeft(2)

	SelectedItemStyle = lipgloss.NewStyle().
		PaddingLeft(1).
		Bold(true).
		Foreground(ColorPrimary).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(ColorPrimary)

	HighlightStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorGreen)

	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)

	BorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	MutedStyle = lipgloss.NewStyle().Foreground(ColorGray)
}

// StatusStyle returns a color-coded badge style for a mission status.
func StatusStyle(status model.Status) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch status {
	case model.StatusActive:
		return base.Foreground(ColorCyan)
	case model.StatusCompleted:
		return base.Foreground(ColorGreen)
	case model.StatusOverdue:
		return base.Foreground(ColorRed)
	default:
		return base.Foreground(ColorGray)
	}
}

// PriorityStyle returns a color-coded style for a mission priority.
func PriorityStyle(p model.Priority) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch p {
	case model.PriorityHigh:
		return base.Foreground(ColorRed)
	case model.PriorityMedium:
		return base.Foreground(ColorYellow)
	case model.PriorityLow:
		return base.Foreground(ColorCyan)
	default:
		return base.Foreground(ColorGray)
	}
}

// UrgencyStyle colors a countdown by how close it is.
func UrgencyStyle(level countdown.Level) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch level {
	case countdown.LevelCalm:
		return base.Foreground(ColorCyan)
	case countdown.LevelFocused:
		return base.Foreground(ColorPurple)
	case countdown.LevelUrgent:
		return base.Foreground(ColorPink)
	case countdown.LevelOverdue:
		return base.Foreground(ColorRed)
	default:
		return base.Foreground(ColorGray)
	}
}

// NotificationStyle returns the toast style for a notification type.
func NotificationStyle(t model.NotificationType) lipgloss.Style {
	base := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())

	switch t {
	case model.NotificationSuccess:
		return base.BorderForeground(ColorGreen)
	case model.NotificationWarning:
		return base.BorderForeground(ColorYellow)
	case model.NotificationOverdue:
		return base.BorderForeground(ColorRed)
	default:
		return base.BorderForeground(ColorCyan)
	}
}
