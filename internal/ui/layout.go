package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mission-tracker/internal/theme"
)

// minSidebarWidth is the narrowest the countdown/stats column gets.
const minSidebarWidth = 34

// Layout splits the terminal into a header, a mission list on the left, a
// sidebar with the countdown and dashboard on the right, and a status bar.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentHeight returns the height available between header and status bar.
func (l Layout) ContentHeight() int {
	h := l.Height - l.HeaderHeight - l.StatusBarHeight
	if h < 0 {
		return 0
	}
	return h
}

// SidebarWidth returns the width of the right-hand column.
func (l Layout) SidebarWidth() int {
	w := l.Width / 3
	if w < minSidebarWidth {
		w = minSidebarWidth
	}
	if w > l.Width {
		w = l.Width
	}
	return w
}

// ListWidth returns the width left for the mission list.
func (l Layout) ListWidth() int {
	w := l.Width - l.SidebarWidth()
	if w < 0 {
		return 0
	}
	return w
}

// RenderHeader renders the top bar: the title on the left, the clock on
// the right, filled to the full width.
func (l Layout) RenderHeader(title, clock string) string {
	titleRendered := theme.HeaderStyle.Render(title)
	clockRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(clock)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		l.fill(theme.HeaderStyle, l.Width-lipgloss.Width(titleRendered)-lipgloss.Width(clockRendered)),
		clockRendered,
	)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		rendered,
		l.fill(theme.StatusBarStyle, l.Width-lipgloss.Width(rendered)),
	)
}

func (l Layout) fill(style lipgloss.Style, gap int) string {
	if gap < 0 {
		gap = 0
	}
	return lipgloss.NewStyle().
		Width(gap).
		Background(style.GetBackground()).
		Render("")
}

// RenderBody places the list and the sidebar side by side.
func (l Layout) RenderBody(list, sidebar string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, list, sidebar)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(header, content, statusBar string) string {
	content = lipgloss.NewStyle().
		Height(l.ContentHeight()).
		MaxHeight(l.ContentHeight()).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}
