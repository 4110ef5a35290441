package missionlist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/nhle/mission-tracker/internal/mission"
	"github.com/nhle/mission-tracker/internal/model"
	"github.com/nhle/mission-tracker/internal/theme"
)

// MissionItem wraps a model.Mission so it can be used in a bubbles/list.
type MissionItem struct {
	Mission model.Mission
}

// FilterValue returns the string used for fuzzy filtering.
func (i MissionItem) FilterValue() string { return i.Mission.Title }

// Title returns the mission title for the list.
func (i MissionItem) Title() string { return i.Mission.Title }

// Description returns a short summary line for the list.
func (i MissionItem) Description() string {
	return strings.Join([]string{
		string(i.Mission.Priority),
		string(i.Mission.Status),
		humanize.Time(i.Mission.CreatedAt),
	}, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering mission rows.
type ItemDelegate struct {
	// highlights and trackedID are shared by reference with the list Model
	// so updates are visible without rebuilding the delegate.
	highlights map[string]time.Time
	trackedID  *string
	now        func() time.Time
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single mission row.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	mi, ok := item.(MissionItem)
	if !ok {
		return
	}
	fmt.Fprint(w, d.renderLine(mi.Mission, index == m.Index()))
}

func (d ItemDelegate) renderLine(ms model.Mission, isSelected bool) string {
	now := d.now()

	tracked := " "
	if d.trackedID != nil && *d.trackedID == ms.ID {
		tracked = "◎"
	}

	line := fmt.Sprintf("%s %s %s %s %s%s",
		tracked,
		statusIcon(ms.Status),
		theme.PriorityStyle(ms.Priority).Render(priorityLabel(ms.Priority)),
		theme.StatusStyle(ms.Status).Render(string(ms.Status)),
		ms.Title,
		theme.MutedStyle.Render(timing(ms, now)),
	)

	switch {
	case d.highlighted(ms.ID, now):
		line = theme.HighlightStyle.Render(line + "  ✦ just completed")
	case ms.IsCompleted():
		line = theme.MutedStyle.Render(line)
	}

	if isSelected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

func (d ItemDelegate) highlighted(id string, now time.Time) bool {
	until, ok := d.highlights[id]
	return ok && now.Before(until)
}

// timing describes the mission's deadline relative to now.
func timing(ms model.Mission, now time.Time) string {
	switch {
	case ms.IsCompleted() && ms.CompletedAt != nil:
		return "  completed " + humanize.RelTime(*ms.CompletedAt, now, "ago", "from now")
	case ms.IsOverdue() && ms.TargetAt != nil:
		return "  overdue by " + mission.FormatOverdue(*ms.TargetAt, now)
	case ms.TargetAt != nil:
		return "  due " + humanize.RelTime(*ms.TargetAt, now, "ago", "from now")
	default:
		return ""
	}
}

func statusIcon(s model.Status) string {
	switch s {
	case model.StatusCompleted:
		return "✓"
	case model.StatusOverdue:
		return "!"
	default:
		return "○"
	}
}

// priorityLabel returns a short label for the given priority.
func priorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "HI"
	case model.PriorityMedium:
		return "MD"
	case model.PriorityLow:
		return "LO"
	default:
		return "??"
	}
}
