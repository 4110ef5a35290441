package command

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mission-tracker/internal/model"
	"github.com/nhle/mission-tracker/internal/theme"
)

// Command names accepted by the palette.
const (
	New      = "new"
	Complete = "complete"
	Delete   = "delete"
	Track    = "track"
	Untrack  = "untrack"
	Filter   = "filter"
	Check    = "check"
	Quit     = "quit"
)

// Names lists every palette command, in the order shown in help.
var Names = []string{New, Complete, Delete, Track, Untrack, Filter, Check, Quit}

// Command is a parsed palette entry.
type Command struct {
	Name string
	Arg  string
}

// CommandMsg is emitted when the user executes a valid command.
type CommandMsg Command

// ErrorMsg is emitted when the input does not parse.
type ErrorMsg struct{ Err error }

// Parse splits input into a command and its argument. Only filter takes an
// argument, which must name a known filter.
func Parse(input string) (Command, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}

	name := fields[0]
	known := false
	for _, n := range Names {
		if n == name {
			known = true
			break
		}
	}
	if !known {
		return Command{}, fmt.Errorf("unknown command %q", name)
	}

	if name != Filter {
		if len(fields) > 1 {
			return Command{}, fmt.Errorf("%s takes no argument", name)
		}
		return Command{Name: name}, nil
	}

	if len(fields) != 2 {
		return Command{}, fmt.Errorf("usage: filter all|active|completed|overdue")
	}
	f := model.ParseFilter(fields[1])
	if string(f) != fields[1] {
		return Command{}, fmt.Errorf("unknown filter %q", fields[1])
	}
	return Command{Name: Filter, Arg: string(f)}, nil
}

// suggestions is the autocomplete list for the text input.
func suggestions() []string {
	s := make([]string, 0, len(Names)+len(model.Filters))
	for _, n := range Names {
		if n == Filter {
			for _, f := range model.Filters {
				s = append(s, Filter+" "+string(f))
			}
			continue
		}
		s = append(s, n)
	}
	return s
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	width  int
	height int
}

// NewModel creates a new command palette model.
func NewModel(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "type a command..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(suggestions())
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		raw := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		if raw == "" {
			return m, nil
		}
		cmd, err := Parse(raw)
		if err != nil {
			return m, func() tea.Msg { return ErrorMsg{Err: err} }
		}
		return m, func() tea.Msg { return CommandMsg(cmd) }
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		Render("Command Palette")

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.input.View(),
		theme.HelpStyle.Render(strings.Join(Names, " · ")),
	)

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Reset clears any half-typed input.
func (m *Model) Reset() {
	m.input.Reset()
}
