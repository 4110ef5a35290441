package missionform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mission-tracker/internal/mission"
	"github.com/nhle/mission-tracker/internal/model"
	"github.com/nhle/mission-tracker/internal/theme"
)

// TargetLayout is the accepted format for the target date field.
const TargetLayout = "2006-01-02 15:04"

// CreatedMsg is dispatched when a new mission is submitted.
type CreatedMsg struct {
	Mission mission.NewMission
}

// UpdatedMsg is dispatched when an existing mission is edited.
type UpdatedMsg struct {
	ID    string
	Patch model.MissionPatch
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	priority    model.Priority
	target      string
}

// Model is the Bubble Tea model for the mission create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   string
	loc      *time.Location
	width    int
	height   int
}

// New creates a new mission form model. Target dates are read in loc.
func New(loc *time.Location, width, height int) Model {
	if loc == nil {
		loc = time.Local
	}
	return Model{
		fb:     &formBindings{priority: model.PriorityMedium},
		loc:    loc,
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for launching a new mission.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = ""
	*m.fb = formBindings{priority: model.PriorityMedium}
	m.form = m.build()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing mission.
func (m *Model) StartEdit(ms model.Mission) tea.Cmd {
	m.editMode = true
	m.editID = ms.ID
	*m.fb = formBindings{
		title:       ms.Title,
		description: ms.Description,
		priority:    ms.Priority.OrDefault(),
	}
	if ms.TargetAt != nil {
		m.fb.target = ms.TargetAt.In(m.loc).Format(TargetLayout)
	}
	m.form = m.build()
	return m.form.Init()
}

// Update handles messages for the mission form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		return m, m.submit()
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the mission form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "Launch Mission"
	if m.editMode {
		titleText = "Edit Mission"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(titleStyle.Render(titleText) + "\n" + m.form.View())
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) build() *huh.Form {
	priorities := make([]huh.Option[model.Priority], 0, len(model.Priorities))
	for i := len(model.Priorities) - 1; i >= 0; i-- {
		p := model.Priorities[i]
		priorities = append(priorities, huh.NewOption(strings.ToUpper(string(p[:1]))+string(p[1:]), p))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What's the mission?").
				Value(&m.fb.title).
				Validate(validateRequired("Title")),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details...").
				Value(&m.fb.description),
			huh.NewSelect[model.Priority]().
				Title("Priority").
				Options(priorities...).
				Value(&m.fb.priority),
			huh.NewInput().
				Title("Target").
				Placeholder("YYYY-MM-DD HH:MM (optional)").
				Value(&m.fb.target).
				Validate(m.validateTarget),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) submit() tea.Cmd {
	title := strings.TrimSpace(m.fb.title)
	description := strings.TrimSpace(m.fb.description)
	priority := m.fb.priority
	target, _ := ParseTarget(m.fb.target, m.loc)

	if m.editMode {
		patch := model.MissionPatch{
			Title:       &title,
			Description: &description,
			Priority:    &priority,
			TargetAt:    target,
			ClearTarget: target == nil,
		}
		id := m.editID
		return func() tea.Msg { return UpdatedMsg{ID: id, Patch: patch} }
	}

	in := mission.NewMission{
		Title:       title,
		Description: description,
		Priority:    priority,
		TargetAt:    target,
	}
	return func() tea.Msg { return CreatedMsg{Mission: in} }
}

// ParseTarget reads an optional target date in loc. Blank input yields nil.
func ParseTarget(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(TargetLayout, s, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid target, use YYYY-MM-DD HH:MM")
	}
	return &t, nil
}

func (m Model) validateTarget(s string) error {
	_, err := ParseTarget(s, m.loc)
	return err
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
