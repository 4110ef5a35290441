package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Command
		wantErr bool
	}{
		{in: "new", want: Command{Name: New}},
		{in: "  Complete ", want: Command{Name: Complete}},
		{in: "filter overdue", want: Command{Name: Filter, Arg: "overdue"}},
		{in: "filter", wantErr: true},
		{in: "filter soon", wantErr: true},
		{in: "delete everything", wantErr: true},
		{in: "launch", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnterEmitsCommand(t *testing.T) {
	m := NewModel(60, 10)
	for _, r := range "check" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CommandMsg{Name: Check}, cmd())
}

func TestEnterReportsParseError(t *testing.T) {
	m := NewModel(60, 10)
	for _, r := range "warp" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, ok := cmd().(ErrorMsg)
	assert.True(t, ok)
}

func TestSuggestionsCoverFilters(t *testing.T) {
	s := suggestions()
	assert.Contains(t, s, "filter completed")
	assert.Contains(t, s, "quit")
	assert.NotContains(t, s, "filter")
}
