package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/fixbuttons/model"
)

type fakeRunner struct {
	summary model.Summary
	err     error
}

func (f fakeRunner) Execute() (model.Summary, error) {
	return f.summary, f.err
}

func TestRunAppSummary(t *testing.T) {
	m := New(fakeRunner{summary: model.Summary{
		Path:     "page.tsx",
		Stats:    model.Stats{ClassReplacements: 2, IconReplacements: 2, LinesRemoved: 2},
		Modified: []string{"page.tsx"},
		Message:  "Done!",
	}})

	updated, cmd := m.Update(m.runApp())
	require.NotNil(t, cmd)

	view := updated.View()
	assert.Contains(t, view, "page.tsx")
	assert.Contains(t, view, "2 class attribute(s), 2 icon(s), 2 \"Edit\" line(s)")
	assert.Contains(t, view, "Done!")
	assert.NoError(t, updated.(Model).Err())
}

func TestRunAppError(t *testing.T) {
	m := New(fakeRunner{err: errors.New("failed to read page.tsx")})

	updated, _ := m.Update(m.runApp())

	assert.Contains(t, updated.View(), "failed to read page.tsx")
	assert.EqualError(t, updated.(Model).Err(), "failed to read page.tsx")
}

func TestQuitKey(t *testing.T) {
	m := New(fakeRunner{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestEmptySummary(t *testing.T) {
	m := New(fakeRunner{})

	updated, _ := m.Update(summaryMsg{})

	assert.Contains(t, updated.View(), "Nothing to do.")
}
