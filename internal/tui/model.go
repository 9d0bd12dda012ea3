// Package tui provides the interactive Bubble Tea form for editing reference styles.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yacobolo/refstyles/internal/refstyles"
)

// Column identifies an editable field of a style row.
type Column int

// Editable columns, in tab order
const (
	ColValue Column = iota
	ColSelector
	ColCharacter
	ColColor
	numColumns
)

var columnTitles = [numColumns]string{"Value", "Selector", "Char", "Color"}

var columnWidths = [numColumns]int{24, 10, 6, 10}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	selectedStyle = cellStyle.Reverse(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

// Model is the Bubble Tea model for the style form. Every edit goes
// through refstyles.Form so it is persisted and re-rendered immediately.
type Model struct {
	form *refstyles.Form
	ids  []string

	row     int
	col     Column
	editing bool
	input   textinput.Model

	keys     KeyMap
	help     help.Model
	showHelp bool
	useColor bool

	err    error
	closed bool
}

// New creates a form model over form.
func New(form *refstyles.Form, useColor bool) Model {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 256

	return Model{
		form:     form,
		ids:      form.IDs(),
		input:    input,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		useColor: useColor,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Closed reports whether the user dismissed the form.
func (m Model) Closed() bool {
	return m.closed
}

// Err returns the last error raised by a form operation.
func (m Model) Err() error {
	return m.err
}

// Selected returns the id of the highlighted row, if any.
func (m Model) Selected() (string, bool) {
	if m.row < 0 || m.row >= len(m.ids) {
		return "", false
	}
	return m.ids[m.row], true
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.updateEditing(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Close):
		m.closed = true
		m.err = m.form.Close()
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.row < len(m.ids)-1 {
			m.row++
		}

	case key.Matches(keyMsg, m.keys.NextCol):
		m.col = (m.col + 1) % numColumns

	case key.Matches(keyMsg, m.keys.PrevCol):
		m.col = (m.col + numColumns - 1) % numColumns

	case key.Matches(keyMsg, m.keys.Left):
		if m.col == ColSelector {
			m.cycleSelector(refstyles.Selector.Prev)
		}

	case key.Matches(keyMsg, m.keys.Right):
		if m.col == ColSelector {
			m.cycleSelector(refstyles.Selector.Next)
		}

	case key.Matches(keyMsg, m.keys.Edit):
		if m.col == ColSelector {
			m.cycleSelector(refstyles.Selector.Next)
			break
		}
		return m.startEditing()

	case key.Matches(keyMsg, m.keys.Add):
		id, err := m.form.Add()
		m.err = err
		m.refresh(id)

	case key.Matches(keyMsg, m.keys.Delete):
		if id, ok := m.Selected(); ok {
			m.err = m.form.Delete(id)
			m.refresh("")
		}

	case key.Matches(keyMsg, m.keys.ShowHelp):
		m.showHelp = !m.showHelp
	}

	return m, nil
}

func (m Model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Confirm):
			m.editing = false
			m.input.Blur()
			m.applyInput(m.input.Value())
			return m, nil
		case key.Matches(keyMsg, m.keys.Cancel):
			m.editing = false
			m.input.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) startEditing() (tea.Model, tea.Cmd) {
	id, ok := m.Selected()
	if !ok {
		return m, nil
	}
	entry, _ := m.form.Get(id)

	switch m.col {
	case ColValue:
		m.input.SetValue(entry.Value)
	case ColCharacter:
		m.input.SetValue(entry.Character)
	case ColColor:
		m.input.SetValue(entry.Color)
	}
	m.input.CursorEnd()
	m.editing = true
	return m, m.input.Focus()
}

func (m *Model) applyInput(text string) {
	id, ok := m.Selected()
	if !ok {
		return
	}
	entry, _ := m.form.Get(id)

	switch m.col {
	case ColValue:
		entry.Value = text
	case ColCharacter:
		entry.Character = text
	case ColColor:
		entry.Color = strings.TrimSpace(text)
	}
	m.err = m.form.Update(id, entry)
}

func (m *Model) cycleSelector(step func(refstyles.Selector) refstyles.Selector) {
	id, ok := m.Selected()
	if !ok {
		return
	}
	entry, _ := m.form.Get(id)
	entry.Selector = step(entry.Selector)
	m.err = m.form.Update(id, entry)
}

// refresh reloads the row ids, keeping the cursor on focus when given.
func (m *Model) refresh(focus string) {
	m.ids = m.form.IDs()
	if focus != "" {
		for i, id := range m.ids {
			if id == focus {
				m.row = i
				return
			}
		}
	}
	if m.row >= len(m.ids) {
		m.row = len(m.ids) - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.closed {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Reference styles"))
	b.WriteString("\n\n")

	header := make([]string, numColumns)
	for c := ColValue; c < numColumns; c++ {
		header[c] = cellStyle.Width(columnWidths[c]).Render(columnTitles[c])
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	if len(m.ids) == 0 {
		b.WriteString(emptyStyle.Render("  no styles, press a to add one"))
		b.WriteString("\n")
	}

	for i, id := range m.ids {
		entry, _ := m.form.Get(id)
		cells := make([]string, numColumns)
		for c := ColValue; c < numColumns; c++ {
			text := m.cellText(entry, c)
			if i == m.row && c == m.col && m.editing {
				text = m.input.View()
			}
			style := cellStyle
			if i == m.row && c == m.col {
				style = selectedStyle
			}
			cells[c] = style.Width(columnWidths[c]).Render(text)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) cellText(entry refstyles.StyleEntry, c Column) string {
	switch c {
	case ColValue:
		return fmt.Sprintf("%q", entry.Value)
	case ColSelector:
		return entry.Selector.Name()
	case ColCharacter:
		return entry.Character
	case ColColor:
		if entry.Color == "" {
			return "-"
		}
		return refstyles.Swatch(entry.Color, entry.Color, m.useColor)
	}
	return ""
}
