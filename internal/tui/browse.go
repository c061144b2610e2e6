// ABOUTME: Interactive range browser built on the headless picker
// ABOUTME: Presets menu with cursor, stepping through periods, and a selection result
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harper/daterange/internal/daterange"
	"github.com/harper/daterange/internal/picker"
)

type browseKeys struct {
	Up       key.Binding
	Down     key.Binding
	Apply    key.Binding
	Previous key.Binding
	Next     key.Binding
	Today    key.Binding
	Confirm  key.Binding
	Quit     key.Binding
}

var keys = browseKeys{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Apply:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "apply preset")),
	Previous: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
	Next:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
	Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	Confirm:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// BrowseModel lets the user pick a range from the preset menu and step it.
type BrowseModel struct {
	picker    *picker.Picker
	presets   []daterange.Range
	format    daterange.Formatter
	cursor    int
	confirmed bool
	quitting  bool
}

// NewBrowseModel wraps p. Menu entries use p's hour shift.
func NewBrowseModel(p *picker.Picker, f daterange.Formatter) BrowseModel {
	m := BrowseModel{
		picker:  p,
		presets: daterange.FlatPresets(p.HourShift()),
		format:  f,
	}
	for i, r := range m.presets {
		if p.Resolver().Equal(r, p.Range()) {
			m.cursor = i
			break
		}
	}
	return m
}

// Init implements tea.Model.
func (m BrowseModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(kmsg, keys.Confirm):
		m.confirmed = true
		return m, tea.Quit
	case key.Matches(kmsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.picker.SelectPreset(m.presets[m.cursor])
	case key.Matches(kmsg, keys.Down):
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
		m.picker.SelectPreset(m.presets[m.cursor])
	case key.Matches(kmsg, keys.Apply):
		m.picker.SelectPreset(m.presets[m.cursor])
	case key.Matches(kmsg, keys.Previous):
		if m.picker.PreviousAllowed() {
			m.picker.Previous()
		}
	case key.Matches(kmsg, keys.Next):
		if m.picker.NextAllowed() {
			m.picker.Next()
		}
	case key.Matches(kmsg, keys.Today):
		m.picker.SelectToday()
	}
	return m, nil
}

// View implements tea.Model.
func (m BrowseModel) View() string {
	var b strings.Builder
	res := m.picker.Resolver()

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   DATERANGE"))
	b.WriteString(titleStyle.Render(" - " + m.picker.Label(m.format)))
	b.WriteString("\n")
	start, end := res.Bounds(m.picker.Range())
	b.WriteString(dimStyle.Render(fmt.Sprintf("   %s .. %s", start.Format("2006-01-02 15:04:05"), end.Format("2006-01-02 15:04:05"))))
	b.WriteString("\n\n")

	for i, r := range m.presets {
		title, _ := r.Title()
		line := "  " + title
		switch {
		case i == m.cursor:
			line = cursorStyle.Render("> " + title)
		case res.Equal(r, m.picker.Range()):
			line = selectedStyle.Render("  " + title)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	var help []string
	for _, k := range []key.Binding{keys.Up, keys.Down, keys.Previous, keys.Next, keys.Today, keys.Confirm, keys.Quit} {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString(dimStyle.Render(strings.Join(help, " • ")))
	b.WriteString("\n")
	return b.String()
}

// Range returns the current selection.
func (m BrowseModel) Range() daterange.Range {
	return m.picker.Range()
}

// Confirmed reports whether the user accepted the selection.
func (m BrowseModel) Confirmed() bool {
	return m.confirmed && !m.quitting
}
