// ABOUTME: Interactive TUI wizard for configuring daterange.
// ABOUTME: 5-step bubbletea model collecting backend, data directory, timezone, week start, and day start hour.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Step represents the current wizard step.
type Step int

const (
	StepBackend Step = iota
	StepDataDir
	StepTimezone
	StepWeekStart
	StepHourShift
	StepDone
)

const inputSteps = int(StepDone)

// SetupValues are the settings the wizard collects.
type SetupValues struct {
	Backend   string
	DataDir   string
	Timezone  string
	WeekStart string
	HourShift int
}

type stepSpec struct {
	title    string
	hint     string
	fallback func() string
	// normalize returns the cleaned value or false when it is not acceptable.
	normalize func(string) (string, bool)
}

var steps = [inputSteps]stepSpec{
	StepBackend: {
		title:    "Storage Backend",
		hint:     "(sqlite or yaml, press Enter for default)",
		fallback: func() string { return "sqlite" },
		normalize: func(v string) (string, bool) {
			v = strings.ToLower(v)
			return v, v == "sqlite" || v == "yaml"
		},
	},
	StepDataDir: {
		title:    "Data Directory",
		hint:     fmt.Sprintf("(press Enter for default: %s)", defaultDataDir()),
		fallback: defaultDataDir,
		normalize: func(v string) (string, bool) {
			return v, true
		},
	},
	StepTimezone: {
		title:    "Time Zone",
		hint:     "(IANA name like Europe/Berlin, press Enter for the system zone)",
		fallback: func() string { return "Local" },
		normalize: func(v string) (string, bool) {
			_, err := time.LoadLocation(v)
			return v, err == nil
		},
	},
	StepWeekStart: {
		title:    "First Day of the Week",
		hint:     "(sunday or monday, press Enter for sunday)",
		fallback: func() string { return "sunday" },
		normalize: func(v string) (string, bool) {
			v = strings.ToLower(v)
			return v, v == "sunday" || v == "monday"
		},
	},
	StepHourShift: {
		title:    "Day Start Hour",
		hint:     "(0-23, the hour a new day begins; press Enter for midnight)",
		fallback: func() string { return "0" },
		normalize: func(v string) (string, bool) {
			h, err := strconv.Atoi(v)
			return strconv.Itoa(h), err == nil && h >= 0 && h <= 23
		},
	},
}

// SetupModel is the bubbletea model for the setup wizard.
type SetupModel struct {
	step     Step
	inputs   [inputSteps]textinput.Model
	invalid  bool
	quitting bool
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// defaultDataDir returns the default XDG data directory for daterange.
func defaultDataDir() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "daterange")
}

// NewSetupModel creates a new setup wizard model, pre-filling with existing config values.
func NewSetupModel(current SetupValues) SetupModel {
	prefill := [inputSteps]string{
		StepBackend:   current.Backend,
		StepDataDir:   current.DataDir,
		StepTimezone:  current.Timezone,
		StepWeekStart: current.WeekStart,
	}
	if current.HourShift != 0 {
		prefill[StepHourShift] = strconv.Itoa(current.HourShift)
	}

	var m SetupModel
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = steps[i].fallback()
		in.Width = 50
		if prefill[i] != "" {
			in.SetValue(prefill[i])
		}
		m.inputs[i] = in
	}
	m.inputs[StepBackend].Focus()
	return m
}

// Init implements tea.Model.
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			return m, tea.Quit
		}

		if m.step < StepDone {
			return m.updateInput(msg)
		}
	default:
		// Forward other messages (e.g. cursor blink) to the active input
		if m.step < StepDone {
			idx := int(m.step)
			var cmd tea.Cmd
			m.inputs[idx], cmd = m.inputs[idx].Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		return m.handleEnter()
	}

	m.invalid = false
	idx := int(m.step)
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

func (m SetupModel) handleEnter() (tea.Model, tea.Cmd) {
	idx := int(m.step)
	spec := steps[idx]

	val := strings.TrimSpace(m.inputs[idx].Value())
	if val == "" {
		val = spec.fallback()
	}
	val, ok := spec.normalize(val)
	if !ok {
		m.invalid = true
		return m, nil
	}
	m.invalid = false
	m.inputs[idx].SetValue(val)
	m.inputs[idx].Blur()

	m.step++
	if m.step == StepDone {
		return m, tea.Quit
	}
	m.inputs[m.step].Focus()
	return m, textinput.Blink
}

// View implements tea.Model.
func (m SetupModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   DATERANGE"))
	b.WriteString(titleStyle.Render(" - Setup"))
	b.WriteString("\n\n")
	b.WriteString("Configure storage and calendar preferences.\n\n")

	if m.step == StepDone {
		b.WriteString(successStyle.Render("Setup complete! Configuration will be saved."))
		b.WriteString("\n\n")
		for i := range m.inputs {
			b.WriteString(fmt.Sprintf("  %-22s %s\n", steps[i].title+":", m.inputs[i].Value()))
		}
		b.WriteString("\n")
		return b.String()
	}

	for i := 0; i < int(m.step); i++ {
		b.WriteString(fmt.Sprintf("  %s: %s\n", steps[i].title, m.inputs[i].Value()))
	}
	if m.step > 0 {
		b.WriteString("\n")
	}

	idx := int(m.step)
	b.WriteString(stepStyle.Render(fmt.Sprintf("Step %d of %d: %s", idx+1, inputSteps, steps[idx].title)))
	b.WriteString("\n")
	b.WriteString(promptStyle.Render(steps[idx].hint))
	b.WriteString("\n")
	b.WriteString(m.inputs[idx].View())
	b.WriteString("\n")
	if m.invalid {
		b.WriteString(errorStyle.Render("That value is not valid here."))
		b.WriteString("\n")
	}

	return b.String()
}

// Result returns the entered values.
func (m SetupModel) Result() SetupValues {
	h, _ := strconv.Atoi(m.inputs[StepHourShift].Value())
	tz := m.inputs[StepTimezone].Value()
	if tz == "Local" {
		tz = ""
	}
	return SetupValues{
		Backend:   m.inputs[StepBackend].Value(),
		DataDir:   m.inputs[StepDataDir].Value(),
		Timezone:  tz,
		WeekStart: m.inputs[StepWeekStart].Value(),
		HourShift: h,
	}
}

// ShouldSave returns true if the wizard completed and the user did not cancel.
func (m SetupModel) ShouldSave() bool {
	return m.step == StepDone && !m.quitting
}
