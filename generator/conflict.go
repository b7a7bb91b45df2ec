package generator

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConflictResolution is the decision for a file that already exists.
type ConflictResolution int

const (
	Skip ConflictResolution = iota
	Overwrite
	ShowDiff
	Cancel
)

// ConflictStrategy decides what to do with an existing file.
type ConflictStrategy interface {
	Resolve(path string, existing, generated []byte) (ConflictResolution, error)
}

// Resolver wraps a strategy selected from CLI flags.
type Resolver struct {
	strategy ConflictStrategy
}

// NewResolver selects a strategy: force always overwrites, interactive shows
// a menu, the default skips and reports. force and interactive are mutually
// exclusive.
func NewResolver(force, interactive bool) (*Resolver, error) {
	if force && interactive {
		return nil, fmt.Errorf("--force cannot be combined with --interactive")
	}
	switch {
	case force:
		return &Resolver{strategy: forceStrategy{}}, nil
	case interactive:
		return &Resolver{strategy: &interactiveStrategy{}}, nil
	default:
		return &Resolver{strategy: skipStrategy{}}, nil
	}
}

// Resolve returns a decision for path. existing and generated are the current
// and candidate contents, used for diff display in interactive mode.
func (r *Resolver) Resolve(path string, existing, generated []byte) (ConflictResolution, error) {
	return r.strategy.Resolve(path, existing, generated)
}

type forceStrategy struct{}

func (forceStrategy) Resolve(string, []byte, []byte) (ConflictResolution, error) {
	return Overwrite, nil
}

type skipStrategy struct{}

func (skipStrategy) Resolve(string, []byte, []byte) (ConflictResolution, error) {
	return Skip, nil
}

var (
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("white")).Bold(true)
)

// interactiveStrategy shows a keyboard-driven menu. Choosing "show diff"
// loops back to the menu so the user can review before deciding.
type interactiveStrategy struct{}

func (s *interactiveStrategy) Resolve(path string, existing, generated []byte) (ConflictResolution, error) {
	for {
		model := newMenuModel(path)
		p := tea.NewProgram(model)
		final, err := p.Run()
		if err != nil {
			return Cancel, fmt.Errorf("showing conflict menu: %w", err)
		}

		result := final.(menuModel)
		if result.selected == nil {
			return Cancel, nil
		}

		if *result.selected != ShowDiff {
			return *result.selected, nil
		}

		diff := Diff(path, existing, generated)
		if diff == "" {
			fmt.Println(mutedStyle.Render("   Generated content is identical to the existing file."))
			continue
		}
		if fits(diff) {
			fmt.Println(diff)
			continue
		}
		if err := pageDiff(path, diff); err != nil {
			return Cancel, err
		}
	}
}

type menuModel struct {
	path     string
	choices  []string
	cursor   int
	selected *ConflictResolution
}

func newMenuModel(path string) menuModel {
	return menuModel{
		path: path,
		choices: []string{
			"Show diff and decide",
			"Skip (keep existing file)",
			"Overwrite (replace with generated code)",
			"Cancel operation",
		},
	}
}

func (m menuModel) Init() tea.Cmd { return nil }

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case "enter":
			resolution := [...]ConflictResolution{ShowDiff, Skip, Overwrite, Cancel}[m.cursor]
			m.selected = &resolution
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m menuModel) View() string {
	var b strings.Builder
	b.WriteString(warnStyle.Render("⚠ File exists: ") + titleStyle.Render(m.path) + "\n\n")
	b.WriteString(mutedStyle.Render("   [↑/↓] Navigate    [Enter] Select    [q] Cancel") + "\n\n")

	for i, choice := range m.choices {
		if m.cursor == i {
			b.WriteString("   " + selectedStyle.Render("> "+choice) + "\n")
		} else {
			b.WriteString("     " + choice + "\n")
		}
	}
	return b.String()
}

// pageDiff shows a long diff in a full-screen viewport.
func pageDiff(path, diff string) error {
	model := pagerModel{path: path, diff: diff}
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("showing diff: %w", err)
	}
	return nil
}

type pagerModel struct {
	path     string
	diff     string
	viewport viewport.Model
	ready    bool
}

func (m pagerModel) Init() tea.Cmd { return nil }

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			m.viewport.LineUp(1)
		case "down", "j":
			m.viewport.LineDown(1)
		case "pgup", "b":
			m.viewport.ViewUp()
		case "pgdown", "f", "space":
			m.viewport.ViewDown()
		}
	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-2)
			m.viewport.SetContent(m.diff)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 2
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m pagerModel) View() string {
	if !m.ready {
		return "Loading diff..."
	}
	header := titleStyle.Render("Diff: " + m.path)
	footer := mutedStyle.Render("[↑/↓] Scroll    [q] Return to menu")
	return header + "\n" + m.viewport.View() + "\n" + footer
}
