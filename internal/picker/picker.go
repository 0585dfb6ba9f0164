// Package picker lets the user choose one of the generated candidates.
package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Action is what the user asked to do with the chosen candidate.
type Action int

const (
	Abort Action = iota
	Commit
	Copy
)

// Choice is the outcome of a picker session.
type Choice struct {
	Index   int
	Message string
	Action  Action
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	bodyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).PaddingLeft(4)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the bubbletea model for the candidate list.
type Model struct {
	candidates []string
	cursor     int
	choice     Choice
}

func New(candidates []string) Model {
	return Model{candidates: candidates}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch k := key.String(); k {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "tab":
		if m.cursor < len(m.candidates)-1 {
			m.cursor++
		}
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if idx := int(k[0] - '1'); idx < len(m.candidates) {
			m.cursor = idx
		}
	case "enter":
		return m.finish(Commit)
	case "c", "y":
		return m.finish(Copy)
	case "q", "esc", "ctrl+c":
		m.choice = Choice{Index: -1, Action: Abort}
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) finish(action Action) (tea.Model, tea.Cmd) {
	if len(m.candidates) == 0 {
		m.choice = Choice{Index: -1, Action: Abort}
		return m, tea.Quit
	}
	m.choice = Choice{Index: m.cursor, Message: m.candidates[m.cursor], Action: action}
	return m, tea.Quit
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Pick a commit message"))
	b.WriteString("\n\n")

	for i, c := range m.candidates {
		subject, body, _ := strings.Cut(c, "\n")
		line := fmt.Sprintf("  %d. %s", i+1, subject)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line[2:]))
		} else {
			b.WriteString(normalStyle.Render(line))
		}
		b.WriteString("\n")
		if body = strings.TrimSpace(body); body != "" {
			b.WriteString(bodyStyle.Render(body))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ move • 1-3 jump • enter commit • c copy • q quit"))
	b.WriteString("\n")
	return b.String()
}

// Choice reports the selection; Action is Abort until the user decides.
func (m Model) Choice() Choice {
	return m.choice
}

// Run shows the picker on the terminal and blocks until the user decides.
func Run(candidates []string, opts ...tea.ProgramOption) (Choice, error) {
	final, err := tea.NewProgram(New(candidates), opts...).Run()
	if err != nil {
		return Choice{Index: -1, Action: Abort}, fmt.Errorf("run picker: %w", err)
	}
	return final.(Model).Choice(), nil
}
