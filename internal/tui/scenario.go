package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/researcher-life/internal/command"
	"github.com/tatianab/researcher-life/internal/scenario"
)

// scenarioModel plays the branching story mode.
type scenarioModel struct {
	machine   scenario.Machine
	textInput textinput.Model
	history   []string
	note      string
	err       error
}

func NewScenarioModel(m scenario.Machine) scenarioModel {
	ti := textinput.New()
	ti.Placeholder = "Press Enter to begin"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40
	return scenarioModel{machine: m, textInput: ti}
}

func (m scenarioModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m scenarioModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textInput.Value())
			m.textInput.Reset()
			if m.machine.Phase() == scenario.Idle {
				m.machine = m.machine.Start()
				m.textInput.Placeholder = "Choice number or name"
				return m, nil
			}
			if input == "/quit" {
				return m, tea.Quit
			}
			return m.choose(input), nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// resolveChoice maps typed input to a choice id of node.
func resolveChoice(node scenario.Node, input string) (string, bool) {
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(node.Choices) {
			return "", false
		}
		return node.Choices[n-1].ID, true
	}
	options := make([]command.Option, 0, len(node.Choices))
	for _, c := range node.Choices {
		options = append(options, command.Option{ID: c.ID, Aliases: []string{c.Label}})
	}
	id, _, ok := command.Match(options, input)
	return id, ok
}

func (m scenarioModel) choose(input string) scenarioModel {
	m.note = ""
	node, ok := m.machine.Node()
	if !ok {
		m.err = fmt.Errorf("%w: %q", scenario.ErrUnknownNode, m.machine.NodeID())
		return m
	}
	id, ok := resolveChoice(node, input)
	if !ok {
		m.note = fmt.Sprintf("No choice matches %q.", input)
		return m
	}
	next, tr, err := m.machine.Choose(id)
	if errors.Is(err, scenario.ErrUnknownChoice) {
		m.note = err.Error()
		return m
	}
	if err != nil {
		m.err = err
		return m
	}
	m.machine = next
	m.history = append(m.history, fmt.Sprintf("Week %d: %s (stamina %d, research %d)",
		tr.Before.Week, tr.Choice.Label, tr.After.Stamina, tr.After.Research))
	return m
}

func (m scenarioModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.\n", m.err)
	}
	if m.machine.Phase() == scenario.Idle {
		return "\n" + titleStyle.Render("Scenario mode") + "\n\n" +
			"Live through your first weeks one decision at a time.\n\n" +
			m.textInput.View() + "\n"
	}

	var b strings.Builder
	node, _ := m.machine.Node()
	v := m.machine.Stats()
	b.WriteString(titleStyle.Render(node.Title) + "\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("Week %d  Stamina %d  Research %d", v.Week, v.Stamina, v.Research)) + "\n\n")
	b.WriteString(gameStyle.Render(node.Description) + "\n\n")
	for i, c := range node.Choices {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, c.Label)
	}
	if m.machine.Terminal() {
		b.WriteString(helpStyle.Render("\nThe story ends here. Keep choosing or type /quit.") + "\n")
	}
	if m.note != "" {
		b.WriteString("\n" + noteStyle.Render(m.note) + "\n")
	}
	if len(m.history) > 0 {
		b.WriteString("\n" + stateStyle.Render(strings.Join(m.history, "\n")) + "\n")
	}
	return "\n" + lipgloss.JoinVertical(lipgloss.Left, b.String(), m.textInput.View()) + "\n"
}

func RunScenario(m scenario.Machine) error {
	p := tea.NewProgram(NewScenarioModel(m), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
