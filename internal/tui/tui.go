package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/researcher-life/internal/command"
	"github.com/tatianab/researcher-life/internal/engine"
	"github.com/tatianab/researcher-life/internal/models"
)

type sessionState int

const (
	stateName sessionState = iota
	statePlaying
	stateEvent
	stateError
)

const namePlaceholder = "Your name (up to 20 characters)"

type model struct {
	state     sessionState
	engine    *engine.Engine
	parser    *command.Parser
	names     *models.NameStore
	log       *slog.Logger
	game      models.GameState
	name      string
	pending   models.RandomEvent
	textInput textinput.Model
	viewport  viewport.Model
	err       error
	gameLog   string
	width     int
	height    int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FDBA74"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	eventStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#DB2777")).
			Padding(0, 1)
)

// Options wires the game screen to its collaborators.
type Options struct {
	Engine *engine.Engine
	Names  *models.NameStore
	Logger *slog.Logger
}

func NewModel(opts Options) model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	m := model{
		state:     stateName,
		engine:    opts.Engine,
		parser:    command.NewParser(opts.Engine.Catalog()),
		names:     opts.Names,
		log:       logger,
		game:      opts.Engine.NewGame(),
		textInput: ti,
	}
	name, ok, err := opts.Names.Load()
	if err != nil {
		logger.Warn("load researcher name", "err", err)
	}
	if ok {
		return m.begin(name)
	}
	ti.Placeholder = namePlaceholder
	ti.CharLimit = models.MaxNameLength
	m.textInput = ti
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) logWidth() int {
	return int(float64(m.width) * 0.7)
}

// begin opens the playing screen on the current game for name.
func (m model) begin(name string) model {
	m.name = name
	m.state = statePlaying
	m.gameLog = ""
	m.textInput.Placeholder = "What will you do this week? (try 'help')"
	m.textInput.CharLimit = 156
	m.textInput.Reset()
	m.appendGame(gameStyle.Bold(true).Render(fmt.Sprintf("Welcome, %s. Week 1 of your research life begins.", name)))
	m.appendGame(m.menu())
	return m
}

func (m *model) appendUser(text string) {
	m.gameLog += "\n" + userStyle.Width(m.logWidth()).Render("> "+text) + "\n"
	m.refresh()
}

func (m *model) appendGame(text string) {
	m.gameLog += "\n" + gameStyle.Width(m.logWidth()).Render(text) + "\n"
	m.refresh()
}

func (m *model) appendNote(text string) {
	m.gameLog += "\n" + noteStyle.Width(m.logWidth()).Render(text) + "\n"
	m.refresh()
}

func (m *model) refresh() {
	m.viewport.SetContent(m.gameLog)
	m.viewport.GotoBottom()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			switch m.state {
			case stateName:
				return m.submitName(m.textInput.Value())
			case stateEvent:
				return m.confirmEvent(), nil
			case statePlaying:
				input := m.textInput.Value()
				if strings.TrimSpace(input) == "" {
					return m, nil
				}
				m.textInput.Reset()
				m.appendUser(input)
				return m.handle(input)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.viewport.Width == 0 {
			m.viewport = viewport.New(m.logWidth(), msg.Height-6)
		}
		m.viewport.Width = m.logWidth()
		m.viewport.Height = msg.Height - 6
		m.refresh()
	}

	if m.state == stateName || m.state == statePlaying {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) submitName(input string) (tea.Model, tea.Cmd) {
	name, err := m.names.Save(input)
	if errors.Is(err, models.ErrInvalidName) {
		m.textInput.Placeholder = "Enter between 1 and 20 characters"
		m.textInput.Reset()
		return m, nil
	}
	if err != nil {
		m.err = err
		m.state = stateError
		return m, nil
	}
	m.log.Info("researcher named", "name", name)
	return m.begin(name), nil
}

func (m model) handle(input string) (tea.Model, tea.Cmd) {
	c, err := m.parser.Parse(input)
	if err != nil {
		m.appendNote(err.Error() + ". Type 'help' for the list of commands.")
		return m, nil
	}
	if c.Corrected {
		m.appendNote(fmt.Sprintf("(interpreted as %s %s)", c.Kind, c.Target))
	}

	switch c.Kind {
	case command.Act:
		return m.act(c.Target), nil
	case command.Buy:
		next, receipt, err := m.engine.Purchase(m.game, c.Target)
		if err != nil {
			m.appendNote(m.rejection(err))
			return m, nil
		}
		m.game = next
		m.appendGame(receipt.String())
	case command.Use:
		next, receipt, err := m.engine.Use(m.game, c.Target)
		if err != nil {
			m.appendNote(m.rejection(err))
			return m, nil
		}
		m.game = next
		m.appendGame(receipt.String())
	case command.Shop:
		m.appendGame(m.shop(c.Target))
	case command.Inventory:
		m.appendGame(m.inventory())
	case command.Help:
		m.appendGame(m.menu())
	case command.Reset:
		m.game = m.engine.Reset(m.game)
		m.state = stateName
		m.gameLog = ""
		m.refresh()
		m.textInput.Placeholder = namePlaceholder
		m.textInput.CharLimit = models.MaxNameLength
		m.textInput.Reset()
	case command.Quit:
		return m, tea.Quit
	}
	return m, nil
}

func (m model) act(actionID string) model {
	res, err := m.engine.Act(m.game, actionID)
	if err != nil {
		m.appendNote(m.rejection(err))
		return m
	}
	m.game = res.State
	m.appendGame(res.Describe())
	if ev, ok := m.engine.PickEvent(res.Action.ID, m.game); ok {
		m.pending = ev
		m.state = stateEvent
	}
	return m
}

func (m model) confirmEvent() model {
	res := m.engine.ApplyEvent(m.game, m.pending)
	m.game = res.State
	m.appendGame(res.Summary)
	m.pending = models.RandomEvent{}
	m.state = statePlaying
	return m
}

func (m model) rejection(err error) string {
	switch {
	case errors.Is(err, engine.ErrInsufficientStamina):
		return "You are too exhausted for that. Rest first."
	case errors.Is(err, engine.ErrInsufficientFunds):
		return "You cannot afford that."
	case errors.Is(err, engine.ErrItemNotOwned):
		return "You do not own that item."
	}
	return err.Error()
}

func (m model) menu() string {
	var b strings.Builder
	b.WriteString("Actions:")
	for _, v := range m.engine.ActionMenu(m.game) {
		cost := fmt.Sprintf("-%d stamina", v.Action.StaminaCost)
		if v.Action.IsRest() {
			cost = fmt.Sprintf("+%d stamina", engine.StaminaRecovery(m.game.Stats.Get(models.Power)))
		}
		mark := ""
		if !v.Eligible {
			mark = " (too tired)"
		}
		fmt.Fprintf(&b, "\n  %-12s %s [%s]%s", v.Action.ID, v.Action.Name, cost, mark)
	}
	b.WriteString("\nOther: shop [category], buy <item>, use <item>, inventory, /reset, /quit")
	return b.String()
}

func (m model) shop(categoryID string) string {
	var b strings.Builder
	for _, cat := range m.engine.Catalog().Categories() {
		if categoryID != "" && cat.ID != categoryID {
			continue
		}
		fmt.Fprintf(&b, "%s:\n", cat.Name)
		for _, e := range m.engine.Shop(m.game, cat.ID) {
			mark := ""
			if !e.Affordable {
				mark = " (can't afford)"
			}
			fmt.Fprintf(&b, "  %s %-18s %8s  %s  owned %d%s\n",
				e.Item.Icon, e.Item.Name, models.FormatMoney(e.Item.Price), engine.UseEffect(e.Item), e.Owned, mark)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m model) inventory() string {
	owned := m.engine.InventoryView(m.game)
	if len(owned) == 0 {
		return "Your bag is empty."
	}
	var b strings.Builder
	b.WriteString("Inventory:")
	for _, o := range owned {
		fmt.Fprintf(&b, "\n  %s %s x%d  %s", o.Item.Icon, o.Item.Name, o.Count, engine.UseEffect(o.Item))
	}
	return b.String()
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateName:
		s = fmt.Sprintf(
			"Welcome to Researcher Life!\n\n%s\n\n%s",
			"What is your researcher's name?",
			m.textInput.View(),
		)

	case statePlaying, stateEvent:
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			m.viewport.View(),
			m.renderState(),
		)
		bottom := m.textInput.View()
		help := helpStyle.Render("Type an action, 'shop', 'buy <item>', 'use <item>', '/reset' or '/quit'.")
		if m.state == stateEvent {
			bottom = eventStyle.Render(titleStyle.Render(m.pending.Title) + "\n" +
				m.pending.Description + "\n" + m.pending.Effect.String())
			help = helpStyle.Render("Press Enter to continue.")
		}
		s = lipgloss.JoinVertical(lipgloss.Left,
			mainView,
			"\n"+bottom,
			"\n"+help,
		)

	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.", m.err)
	}

	return "\n" + s + "\n"
}

func (m model) renderState() string {
	g := m.game

	header := titleStyle.Render(strings.ToUpper(m.name)) + "\n" +
		fmt.Sprintf("Week %d (%d left)\n", g.Week, m.engine.WeeksUntilClear(g)) +
		fmt.Sprintf("Stamina: %d/%d\n", g.Stamina, models.MaxStamina) +
		fmt.Sprintf("Research: %d%%\n", g.Research) +
		fmt.Sprintf("Money: %s\n\n", models.FormatMoney(g.Money))

	stats := titleStyle.Render("SKILLS") + "\n"
	for _, v := range engine.StatViews(g) {
		rank := lipgloss.NewStyle().Foreground(lipgloss.Color(v.Color)).Bold(true).Render(string(v.Rank))
		stats += fmt.Sprintf("%s %-14s %3d\n", rank, v.Name, v.Value)
	}
	stats += "\n"

	inventory := titleStyle.Render("INVENTORY") + "\n"
	owned := m.engine.InventoryView(g)
	if len(owned) == 0 {
		inventory += "(empty)"
	}
	for _, o := range owned {
		inventory += fmt.Sprintf("- %s x%d\n", o.Item.Name, o.Count)
	}

	stateWidth := int(float64(m.width) * 0.28)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(header + stats + inventory)
}

func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
