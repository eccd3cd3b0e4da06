package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/unbound-force/calc/internal/calc"
)

// keyMap defines keybindings for the interactive TUI.
type keyMap struct {
	Submit   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
	Help     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.PageUp, k.PageDown},
		{k.Quit, k.Help},
	}
}

var defaultKeyMap = keyMap{
	Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "evaluate")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	Help:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "help")),
}

// Styles for the TUI.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Lines used by the title, input, status and help around the viewport.
const chromeHeight = 5

// replModel is the Bubble Tea model for the interactive prompt.
type replModel struct {
	calc      *calc.Calculator
	precision int
	history   []calc.Evaluation
	status    string

	input    textinput.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	ready    bool
}

func newReplModel(precision int) replModel {
	in := textinput.New()
	in.Placeholder = "add 2 2, 7 / 2, ..."
	in.Prompt = "> "
	in.Focus()

	return replModel{
		calc:      calc.New(),
		precision: precision,
		input:     in,
		help:      help.New(),
		keys:      defaultKeyMap,
	}
}

// evaluateLine parses "op a b" or "a op b" and evaluates it. A line
// that cannot be parsed returns an error; a computation that fails
// (e.g. division by zero) returns an Evaluation carrying the error.
func evaluateLine(c *calc.Calculator, line string) (calc.Evaluation, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return calc.Evaluation{}, fmt.Errorf("expected 'op a b' or 'a op b', got %d token(s)", len(fields))
	}

	opText, aText, bText := fields[0], fields[1], fields[2]
	if _, err := calc.ParseOperation(fields[1]); err == nil {
		opText, aText = fields[1], fields[0]
	}

	op, err := calc.ParseOperation(opText)
	if err != nil {
		return calc.Evaluation{}, err
	}
	a, err := calc.ParseValue(aText)
	if err != nil {
		return calc.Evaluation{}, err
	}
	b, err := calc.ParseValue(bText)
	if err != nil {
		return calc.Evaluation{}, err
	}
	return c.Evaluate(op, a, b), nil
}

func renderHistory(history []calc.Evaluation, precision int) string {
	if len(history) == 0 {
		return statusStyle.Render("No expressions evaluated yet.")
	}

	var sb strings.Builder
	for _, e := range history {
		sb.WriteString("  ")
		sb.WriteString(e.Expression())
		if e.Failed() {
			sb.WriteString("  ")
			sb.WriteString(errorStyle.Render("error: " + e.Error))
		} else {
			sb.WriteString(" = ")
			sb.WriteString(resultStyle.Render(e.Result.Format(precision)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - chromeHeight
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.input.Width = msg.Width - len(m.input.Prompt) - 1
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			m.submit()
			return m, nil
		case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *replModel) submit() {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return
	}

	e, err := evaluateLine(m.calc, line)
	if err != nil {
		m.status = err.Error()
		return
	}

	m.history = append(m.history, e)
	m.status = ""
	m.input.Reset()
	m.refresh()
}

func (m *replModel) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(renderHistory(m.history, m.precision))
	m.viewport.GotoBottom()
}

func (m replModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	status := m.status
	if status != "" {
		status = errorStyle.Render(status)
	}

	return titleStyle.Render(fmt.Sprintf("calc: %d expression(s)", len(m.history))) + "\n" +
		m.viewport.View() + "\n" +
		m.input.View() + "\n" +
		status + "\n" +
		m.help.View(m.keys)
}

// runInteractive launches the Bubble Tea prompt.
func runInteractive(precision int) error {
	p := tea.NewProgram(newReplModel(precision), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
