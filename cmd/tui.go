package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/suderio/netdust/internal/engine"
	"github.com/suderio/netdust/internal/parser"
)

const welcome = "Welcome to Net Dust!\nType 'reset' for a fresh session, 'exit' to quit."

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	stateBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2)

	logBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	autocompleteStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#F25D94"))
)

type suggestion string

func (s suggestion) Title() string       { return string(s) }
func (s suggestion) Description() string { return "" }
func (s suggestion) FilterValue() string { return string(s) }

type replModel struct {
	core        *replCore
	textInput   textinput.Model
	viewport    viewport.Model
	suggestions list.Model
	history     []string
	historyIdx  int
	logContent  string
	width       int
	height      int
	showList    bool
}

func newREPLModel(core *replCore) replModel {
	ti := textinput.New()
	ti.Placeholder = `Enter a line (e.g., print("hello "user.name))...`
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 60

	vp := viewport.New(0, 0)
	vp.SetContent(welcome)

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)
	sugList := list.New([]list.Item{}, delegate, 50, 7)
	sugList.SetShowTitle(false)
	sugList.SetShowStatusBar(false)
	sugList.SetFilteringEnabled(false)
	sugList.SetShowHelp(false)

	return replModel{
		core:        core,
		textInput:   ti,
		viewport:    vp,
		suggestions: sugList,
		history:     []string{},
		historyIdx:  -1,
		logContent:  welcome,
	}
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

// completions offers rule keywords while the first word is being typed, and
// known variable names after an opening angle bracket.
func completions(val string, ctx *engine.Context) []string {
	if val == "" {
		return nil
	}

	if i := strings.LastIndex(val, "<"); i >= 0 && !strings.Contains(val[i:], ">") {
		prefix := strings.ToLower(strings.TrimSpace(val[i+1:]))
		var names, out []string
		names = append(names, ctx.Vars.Keys()...)
		names = append(names, ctx.Nums.Keys()...)
		for name := range ctx.ExternalInfo() {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if strings.HasPrefix(strings.ToLower(name), prefix) && len(prefix) < len(name) {
				out = append(out, val[:i+1]+name+">")
			}
		}
		return out
	}

	if strings.ContainsAny(val, " (=:") {
		return nil
	}

	lower := strings.ToLower(val)
	var out []string
	for _, k := range parser.Complete(val) {
		if k != lower {
			out = append(out, k)
		}
	}
	for _, k := range []string{"reset", "exit", "quit"} {
		if strings.HasPrefix(k, lower) && k != lower {
			out = append(out, k)
		}
	}
	return out
}

func (m *replModel) updateSuggestions() {
	var items []list.Item
	for _, c := range completions(m.textInput.Value(), m.core.Session().Context()) {
		items = append(items, suggestion(c))
	}

	m.suggestions.SetItems(items)
	m.showList = len(items) > 0
	if m.showList {
		h := len(items)
		if h > 10 {
			h = 10
		}
		if h < 4 {
			h = 4
		}
		m.suggestions.SetHeight(h)
		m.suggestions.ResetSelected()
	}
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		lsCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyUp:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else if len(m.history) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.history) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.history[m.historyIdx])
				m.updateSuggestions()
			}

		case tea.KeyDown:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else if len(m.history) > 0 && m.historyIdx != -1 {
				if m.historyIdx < len(m.history)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.history[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.updateSuggestions()
			}

		case tea.KeyTab:
			if m.showList {
				if i, ok := m.suggestions.SelectedItem().(suggestion); ok {
					m.textInput.SetValue(string(i))
					m.textInput.SetCursor(len(string(i)))
					m.updateSuggestions()
				}
			}

		case tea.KeyEnter:
			val := strings.TrimSpace(m.textInput.Value())
			if val == "" {
				break
			}

			if len(m.history) == 0 || m.history[len(m.history)-1] != val {
				m.history = append(m.history, val)
			}
			m.historyIdx = -1
			m.textInput.SetValue("")
			m.updateSuggestions()

			output, quit := m.core.Handle(val)
			if quit {
				return m, tea.Quit
			}

			m.logContent += fmt.Sprintf("\n\n> %s\n", val)
			m.logContent += strings.Join(output, "\n")
			m.viewport.SetContent(m.logContent)
			m.viewport.GotoBottom()

		default:
			m.textInput, tiCmd = m.textInput.Update(msg)
			m.updateSuggestions()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.suggestions.SetWidth(msg.Width - 6)
	}

	m.viewport, vpCmd = m.viewport.Update(msg)

	titleH := lipgloss.Height(titleStyle.Render("Dummy"))
	stateH := lipgloss.Height(m.renderState())
	inputH := 1

	listAreaHeight := 0
	if m.showList {
		listAreaHeight = m.suggestions.Height() + 2
	}

	infoH := lipgloss.Height(infoStyle.Render("Dummy"))
	paddingH := 7

	overhead := titleH + stateH + inputH + listAreaHeight + infoH + paddingH + 4

	m.viewport.Height = m.height - overhead
	if m.viewport.Height < 4 {
		m.viewport.Height = 4
	}

	return m, tea.Batch(tiCmd, vpCmd, lsCmd)
}

// stateView lists the open room, vars and nums of ctx.
func stateView(ctx *engine.Context) string {
	var b strings.Builder
	b.WriteString("=== Run State ===\n\n")

	if name, ok := ctx.Room.Current(); ok {
		fmt.Fprintf(&b, "Room: %s\n", name)
	} else {
		b.WriteString("No open room.\n")
	}
	b.WriteString("\n")

	if ctx.Vars.Len() == 0 && ctx.Nums.Len() == 0 {
		b.WriteString("No variables declared.")
		return b.String()
	}
	ctx.Vars.Each(func(name, v string) {
		fmt.Fprintf(&b, " - %s = \"%s\"\n", name, v)
	})
	ctx.Nums.Each(func(name string, v float64) {
		fmt.Fprintf(&b, " - %s = %s\n", name, engine.FormatNumber(v))
	})
	return strings.TrimRight(b.String(), "\n")
}

func (m *replModel) renderState() string {
	return stateBoxStyle.Width(m.width - 4).Render(stateView(m.core.Session().Context()))
}

func (m *replModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	title := titleStyle.Render(fmt.Sprintf(" Net Dust | %s grammar ", m.core.Session().Grammar().Name()))
	stateBox := m.renderState()
	logBox := logBoxStyle.Width(m.width - 4).Render(m.viewport.View())

	var inputArea string
	if m.showList {
		inputArea = fmt.Sprintf("%s\n%s", m.textInput.View(), autocompleteStyle.Render(m.suggestions.View()))
	} else {
		inputArea = m.textInput.View()
	}

	mainView := lipgloss.JoinVertical(lipgloss.Left,
		title,
		stateBox,
		logBox,
		"\n",
		inputArea,
		infoStyle.Render("(esc to quit, tab to complete, up/down history)"),
	)

	return mainView + strings.Repeat("\n", 7)
}

// RunTUI runs the full screen REPL until the user quits.
func RunTUI(core *replCore) error {
	m := newREPLModel(core)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
