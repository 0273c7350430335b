package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/zuul/cli"
	"github.com/nathoo/zuul/engine"
)

const (
	historySize = 100
	chromeRows  = 2 // status bar and input line
)

// Model is the Bubble Tea model for the game. The engine is created once
// the player has answered the name prompt.
type Model struct {
	start  cli.StartFunc
	title  string
	engine *engine.Engine

	viewport viewport.Model
	input    textinput.Model
	history  *History
	log      transcript

	width, height int
	ready         bool
	trace         bool
	over          bool // the story ended; the next Enter exits
	quitting      bool
	repeat        *cli.Repeater
}

// New creates a model that calls start with the player's name.
func New(start cli.StartFunc, title string) Model {
	in := textinput.New()
	in.Prompt = "> "
	in.PromptStyle = stylePrompt
	in.CharLimit = 256
	in.Focus()

	m := Model{start: start, title: title, input: in, history: NewHistory(historySize), repeat: &cli.Repeater{}}
	m.log.narrate("What is your name?")
	return m
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(start cli.StartFunc, title string) error {
	_, err := tea.NewProgram(New(start, title), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	rows := max(height-chromeRows, 1)
	if m.ready {
		m.viewport.Width, m.viewport.Height = width, rows
	} else {
		m.viewport = viewport.New(width, rows)
		m.viewport.KeyMap = viewportKeyMap()
		m.ready = true
	}
	m.refresh()
}

// handleKey reacts to keys the text input does not own.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit, true
	case "enter":
		next, cmd := m.handleEnter()
		return next, cmd, true
	case "up":
		if line, ok := m.history.Prev(); ok {
			m.setInput(line)
		}
		return m, nil, true
	case "down":
		line, _ := m.history.Next() // empty past the newest line
		m.setInput(line)
		return m, nil, true
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd, true
	}
	return m, nil, false
}

func (m *Model) setInput(line string) {
	m.input.SetValue(line)
	m.input.CursorEnd()
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	switch {
	case m.over:
		m.quitting = true
		return m, tea.Quit
	case m.engine == nil:
		m.startGame(input)
		return m, nil
	case input == "":
		return m, nil
	}

	m.history.Push(input)
	m.log.echo(input)

	if cli.IsMeta(input) {
		lines, quit := m.handleMeta(input)
		m.log.notice(lines...)
		m.refresh()
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	cmd, ok := m.repeat.Resolve(input)
	if !ok {
		m.log.notice("Nothing to repeat.")
		m.refresh()
		return m, nil
	}

	result := m.engine.Step(cmd)
	out := result.Output
	if m.trace {
		out = append(out, cli.TraceLines(result)...)
	}
	m.log.narrate(out...)
	if result.Quit || result.Over {
		m.over = true
		m.log.notice("Press Enter to exit.")
	}
	m.refresh()
	return m, nil
}

// startGame creates the engine for the named player and shows the intro.
func (m *Model) startGame(name string) {
	if name == "" {
		name = cli.DefaultName
	}
	m.log.echo(name)
	defer m.refresh()

	eng, err := m.start(name)
	if err != nil {
		m.over = true
		m.log.notice(fmt.Sprintf("Could not start the game: %v", err))
		return
	}
	m.engine = eng
	for _, npc := range eng.State.NPCs() {
		m.log.speakers = append(m.log.speakers, npc.Name)
	}
	m.log.narrate(eng.Intro()...)
}

// refresh re-renders the transcript into the viewport and scrolls down.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.log.render(m.width))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	switch {
	case m.quitting:
		return ""
	case !m.ready:
		return "Loading..."
	}
	return strings.Join([]string{m.viewport.View(), m.renderStatusBar(), m.input.View()}, "\n")
}

// viewportKeyMap leaves Up/Down to the input history.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
