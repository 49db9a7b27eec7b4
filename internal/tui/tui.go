package tui

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/wumpus-world/internal/config"
	"github.com/tatianab/wumpus-world/internal/engine"
	"github.com/tatianab/wumpus-world/internal/models"
	"github.com/tatianab/wumpus-world/internal/particles"
)

const frameInterval = 50 * time.Millisecond

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

// feed is the display the engine pushes views into.
type feed struct {
	view models.View
}

func (f *feed) Show(v models.View) { f.view = v }

type model struct {
	engine    *engine.Engine
	feed      *feed
	field     *particles.Field
	animating bool
	viewport  viewport.Model
	help      help.Model
	gameLog   string
	notice    string
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
)

func NewModel(eng *engine.Engine, cfg *config.Config) model {
	f := &feed{}
	eng.Attach(f)

	m := model{
		engine:    eng,
		feed:      f,
		field:     particles.New(particleOptions(cfg.Particles.Count, cfg.Particles.LinkDistance), 80, stripRows, nil),
		animating: true,
		viewport:  viewport.New(40, 10),
		help:      help.New(),
	}
	m.appendLog("", f.view.Message)
	return m
}

type frameMsg time.Time

type timerMsg struct {
	timer engine.Timer
}

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// scheduleTimers turns queued engine timers into delayed messages.
func (m model) scheduleTimers() tea.Cmd {
	var cmds []tea.Cmd
	for _, t := range m.engine.Timers() {
		cmds = append(cmds, tea.Tick(t.Delay, func(time.Time) tea.Msg {
			return timerMsg{timer: t}
		}))
	}
	return tea.Batch(cmds...)
}

func (m model) Init() tea.Cmd {
	return tea.Batch(nextFrame(), m.scheduleTimers())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(20, int(float64(msg.Width)*0.45))
		m.viewport.Height = max(5, msg.Height-stripRows-12)
		m.viewport.SetContent(m.gameLog)
		m.viewport.GotoBottom()
		m.field.Resize(float64(msg.Width), stripRows)
		return m, nil

	case frameMsg:
		if !m.field.Tick() {
			m.animating = false
			return m, nil
		}
		return m, nextFrame()

	case timerMsg:
		m.engine.Fire(msg.timer)
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, keys.Restart):
		m.engine.Restart()
		m.gameLog = ""
		m.notice = ""
		m.appendLog("", m.feed.view.Message)
		return m, m.scheduleTimers()

	case key.Matches(msg, keys.Particles):
		if m.field.Running() {
			m.field.Stop()
			return m, nil
		}
		m.field.Start()
		if !m.animating {
			m.animating = true
			return m, nextFrame()
		}
		return m, nil

	case key.Matches(msg, keys.Copy):
		if err := copyToClipboard(summaryText(m.feed.view)); err != nil {
			log.Printf("clipboard: %v", err)
			m.notice = "Could not copy to clipboard."
		} else {
			m.notice = "Result copied to clipboard."
		}
		return m, nil
	}

	for _, ak := range keys.actionKeys() {
		if !key.Matches(msg, ak.binding) {
			continue
		}
		if !m.feed.view.Controls.Enabled(ak.action) {
			return m, nil
		}
		m.notice = ""
		m.engine.Do(ak.action)
		m.appendLog(ak.action.String(), m.feed.view.Message)
		return m, m.scheduleTimers()
	}
	return m, nil
}

func (m *model) appendLog(action, outcome string) {
	width := max(20, m.viewport.Width)
	if action != "" {
		m.gameLog += userStyle.Width(width).Render("> "+action) + "\n"
	}
	if outcome != "" {
		m.gameLog += gameStyle.Width(width).Render(outcome) + "\n\n"
	}
	m.viewport.SetContent(m.gameLog)
	m.viewport.GotoBottom()
}

func (m model) View() string {
	v := m.feed.view

	background := renderField(m.field, max(m.width, 40), stripRows)
	header := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("WUMPUS WORLD"),
		renderPercepts(v),
	)

	board := renderBoard(v)
	if v.Summary != nil {
		board = lipgloss.JoinVertical(lipgloss.Center, board, "", renderSummary(v.Summary, v.Phase))
	}

	statusWidth := max(18, int(float64(m.width)*0.2))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		board,
		"  ",
		m.viewport.View(),
		renderStatus(v, statusWidth, m.viewport.Height),
	)

	footer := m.help.View(keys)
	if m.notice != "" {
		footer = helpStyle.Render(m.notice) + "\n" + footer
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		background,
		header,
		"",
		mainView,
		"",
		footer,
	)
}

// Run starts the terminal UI on an existing engine.
func Run(eng *engine.Engine, cfg *config.Config) error {
	p := tea.NewProgram(NewModel(eng, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Start loads the configuration and runs a fresh game in the terminal.
func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	eng, closeLog, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	return Run(eng, cfg)
}

// openEngine builds the engine for a terminal session. With a debug log
// configured, the standard logger and the engine both write to that file;
// otherwise logging is silenced so it cannot tear the alt screen.
func openEngine(cfg *config.Config) (*engine.Engine, func(), error) {
	closeLog := func() {}
	var opts []engine.Option
	if cfg.DebugLog != "" {
		f, err := tea.LogToFile(cfg.DebugLog, "wumpus")
		if err != nil {
			return nil, nil, fmt.Errorf("open debug log: %w", err)
		}
		closeLog = func() { f.Close() }
		opts = append(opts, engine.WithLogger(log.Default()))
	} else {
		log.SetOutput(io.Discard)
	}

	eng, err := engine.NewEngine(cfg, opts...)
	if err != nil {
		closeLog()
		return nil, nil, err
	}
	return eng, closeLog, nil
}
