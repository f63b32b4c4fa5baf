package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Andbal23/dynamic-music-pill/internal/config"
	"github.com/Andbal23/dynamic-music-pill/internal/core"
	"github.com/Andbal23/dynamic-music-pill/internal/engine"
	"github.com/Andbal23/dynamic-music-pill/internal/tui/components"
	"github.com/Andbal23/dynamic-music-pill/internal/tui/styles"
)

// Panel represents which panel is focused
type Panel int

const (
	PanelPill Panel = iota
	PanelSessions
)

const refreshRate = 200 * time.Millisecond

type keyMap struct {
	PlayPause key.Binding
	Next      key.Binding
	Prev      key.Binding
	Shuffle   key.Binding
	Loop      key.Binding
	Lyrics    key.Binding
	Raise     key.Binding
	Up        key.Binding
	Down      key.Binding
	Pin       key.Binding
	Unpin     key.Binding
	Tab       key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	PlayPause: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
	Next:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next track")),
	Prev:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous track")),
	Shuffle:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "toggle shuffle")),
	Loop:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "cycle loop mode")),
	Lyrics:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "toggle lyrics")),
	Raise:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "raise player")),
	Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "select previous")),
	Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "select next")),
	Pin:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pin selected")),
	Unpin:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "unpin")),
	Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch panel")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model is the main TUI model
type Model struct {
	eng *engine.Engine
	cfg config.Config

	width        int
	height       int
	focusedPanel Panel

	// State, re-read from the engine on every tick
	active   *core.Session
	sessions []core.Session
	pos      time.Duration
	lyric    string
	pinned   string
	lyricsOn bool

	// Components
	pill         *components.Pill
	sessionsView *components.Sessions

	showHelp bool
	quitting bool
}

// NewModel creates a new TUI model
func NewModel(eng *engine.Engine, cfg config.Config) Model {
	return Model{
		eng:          eng,
		cfg:          cfg,
		pill:         components.NewPill(cfg.Display.Width, cfg.Display.Overflow),
		sessionsView: components.NewSessions(),
	}
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(refreshRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.readEngine()
		return m, tick()
	}

	return m, nil
}

func (m *Model) readEngine() {
	if active, ok := m.eng.ActiveSession(); ok {
		m.active = &active
	} else {
		m.active = nil
	}
	m.sessions = m.eng.Sessions()
	m.pos, _ = m.eng.EstimatedPosition()
	m.lyric = m.eng.CurrentLine().Text
	m.pinned = m.eng.PinnedBus()
	m.lyricsOn = m.eng.LyricsEnabled()
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.showHelp {
		if key.Matches(msg, keys.Help) || key.Matches(msg, keys.Unpin) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Help):
		m.showHelp = true

	case key.Matches(msg, keys.Tab):
		m.focusedPanel = (m.focusedPanel + 1) % 2

	case key.Matches(msg, keys.PlayPause):
		_ = m.eng.TogglePlayback()

	case key.Matches(msg, keys.Next):
		_ = m.eng.NextTrack()

	case key.Matches(msg, keys.Prev):
		_ = m.eng.PreviousTrack()

	case key.Matches(msg, keys.Shuffle):
		_ = m.eng.ToggleShuffle()

	case key.Matches(msg, keys.Loop):
		_ = m.eng.ToggleLoop()

	case key.Matches(msg, keys.Lyrics):
		m.eng.SetLyricsEnabled(!m.lyricsOn)

	case key.Matches(msg, keys.Raise):
		_ = m.eng.RaisePlayer()

	case key.Matches(msg, keys.Down):
		if m.focusedPanel == PanelSessions {
			m.sessionsView.SelectNext(len(m.sessions))
		}

	case key.Matches(msg, keys.Up):
		if m.focusedPanel == PanelSessions {
			m.sessionsView.SelectPrev()
		}

	case key.Matches(msg, keys.Pin):
		if m.focusedPanel == PanelSessions {
			if i := m.sessionsView.Selected(len(m.sessions)); i >= 0 {
				m.eng.Pin(m.sessions[i].BusName)
			}
		}

	case key.Matches(msg, keys.Unpin):
		m.eng.Pin("")
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	topHeight := m.height * 55 / 100
	bottomHeight := m.height - topHeight - 3

	activeBus := ""
	if m.active != nil {
		activeBus = m.active.BusName
	}

	// With hide_default_player the idle pill stays hidden until a
	// session actually wins arbitration.
	if m.active == nil && m.cfg.Player.HideDefaultPlayer {
		sessions := m.sessionsView.Render(m.sessions, activeBus, m.pinned,
			m.width-2, m.height-4, m.focusedPanel == PanelSessions)
		return lipgloss.JoinVertical(lipgloss.Left, sessions, m.renderStatusBar())
	}

	pill := m.pill.Render(m.active, m.pos, m.lyric,
		m.width-2, topHeight-2, m.focusedPanel == PanelPill)
	sessions := m.sessionsView.Render(m.sessions, activeBus, m.pinned,
		m.width-2, bottomHeight-2, m.focusedPanel == PanelSessions)

	return lipgloss.JoinVertical(lipgloss.Left, pill, sessions, m.renderStatusBar())
}

func (m Model) renderStatusBar() string {
	status := styles.Dim.Render(
		"q:quit  ?:help  space:play/pause  n:next  p:prev  s:shuffle  l:loop  y:lyrics  tab:panel")
	if m.pinned != "" {
		status = styles.Paused.Render("pinned: "+m.pinned) + "  " + status
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

func (m Model) renderHelp() string {
	title := "Music Pill - Keyboard Shortcuts"
	divider := styles.Repeat("═", len(title))

	help := `
  ` + title + `
  ` + divider + `

  Global
  ──────
  q, Ctrl+C    Quit
  ?            Toggle help
  Tab          Switch panel

  Playback
  ────────
  Space        Play/Pause
  n            Next track
  p            Previous track
  s            Toggle shuffle
  l            Cycle loop mode
  y            Toggle lyrics
  r            Raise player

  Players Panel
  ─────────────
  j/↓          Select next
  k/↑          Select previous
  Enter        Pin selection to player (★)
  Esc          Unpin

  Press ? or Esc to close
`

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.BorderStyle.Render(help))
}

// Run starts the TUI against a running engine
func Run(eng *engine.Engine, cfg config.Config) error {
	p := tea.NewProgram(NewModel(eng, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
