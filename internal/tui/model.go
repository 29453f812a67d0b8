// Package tui provides the Bubble Tea radial typing interface.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/radtype/internal/layout"
	"github.com/verte-zerg/radtype/internal/model"
	"github.com/verte-zerg/radtype/internal/radial"
)

// DefaultFPS is the sampling rate used when none is configured.
const DefaultFPS = 60

// Input is the per-frame source of device state and rumble.
type Input interface {
	Sample() model.Snapshot
	Connected() bool
	Name() string
	Pulse(p model.HapticPulse)
}

// BoardBuilder resolves a layout name into a board configuration.
type BoardBuilder func(layout string) (model.BoardConfig, error)

// Options configures the typing model.
type Options struct {
	Layout  string
	Build   BoardBuilder
	Input   Input
	FPS     float64
	Haptics bool
	Logger  *slog.Logger
}

type frameMsg time.Time

// Model implements the Bubble Tea typing UI.
type Model struct {
	build    BoardBuilder
	input    Input
	interval time.Duration
	haptics  bool
	log      *slog.Logger

	layout string
	board  *radial.Board
	views  []model.RingView

	text      []rune
	connected bool
	stopped   bool
	errMsg    string

	keys keyMap
	help help.Model

	width  int
	height int
}

var (
	textStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	lastRuneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle        = lipgloss.NewStyle().Underline(true)
	keyStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	inactiveLayerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	activeKeyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true).Reverse(true)
	tinyZoneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	stickStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	ringTitleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	footerStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// NewModel constructs a typing TUI model.
func NewModel(opts Options) (*Model, error) {
	if opts.Build == nil {
		return nil, fmt.Errorf("missing board builder")
	}
	if opts.Input == nil {
		return nil, fmt.Errorf("missing input")
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	m := &Model{
		build:    opts.Build,
		input:    opts.Input,
		interval: time.Duration(float64(time.Second) / fps),
		haptics:  opts.Haptics,
		log:      log,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	if err := m.setLayout(opts.Layout); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) setLayout(name string) error {
	cfg, err := m.build(name)
	if err != nil {
		return fmt.Errorf("failed to build layout %q: %w", name, err)
	}
	board, err := radial.NewBoard(cfg)
	if err != nil {
		return fmt.Errorf("failed to build layout %q: %w", name, err)
	}
	if m.board != nil {
		m.board.Reset()
	}
	m.layout = name
	if cfg.Name != "" {
		m.layout = cfg.Name
	}
	m.board = board
	m.views = nil
	m.log.Info("layout selected", "layout", m.layout, "rings", len(cfg.Rings))
	return nil
}

// Text returns the typed text.
func (m *Model) Text() string {
	return string(m.text)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.nextFrame()
}

func (m *Model) nextFrame() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case frameMsg:
		if m.stopped {
			return m, nil
		}
		m.frame()
		return m, m.nextFrame()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.stop()
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextLayout):
			next := layout.Next(m.layout).Name
			if err := m.setLayout(next); err != nil {
				m.errMsg = err.Error()
				m.log.Error("failed to switch layout", "layout", next, "err", err)
			} else {
				m.errMsg = ""
			}
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.text = nil
			return m, nil
		case key.Matches(msg, m.keys.Haptics):
			m.haptics = !m.haptics
			return m, nil
		}
		return m, nil
	default:
		return m, nil
	}
}

// stop ends the frame loop and discards pending gestures.
func (m *Model) stop() {
	m.stopped = true
	m.board.Reset()
}

func (m *Model) frame() {
	snap := m.input.Sample()
	connected := m.input.Connected()
	if connected != m.connected {
		if !connected {
			m.board.Reset()
		}
		m.connected = connected
	}

	out := m.board.Tick(snap)
	m.views = out.Rings
	for _, c := range out.Commits {
		m.apply(c)
	}
	if out.Rumble && m.haptics {
		m.input.Pulse(m.board.Config().Pulse)
	}
}

func (m *Model) apply(c model.Commit) {
	switch c.Kind {
	case model.CommitBackspace:
		m.handleBackspace()
		m.log.Debug("backspace")
	case model.CommitSpace:
		m.handleRunes([]rune{' '})
		m.log.Debug("space")
	default:
		m.handleRunes([]rune{c.Char})
		m.log.Debug("key committed", "ring", c.Ring, "key", string(c.Char), "layer", c.Layer.String(), "center", c.Center)
	}
}

func (m *Model) handleBackspace() {
	if len(m.text) == 0 {
		return
	}
	m.text = m.text[:len(m.text)-1]
}

func (m *Model) handleRunes(runes []rune) {
	m.text = append(m.text, runes...)
}

// View implements tea.Model.
func (m *Model) View() string {
	rings := renderRings(m.board.Rings(), m.views)
	if m.width == 0 || m.height == 0 {
		return rings + "\n\n" + renderStyledRunes(buildStyledRunes(m.text))
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	textHeight := m.height - lipgloss.Height(rings) - 4
	if textHeight < 1 {
		textHeight = 1
	}
	wrapped := tailLines(wrapStyledRunes(buildStyledRunes(m.text), contentWidth), textHeight)
	text := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	content := lipgloss.JoinVertical(lipgloss.Center, rings, "", text)

	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 2
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	helpLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.help.View(m.keys))
	return body + "\n" + footerLine + "\n" + helpLine
}

func (m *Model) renderFooter() string {
	device := "No gamepad"
	if m.connected {
		device = "Gamepad " + m.input.Name()
	}
	segments := []string{
		device,
		"Layout " + m.layout,
		fmt.Sprintf("Chars %d", len(m.text)),
	}
	layers := make([]string, 0, len(m.views))
	for _, v := range m.views {
		layers = append(layers, fmt.Sprintf("%s:%s", v.Name, v.Layer))
	}
	if len(layers) > 0 {
		segments = append(segments, strings.Join(layers, " "))
	}
	if !m.haptics {
		segments = append(segments, "Rumble off")
	}
	footer := footerStyle.Render(strings.Join(segments, "  "))
	if m.errMsg != "" {
		footer += "  " + errorStyle.Render(m.errMsg)
	}
	return footer
}
