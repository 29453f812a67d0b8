// Package monitorui provides the Bubble Tea input monitor.
package monitorui

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/radtype/internal/gamepad"
	"github.com/verte-zerg/radtype/internal/model"
	"github.com/verte-zerg/radtype/internal/radial"
)

const (
	tabAxes = iota
	tabButtons
	tabRings
)

// AxisThreshold is the smallest axis movement that is logged.
const AxisThreshold = 0.05

const barWidth = 21

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Input is the device the monitor samples.
type Input interface {
	Sample() model.Snapshot
	Connected() bool
	Name() string
}

type frameMsg time.Time

// Model implements the Bubble Tea input monitor.
type Model struct {
	input    Input
	board    model.BoardConfig
	interval time.Duration
	log      *slog.Logger

	tabs      []string
	activeTab int
	table     table.Model
	keys      keyMap
	help      help.Model

	last    model.Snapshot
	presses []int
	stopped bool

	width  int
	height int
}

// NewModel constructs a monitor for input. board supplies the ring bindings shown in the
// Rings tab.
func NewModel(input Input, board model.BoardConfig, fps float64, log *slog.Logger) *Model {
	if fps <= 0 {
		fps = 60
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	m := &Model{
		input:    input,
		board:    board,
		interval: time.Duration(float64(time.Second) / fps),
		log:      log,
		tabs:     []string{"Axes", "Buttons", "Rings"},
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	m.table = table.New(table.WithHeight(10))
	m.table.SetStyles(tableStyles())
	m.refreshTable()
	return m
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
		m.updateLayout()
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
			m.stopped = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextTab):
			m.moveTab(1)
		case key.Matches(msg, m.keys.PrevTab):
			m.moveTab(-1)
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) frame() {
	snap := m.input.Sample()
	for _, c := range gamepad.Diff(m.last, snap, AxisThreshold) {
		switch c.Kind {
		case gamepad.ButtonChange:
			if c.Pressed {
				m.countPress(c.ID)
			}
			m.log.Info("button", "id", c.ID, "pressed", c.Pressed)
		default:
			m.log.Debug("axis", "id", c.ID, "value", c.Value)
		}
	}
	m.last = snap
	m.refreshTable()
}

func (m *Model) countPress(id int) {
	for len(m.presses) <= id {
		m.presses = append(m.presses, 0)
	}
	m.presses[id]++
}

func (m *Model) moveTab(delta int) {
	m.activeTab = (m.activeTab + delta + len(m.tabs)) % len(m.tabs)
	m.refreshTable()
}

func (m *Model) updateLayout() {
	height := m.height - 6
	if height < 3 {
		height = 3
	}
	m.table.SetHeight(height)
	if m.width > 0 {
		m.table.SetWidth(m.width)
		m.help.Width = m.width
	}
}

func (m *Model) refreshTable() {
	cols, rows := m.tableData()
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
}

func (m *Model) tableData() ([]table.Column, []table.Row) {
	switch m.activeTab {
	case tabButtons:
		return buttonTable(m.last, m.presses)
	case tabRings:
		return ringTable(m.last, m.board)
	default:
		return axisTable(m.last)
	}
}

func axisTable(snap model.Snapshot) ([]table.Column, []table.Row) {
	cols := []table.Column{
		{Title: "Axis", Width: 5},
		{Title: "Value", Width: 7},
		{Title: "Position", Width: barWidth},
	}
	rows := make([]table.Row, 0, len(snap.Axes))
	for i, v := range snap.Axes {
		rows = append(rows, table.Row{fmt.Sprintf("%d", i), fmt.Sprintf("%+.2f", v), axisBar(v, barWidth)})
	}
	return cols, rows
}

func buttonTable(snap model.Snapshot, presses []int) ([]table.Column, []table.Row) {
	cols := []table.Column{
		{Title: "Button", Width: 6},
		{Title: "State", Width: 8},
		{Title: "Presses", Width: 7},
	}
	rows := make([]table.Row, 0, len(snap.Buttons))
	for i, b := range snap.Buttons {
		state := "up"
		if b {
			state = "down"
		}
		count := 0
		if i < len(presses) {
			count = presses[i]
		}
		rows = append(rows, table.Row{fmt.Sprintf("%d", i), state, fmt.Sprintf("%d", count)})
	}
	return cols, rows
}

func ringTable(snap model.Snapshot, board model.BoardConfig) ([]table.Column, []table.Row) {
	cols := []table.Column{
		{Title: "Ring", Width: 8},
		{Title: "Axes", Width: 6},
		{Title: "X", Width: 6},
		{Title: "Y", Width: 6},
		{Title: "Angle", Width: 6},
		{Title: "Zone", Width: 8},
		{Title: "Alt", Width: 4},
	}
	rows := make([]table.Row, 0, len(board.Rings))
	for _, b := range board.Rings {
		stick := radial.StickFor(snap, b)
		cls := radial.Classify(stick, b.Ring.TargetRadius, b.Ring.TinyRadius)
		alt := "-"
		if snap.Button(b.AltButton) {
			alt = "held"
		}
		rows = append(rows, table.Row{
			b.Ring.Name,
			fmt.Sprintf("%d/%d", b.XAxis, b.YAxis),
			fmt.Sprintf("%+.2f", stick.X),
			fmt.Sprintf("%+.2f", stick.Y),
			fmt.Sprintf("%.0f", radial.Atan2Positive(stick.X, stick.Y)),
			cls.Zone.String(),
			alt,
		})
	}
	return cols, rows
}

// axisBar draws v in [-1,1] as a marker on a track of the given width.
func axisBar(v float64, width int) string {
	if width < 3 {
		width = 3
	}
	if v < -1 {
		v = -1
	}
	if v > 1 {
		v = 1
	}
	track := []rune(strings.Repeat("─", width))
	mid := width / 2
	track[mid] = '┼'
	pos := mid + int(math.Round(v*float64(mid)))
	if pos < 0 {
		pos = 0
	}
	if pos >= width {
		pos = width - 1
	}
	track[pos] = '●'
	return string(track)
}

// View implements tea.Model.
func (m *Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), m.renderHeader(), m.table.View(), m.help.View(m.keys))
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, name := range m.tabs {
		style := inactiveNavStyle
		if i == m.activeTab {
			style = activeNavStyle
		}
		parts = append(parts, style.Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	if !m.input.Connected() {
		return errorStyle.Render("No gamepad connected")
	}
	return headerStyle.Render(fmt.Sprintf("%s  layout %s", m.input.Name(), m.board.Name))
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell
	return styles
}
