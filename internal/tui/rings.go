package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/radtype/internal/model"
	"github.com/verte-zerg/radtype/internal/radial"
)

const (
	ringRadius = 5
	// altRadius places the alt letters on an inner circle.
	altRadius = 0.55
	// cellAspect compensates for terminal cells being about twice as tall as wide.
	cellAspect = 2
)

type cell struct {
	r     rune
	style lipgloss.Style
	set   bool
}

type grid struct {
	cells [][]cell
	cx    int
	cy    int
}

func newGrid(radius int) *grid {
	rows := 2*radius + 1
	cols := 2*cellAspect*radius + 1
	g := &grid{cells: make([][]cell, rows), cx: cellAspect * radius, cy: radius}
	for i := range g.cells {
		g.cells[i] = make([]cell, cols)
	}
	return g
}

// put places r at a position relative to the center, x to the right and y up, in ring units.
func (g *grid) put(x, y float64, r rune, style lipgloss.Style, force bool) {
	col := g.cx + int(math.Round(x*float64(cellAspect)))
	row := g.cy - int(math.Round(y))
	if row < 0 || row >= len(g.cells) || col < 0 || col >= len(g.cells[row]) {
		return
	}
	if g.cells[row][col].set && !force {
		return
	}
	g.cells[row][col] = cell{r: r, style: style, set: true}
}

func (g *grid) render() string {
	lines := make([]string, len(g.cells))
	for i, row := range g.cells {
		var b strings.Builder
		for _, c := range row {
			if !c.set {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(c.style.Render(string(c.r)))
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

// keyAngle is the angle in degrees at which key j of a layer is drawn: the center of the
// segment that commits it.
func keyAngle(ring *radial.Ring, layer model.Layer, j int) float64 {
	seg := ring.SegmentAngle(layer)
	return ring.SegmentOffset(layer) + (float64(j-ring.Config().KeyShift)+0.5)*seg
}

func layerKeys(cfg model.RingConfig, layer model.Layer) []rune {
	if layer == model.LayerAlt {
		return cfg.AltKeys
	}
	return cfg.DefaultKeys
}

type ringLayer struct {
	layer  model.Layer
	radius float64
}

func renderRing(ring *radial.Ring, view model.RingView) string {
	g := newGrid(ringRadius)
	cfg := ring.Config()

	layers := []ringLayer{{model.LayerDefault, ringRadius}}
	if ring.HasAltLayer() {
		layers = append(layers, ringLayer{model.LayerAlt, ringRadius * altRadius})
	}

	for _, l := range layers {
		for j, k := range layerKeys(cfg, l.layer) {
			style := keyStyle
			if l.layer != view.Layer {
				style = inactiveLayerStyle
			}
			if view.Active && l.layer == view.Layer && k == view.ActiveKey {
				style = activeKeyStyle
			}
			rad := keyAngle(ring, l.layer, j) * math.Pi / 180
			g.put(math.Cos(rad)*l.radius, math.Sin(rad)*l.radius, k, style, true)
		}
	}

	center := keyStyle
	if view.InTinyZone {
		center = tinyZoneStyle
	}
	g.put(0, 0, cfg.CenterKey, center, true)

	if !view.InTinyZone {
		g.put(view.Stick.X*ringRadius, view.Stick.Y*ringRadius, '•', stickStyle, false)
	}

	title := cfg.Name
	if view.AltDown {
		title += " [alt]"
	}
	return lipgloss.JoinVertical(lipgloss.Center, ringTitleStyle.Render(title), g.render())
}

func renderRings(rings []*radial.Ring, views []model.RingView) string {
	parts := make([]string, 0, len(rings))
	for i, ring := range rings {
		view := model.RingView{Name: ring.Config().Name, ActiveSegment: -1, InTinyZone: true}
		if i < len(views) {
			view = views[i]
		}
		if i > 0 {
			parts = append(parts, strings.Repeat(" ", 4))
		}
		parts = append(parts, renderRing(ring, view))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
