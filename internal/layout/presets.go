// Package layout holds the built-in ring layouts and merges user overrides into them.
package layout

import (
	"fmt"
	"sort"
	"strings"

	"github.com/verte-zerg/radtype/internal/model"
	"github.com/verte-zerg/radtype/internal/radial"
)

// Default geometry, as ratios of the stick's full deflection.
const (
	DefaultTargetRadius    = 0.85
	DefaultTinyRadius      = 0.2
	DefaultBackspaceButton = 2
	DefaultSpaceButton     = 3
)

// RingPreset is the key assignment of one hand.
type RingPreset struct {
	Name        string
	CenterKey   rune
	DefaultKeys string
	AltKeys     string
	XAxis       int
	YAxis       int
	AltButton   int
}

// Preset is a named two-handed layout.
type Preset struct {
	Name        string
	Description string
	Rings       []RingPreset
}

var presets = []Preset{
	{
		Name:        "classic",
		Description: "12 keys per hand, no alt layer",
		Rings: []RingPreset{
			{Name: "left", CenterKey: 'E', DefaultKeys: "FVGRWQASZXCD", XAxis: 0, YAxis: 1, AltButton: 4},
			{Name: "right", CenterKey: 'T', DefaultKeys: "LPOIUYJHBNMK", XAxis: 2, YAxis: 3, AltButton: 5},
		},
	},
	{
		Name:        "split6",
		Description: "6 keys per hand plus 6 on the alt layer",
		Rings: []RingPreset{
			{Name: "left", CenterKey: 'E', DefaultKeys: "RUASDC", AltKeys: "FGQZXV", XAxis: 0, YAxis: 1, AltButton: 4},
			{Name: "right", CenterKey: 'T', DefaultKeys: "LOIHNM", AltKeys: "KPYJBW", XAxis: 2, YAxis: 3, AltButton: 5},
		},
	},
	{
		Name:        "split8",
		Description: "8 keys per hand plus 4 on the alt layer",
		Rings: []RingPreset{
			{Name: "left", CenterKey: 'E', DefaultKeys: "FGRWASDC", AltKeys: "VQZX", XAxis: 0, YAxis: 1, AltButton: 4},
			{Name: "right", CenterKey: 'T', DefaultKeys: "OIUYHNML", AltKeys: "PKJB", XAxis: 2, YAxis: 3, AltButton: 5},
		},
	},
}

// Presets returns the built-in layouts in cycling order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// Names returns the preset names sorted alphabetically.
func Names() []string {
	names := make([]string, 0, len(presets))
	for _, p := range presets {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Lookup finds a preset by case-insensitive name.
func Lookup(name string) (Preset, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("unknown layout %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Next returns the preset after name, wrapping around.
func Next(name string) Preset {
	for i, p := range presets {
		if p.Name == name {
			return presets[(i+1)%len(presets)]
		}
	}
	return presets[0]
}

// Tuning holds the geometry and timing shared by every ring of a board.
type Tuning struct {
	TargetRadius    float64
	TinyRadius      float64
	OffsetFraction  float64
	DebounceDepth   int
	KeyShift        int
	InvertY         bool
	BackspaceButton int
	SpaceButton     int
	Pulse           model.HapticPulse
}

// DefaultTuning returns the standard tuning values.
func DefaultTuning() Tuning {
	return Tuning{
		TargetRadius:    DefaultTargetRadius,
		TinyRadius:      DefaultTinyRadius,
		OffsetFraction:  radial.DefaultOffsetFraction,
		DebounceDepth:   radial.DefaultDebounceDepth,
		KeyShift:        radial.DefaultKeyShift,
		InvertY:         true,
		BackspaceButton: DefaultBackspaceButton,
		SpaceButton:     DefaultSpaceButton,
		Pulse:           radial.DefaultPulse,
	}
}

// Build turns a preset and tuning into a board configuration.
func Build(p Preset, t Tuning) model.BoardConfig {
	cfg := model.BoardConfig{
		Name:            p.Name,
		BackspaceButton: t.BackspaceButton,
		SpaceButton:     t.SpaceButton,
		Pulse:           t.Pulse,
	}
	for _, r := range p.Rings {
		cfg.Rings = append(cfg.Rings, model.RingBinding{
			Ring: model.RingConfig{
				Name:              r.Name,
				CenterKey:         r.CenterKey,
				DefaultKeys:       []rune(r.DefaultKeys),
				AltKeys:           []rune(r.AltKeys),
				TargetRadius:      t.TargetRadius,
				TinyRadius:        t.TinyRadius,
				OffsetFraction:    t.OffsetFraction,
				AltOffsetFraction: t.OffsetFraction,
				DebounceDepth:     t.DebounceDepth,
				KeyShift:          t.KeyShift,
			},
			XAxis:     r.XAxis,
			YAxis:     r.YAxis,
			AltButton: r.AltButton,
			InvertY:   t.InvertY,
		})
	}
	return cfg
}
