// Package model defines shared data structures.
package model

import "time"

// Layer identifies which key set of a ring is in use.
type Layer int

const (
	LayerDefault Layer = iota
	LayerAlt
)

func (l Layer) String() string {
	if l == LayerAlt {
		return "alt"
	}
	return "default"
}

// StickSample is one analog stick reading, each axis in [-1,1] with up = positive Y.
type StickSample struct {
	X float64
	Y float64
}

// Snapshot is the raw state of one device for a single frame.
// A zero Snapshot means the stick is at rest and every button is released.
type Snapshot struct {
	Axes    []float64
	Buttons []bool
}

// Axis returns the axis value or 0 when the id is out of range.
func (s Snapshot) Axis(id int) float64 {
	if id < 0 || id >= len(s.Axes) {
		return 0
	}
	return s.Axes[id]
}

// Button returns the button state or false when the id is out of range.
func (s Snapshot) Button(id int) bool {
	if id < 0 || id >= len(s.Buttons) {
		return false
	}
	return s.Buttons[id]
}

// RingConfig defines one ring of keys. It is immutable once a ring is built.
type RingConfig struct {
	Name        string
	CenterKey   rune
	DefaultKeys []rune
	AltKeys     []rune

	TargetRadius float64
	TinyRadius   float64

	// Fractions of a segment angle used to rotate segment boundaries.
	OffsetFraction    float64
	AltOffsetFraction float64

	DebounceDepth int
	KeyShift      int
}

// RingBinding wires a ring to its device axes and alt button.
type RingBinding struct {
	Ring      RingConfig
	XAxis     int
	YAxis     int
	AltButton int
	InvertY   bool
}

// HapticPulse describes a dual-rumble pulse.
type HapticPulse struct {
	Duration time.Duration
	Strong   float64
	Weak     float64
}

// BoardConfig defines every ring plus the shared editing buttons.
type BoardConfig struct {
	Name            string
	Rings           []RingBinding
	BackspaceButton int
	SpaceButton     int
	Pulse           HapticPulse
}

// RingView is the per-frame classification exposed for rendering.
type RingView struct {
	Name          string
	Stick         StickSample
	Active        bool
	ActiveSegment int
	ActiveKey     rune
	InTinyZone    bool
	Layer         Layer
	AltDown       bool
}

// CommitKind classifies a text edit emitted by a frame.
type CommitKind int

const (
	CommitLetter CommitKind = iota
	CommitBackspace
	CommitSpace
)

// Commit is a single edit to the text buffer.
type Commit struct {
	Kind   CommitKind
	Char   rune
	Ring   string
	Layer  Layer
	Center bool
}

// FrameOutput is everything a frame produced.
type FrameOutput struct {
	Rings   []RingView
	Commits []Commit
	Rumble  bool
}
