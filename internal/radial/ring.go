package radial

import (
	"fmt"
	"math"

	"github.com/verte-zerg/radtype/internal/model"
)

const (
	// DefaultDebounceDepth is the number of frames OR-ed into "recently active".
	DefaultDebounceDepth = 2
	// DefaultKeyShift maps segment i to keys[i+1], the key drawn at the segment center
	// when boundaries are rotated by half a segment.
	DefaultKeyShift = 1
	// DefaultOffsetFraction rotates boundaries by half a segment.
	DefaultOffsetFraction = 0.5
)

type layerGeometry struct {
	keys     []rune
	segAngle float64
	offset   float64
}

func newLayerGeometry(keys []rune, fraction float64) layerGeometry {
	if len(keys) == 0 {
		return layerGeometry{}
	}
	segAngle := SegmentAngle(len(keys))
	return layerGeometry{
		keys:     append([]rune(nil), keys...),
		segAngle: segAngle,
		offset:   segAngle * fraction,
	}
}

type candidate struct {
	key   rune
	layer model.Layer
	ok    bool
}

// Step is the result of feeding one frame to a Ring.
type Step struct {
	View      model.RingView
	Commit    model.Commit
	Committed bool
}

// Ring is the selection state machine for a single stick.
type Ring struct {
	cfg        model.RingConfig
	defaults   layerGeometry
	alts       layerGeometry
	active     *Window[bool]
	candidates *Window[candidate]
	alt        buttonEdge

	enteredAltKey bool
}

// NewRing validates cfg and builds a ring. Tuning fields are taken as given;
// layout.DefaultTuning carries the standard values.
func NewRing(cfg model.RingConfig) (*Ring, error) {
	if err := ValidateRing(cfg); err != nil {
		return nil, err
	}
	return &Ring{
		cfg:        cfg,
		defaults:   newLayerGeometry(cfg.DefaultKeys, cfg.OffsetFraction),
		alts:       newLayerGeometry(cfg.AltKeys, cfg.AltOffsetFraction),
		active:     NewWindow[bool](cfg.DebounceDepth),
		candidates: NewWindow[candidate](cfg.DebounceDepth + 1),
	}, nil
}

// ValidateRing rejects configurations no segment can be computed for.
func ValidateRing(cfg model.RingConfig) error {
	name := cfg.Name
	if name == "" {
		name = "ring"
	}
	if len(cfg.DefaultKeys) == 0 {
		return fmt.Errorf("%s: %w", name, ErrEmptyKeys)
	}
	if !(cfg.TargetRadius > 0 && cfg.TargetRadius < 1) {
		return fmt.Errorf("%s: %w: target radius %v must be in (0,1)", name, ErrInvalidRadius, cfg.TargetRadius)
	}
	if !(cfg.TinyRadius > 0) {
		return fmt.Errorf("%s: %w: tiny radius %v must be > 0", name, ErrInvalidRadius, cfg.TinyRadius)
	}
	if cfg.TinyRadius > cfg.TargetRadius {
		return fmt.Errorf("%s: %w: tiny radius %v exceeds target radius %v", name, ErrInvalidRadius, cfg.TinyRadius, cfg.TargetRadius)
	}
	if cfg.DebounceDepth < 1 {
		return fmt.Errorf("%s: %w", name, ErrInvalidDebounce)
	}
	for _, f := range []float64{cfg.OffsetFraction, cfg.AltOffsetFraction} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%s: offset fraction must be finite", name)
		}
	}
	return nil
}

// Config returns the ring configuration.
func (r *Ring) Config() model.RingConfig {
	return r.cfg
}

// HasAltLayer reports whether the ring has alternate keys.
func (r *Ring) HasAltLayer() bool {
	return len(r.alts.keys) > 0
}

// SegmentAngle returns the segment width of a layer in degrees.
func (r *Ring) SegmentAngle(layer model.Layer) float64 {
	return r.geometry(layer).segAngle
}

// SegmentOffset returns the boundary rotation of a layer in degrees.
func (r *Ring) SegmentOffset(layer model.Layer) float64 {
	return r.geometry(layer).offset
}

func (r *Ring) geometry(layer model.Layer) layerGeometry {
	if layer == model.LayerAlt && r.HasAltLayer() {
		return r.alts
	}
	return r.defaults
}

// KeyForSegment returns the key committed for a segment of the given layer.
func (r *Ring) KeyForSegment(layer model.Layer, segment int) rune {
	g := r.geometry(layer)
	return g.keys[wrapIndex(segment+r.cfg.KeyShift, len(g.keys))]
}

// Step advances the ring by one frame.
func (r *Ring) Step(sample model.StickSample, altDown bool) Step {
	cls := Classify(sample, r.cfg.TargetRadius, r.cfg.TinyRadius)

	layer := model.LayerDefault
	if altDown && r.HasAltLayer() {
		layer = model.LayerAlt
	}

	view := model.RingView{
		Name:          r.cfg.Name,
		Stick:         sample,
		ActiveSegment: -1,
		InTinyZone:    cls.InTinyZone,
		Layer:         layer,
		AltDown:       altDown,
	}

	cand := candidate{}
	if cls.Active {
		g := r.geometry(layer)
		seg := SegmentIndex(sample.X, sample.Y, g.segAngle, g.offset)
		key := r.KeyForSegment(layer, seg)
		view.Active = true
		view.ActiveSegment = seg
		view.ActiveKey = key
		cand = candidate{key: key, layer: layer, ok: true}
	}

	r.active.Push(cls.Active)
	r.candidates.Push(cand)

	pressed, released := r.alt.update(altDown)
	if pressed {
		r.enteredAltKey = false
	}
	if altDown && cls.Active {
		r.enteredAltKey = true
	}

	step := Step{View: view}

	pending := r.candidates.Oldest()
	// The oldest candidate of the next frame is inside the current active window,
	// so a settled selection is reported exactly once.
	if pending.ok && !AnyTrue(r.active) {
		step.Commit = model.Commit{Kind: model.CommitLetter, Char: pending.key, Ring: r.cfg.Name, Layer: pending.layer}
		step.Committed = true
	}

	if released && cls.InTinyZone && !r.enteredAltKey && !step.Committed {
		step.Commit = model.Commit{Kind: model.CommitLetter, Char: r.cfg.CenterKey, Ring: r.cfg.Name, Center: true}
		step.Committed = true
	}
	return step
}

// Reset discards debounce history and button state.
func (r *Ring) Reset() {
	r.active.Reset()
	r.candidates.Reset()
	r.alt = buttonEdge{}
	r.enteredAltKey = false
}
