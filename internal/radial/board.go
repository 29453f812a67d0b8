package radial

import (
	"fmt"
	"time"

	"github.com/verte-zerg/radtype/internal/model"
)

// DefaultPulse is the rumble played for every edit.
var DefaultPulse = model.HapticPulse{Duration: 50 * time.Millisecond, Strong: 1, Weak: 1}

type ringSlot struct {
	ring    *Ring
	binding model.RingBinding
}

// Board drives every ring of a layout from device snapshots and merges their
// output into one ordered list of edits.
type Board struct {
	cfg       model.BoardConfig
	slots     []ringSlot
	backspace buttonEdge
	space     buttonEdge
}

// NewBoard builds one ring per binding.
func NewBoard(cfg model.BoardConfig) (*Board, error) {
	if len(cfg.Rings) == 0 {
		return nil, ErrNoRings
	}
	b := &Board{cfg: cfg}
	for i, binding := range cfg.Rings {
		ring, err := NewRing(binding.Ring)
		if err != nil {
			return nil, fmt.Errorf("ring %d: %w", i, err)
		}
		b.slots = append(b.slots, ringSlot{ring: ring, binding: binding})
	}
	return b, nil
}

// Config returns the board configuration.
func (b *Board) Config() model.BoardConfig {
	return b.cfg
}

// Rings returns the ring state machines in binding order.
func (b *Board) Rings() []*Ring {
	out := make([]*Ring, len(b.slots))
	for i, s := range b.slots {
		out[i] = s.ring
	}
	return out
}

// StickFor extracts a ring's stick sample, flipping the device "down = positive" convention.
func StickFor(snap model.Snapshot, binding model.RingBinding) model.StickSample {
	y := snap.Axis(binding.YAxis)
	if binding.InvertY {
		y = -y
	}
	return model.StickSample{X: snap.Axis(binding.XAxis), Y: y}
}

// Tick evaluates one frame. Commits are ordered by ring, then backspace, then space.
func (b *Board) Tick(snap model.Snapshot) model.FrameOutput {
	out := model.FrameOutput{Rings: make([]model.RingView, 0, len(b.slots))}
	for _, s := range b.slots {
		step := s.ring.Step(StickFor(snap, s.binding), snap.Button(s.binding.AltButton))
		out.Rings = append(out.Rings, step.View)
		if step.Committed {
			out.Commits = append(out.Commits, step.Commit)
		}
	}
	if _, released := b.backspace.update(b.cfg.BackspaceButton >= 0 && snap.Button(b.cfg.BackspaceButton)); released {
		out.Commits = append(out.Commits, model.Commit{Kind: model.CommitBackspace})
	}
	if _, released := b.space.update(b.cfg.SpaceButton >= 0 && snap.Button(b.cfg.SpaceButton)); released {
		out.Commits = append(out.Commits, model.Commit{Kind: model.CommitSpace, Char: ' '})
	}
	out.Rumble = len(out.Commits) > 0
	return out
}

// Reset discards all pending debounce and button state.
func (b *Board) Reset() {
	for _, s := range b.slots {
		s.ring.Reset()
	}
	b.backspace = buttonEdge{}
	b.space = buttonEdge{}
}
