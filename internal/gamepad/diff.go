package gamepad

import (
	"math"

	"github.com/verte-zerg/radtype/internal/model"
)

// ChangeKind distinguishes axis and button changes.
type ChangeKind int

const (
	AxisChange ChangeKind = iota
	ButtonChange
)

func (k ChangeKind) String() string {
	if k == ButtonChange {
		return "button"
	}
	return "axis"
}

// Change is one input that moved between two snapshots.
type Change struct {
	Kind    ChangeKind
	ID      int
	Value   float64
	Pressed bool
}

// Diff lists the buttons that toggled and the axes that moved by at least threshold.
// Inputs missing from prev count as zero.
func Diff(prev, next model.Snapshot, threshold float64) []Change {
	var out []Change
	for i, v := range next.Axes {
		if math.Abs(v-prev.Axis(i)) >= threshold && v != prev.Axis(i) {
			out = append(out, Change{Kind: AxisChange, ID: i, Value: v})
		}
	}
	for i, b := range next.Buttons {
		if b != prev.Button(i) {
			out = append(out, Change{Kind: ButtonChange, ID: i, Pressed: b})
		}
	}
	return out
}
