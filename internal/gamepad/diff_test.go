package gamepad

import (
	"testing"

	"github.com/verte-zerg/radtype/internal/model"
)

func TestDiffReportsToggledButtonsAndMovedAxes(t *testing.T) {
	prev := model.Snapshot{Axes: []float64{0, 0.5}, Buttons: []bool{false, true}}
	next := model.Snapshot{Axes: []float64{0.01, 1}, Buttons: []bool{true, true, true}}
	changes := Diff(prev, next, 0.05)
	if len(changes) != 3 {
		t.Fatalf("expected three changes, got %+v", changes)
	}
	if changes[0].Kind != AxisChange || changes[0].ID != 1 || changes[0].Value != 1 {
		t.Fatalf("unexpected axis change: %+v", changes[0])
	}
	if changes[1].Kind != ButtonChange || changes[1].ID != 0 || !changes[1].Pressed {
		t.Fatalf("unexpected button change: %+v", changes[1])
	}
	if changes[2].ID != 2 {
		t.Fatalf("expected newly reported button 2, got %+v", changes[2])
	}
}

func TestDiffIdenticalSnapshots(t *testing.T) {
	s := model.Snapshot{Axes: []float64{0.3}, Buttons: []bool{true}}
	if changes := Diff(s, s, 0); len(changes) != 0 {
		t.Fatalf("expected no changes, got %+v", changes)
	}
}
