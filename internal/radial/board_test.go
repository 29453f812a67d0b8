package radial

import (
	"errors"
	"reflect"
	"testing"

	"github.com/verte-zerg/radtype/internal/model"
)

func dualConfig() model.BoardConfig {
	leftRing := twelveKeyConfig()
	rightRing := twelveKeyConfig()
	rightRing.Name = "right"
	rightRing.CenterKey = 'T'
	rightRing.DefaultKeys = []rune("LPOIUYJHBNMK")
	return model.BoardConfig{
		Name: "test",
		Rings: []model.RingBinding{
			{Ring: leftRing, XAxis: 0, YAxis: 1, AltButton: 4, InvertY: true},
			{Ring: rightRing, XAxis: 2, YAxis: 3, AltButton: 5, InvertY: true},
		},
		BackspaceButton: 2,
		SpaceButton:     3,
		Pulse:           DefaultPulse,
	}
}

func snapshot(axes []float64, pressed ...int) model.Snapshot {
	snap := model.Snapshot{Axes: axes, Buttons: make([]bool, 8)}
	for _, b := range pressed {
		snap.Buttons[b] = true
	}
	return snap
}

func mustBoard(t *testing.T, cfg model.BoardConfig) *Board {
	t.Helper()
	b, err := NewBoard(cfg)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	return b
}

func tickAll(b *Board, snaps []model.Snapshot) []model.Commit {
	var commits []model.Commit
	for _, s := range snaps {
		commits = append(commits, b.Tick(s).Commits...)
	}
	return commits
}

func TestBoardInvertsVerticalAxis(t *testing.T) {
	b := mustBoard(t, dualConfig())
	// Raw device "up" is negative.
	out := b.Tick(snapshot([]float64{0, -1, 0, 0}))
	if out.Rings[0].ActiveKey != 'R' {
		t.Fatalf("expected R when pushing up, got %q", out.Rings[0].ActiveKey)
	}
}

func TestBoardMergesBothRings(t *testing.T) {
	b := mustBoard(t, dualConfig())
	restSnap := snapshot([]float64{0, 0, 0, 0})
	snaps := []model.Snapshot{
		restSnap,
		snapshot([]float64{1, 0, 1, 0}),
		restSnap, restSnap, restSnap,
	}
	commits := tickAll(b, snaps)
	if len(commits) != 2 {
		t.Fatalf("expected two commits, got %+v", commits)
	}
	if commits[0].Char != 'F' || commits[1].Char != 'L' {
		t.Fatalf("expected F then L in ring order, got %q %q", commits[0].Char, commits[1].Char)
	}
}

func TestBoardRumblesOnCommit(t *testing.T) {
	b := mustBoard(t, dualConfig())
	restSnap := snapshot([]float64{0, 0, 0, 0})
	if out := b.Tick(restSnap); out.Rumble {
		t.Fatalf("expected no rumble without commits")
	}
	b.Tick(snapshot([]float64{0, 0, 0, 0}, 3))
	out := b.Tick(restSnap)
	if !out.Rumble || len(out.Commits) != 1 || out.Commits[0].Kind != model.CommitSpace {
		t.Fatalf("expected space commit with rumble, got %+v", out)
	}
}

func TestBoardBackspaceOnRelease(t *testing.T) {
	b := mustBoard(t, dualConfig())
	restSnap := snapshot([]float64{0, 0, 0, 0})
	held := snapshot([]float64{0, 0, 0, 0}, 2)
	commits := tickAll(b, []model.Snapshot{held, held, held})
	if len(commits) != 0 {
		t.Fatalf("expected no backspace while held, got %+v", commits)
	}
	commits = tickAll(b, []model.Snapshot{restSnap, restSnap})
	if len(commits) != 1 || commits[0].Kind != model.CommitBackspace {
		t.Fatalf("expected one backspace, got %+v", commits)
	}
}

func TestBoardInputGapIsRest(t *testing.T) {
	b := mustBoard(t, dualConfig())
	var gap model.Snapshot
	for i := 0; i < 10; i++ {
		out := b.Tick(gap)
		if len(out.Commits) != 0 {
			t.Fatalf("expected no commits on input gaps, got %+v", out.Commits)
		}
		if !out.Rings[0].InTinyZone || out.Rings[0].Active {
			t.Fatalf("expected rest classification during a gap")
		}
	}
}

func TestBoardRingOrderIndependence(t *testing.T) {
	cfg := dualConfig()
	frames := []model.Snapshot{
		snapshot([]float64{0, 0, 0, 0}),
		snapshot([]float64{1, 0, 0, 1}),
		snapshot([]float64{1, 0, 0, 1}),
		snapshot([]float64{0, 0, 0, 0}, 5),
		snapshot([]float64{0, 0, 0, 0}),
		snapshot([]float64{0, 0, 0, 0}),
	}

	run := func(reverse bool) map[string][]rune {
		b := mustBoard(t, cfg)
		rings := b.Rings()
		got := map[string][]rune{}
		for _, snap := range frames {
			order := []int{0, 1}
			if reverse {
				order = []int{1, 0}
			}
			for _, i := range order {
				binding := cfg.Rings[i]
				step := rings[i].Step(StickFor(snap, binding), snap.Button(binding.AltButton))
				if step.Committed {
					got[binding.Ring.Name] = append(got[binding.Ring.Name], step.Commit.Char)
				}
			}
		}
		return got
	}

	forward := run(false)
	backward := run(true)
	if !reflect.DeepEqual(forward, backward) {
		t.Fatalf("ring order changed results: %v vs %v", forward, backward)
	}
	if len(forward["left"]) != 1 || len(forward["right"]) != 1 {
		t.Fatalf("expected one commit per ring, got %v", forward)
	}
}

func TestBoardResetDropsPendingCommits(t *testing.T) {
	b := mustBoard(t, dualConfig())
	b.Tick(snapshot([]float64{1, 0, 0, 0}, 2))
	b.Reset()
	commits := tickAll(b, []model.Snapshot{{}, {}, {}, {}})
	if len(commits) != 0 {
		t.Fatalf("expected reset to clear pending state, got %+v", commits)
	}
}

func TestNewBoardErrors(t *testing.T) {
	if _, err := NewBoard(model.BoardConfig{}); !errors.Is(err, ErrNoRings) {
		t.Fatalf("expected ErrNoRings, got %v", err)
	}
	cfg := dualConfig()
	cfg.Rings[1].Ring.DefaultKeys = nil
	if _, err := NewBoard(cfg); !errors.Is(err, ErrEmptyKeys) {
		t.Fatalf("expected ErrEmptyKeys, got %v", err)
	}
}
