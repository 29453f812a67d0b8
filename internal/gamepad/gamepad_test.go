package gamepad

import (
	"errors"
	"testing"
	"time"

	"github.com/0xcafed00d/joystick"

	"github.com/verte-zerg/radtype/internal/model"
)

type fakeJoystick struct {
	name    string
	state   joystick.State
	readErr error
	closed  bool
}

func (f *fakeJoystick) AxisCount() int   { return len(f.state.AxisData) }
func (f *fakeJoystick) ButtonCount() int { return 8 }
func (f *fakeJoystick) Name() string     { return f.name }
func (f *fakeJoystick) Read() (joystick.State, error) {
	return f.state, f.readErr
}
func (f *fakeJoystick) Close() { f.closed = true }

type fakeActuator struct {
	pulses []model.HapticPulse
	closed bool
}

func (f *fakeActuator) Pulse(p model.HapticPulse) error {
	f.pulses = append(f.pulses, p)
	return nil
}

func (f *fakeActuator) Close() error {
	f.closed = true
	return nil
}

func noHaptics(string) (Actuator, error) { return nil, ErrNoHaptics }

func TestNormalizeScalesAndClamps(t *testing.T) {
	state := joystick.State{AxisData: []int{32767, -32768, 0, 16384}, Buttons: 0b101}
	snap := Normalize(state, 4)
	if snap.Axes[0] != 1 || snap.Axes[1] != -1 || snap.Axes[2] != 0 {
		t.Fatalf("unexpected axes: %v", snap.Axes)
	}
	if snap.Axes[3] < 0.49 || snap.Axes[3] > 0.51 {
		t.Fatalf("expected half deflection, got %v", snap.Axes[3])
	}
	want := []bool{true, false, true, false}
	for i, b := range want {
		if snap.Buttons[i] != b {
			t.Fatalf("button %d: expected %v, got %v", i, b, snap.Buttons[i])
		}
	}
}

func TestManagerAttachesAndSamples(t *testing.T) {
	js := &fakeJoystick{name: "pad", state: joystick.State{AxisData: []int{32767, 0}}}
	act := &fakeActuator{}
	m := NewManager(Options{
		Open:        func(int) (joystick.Joystick, error) { return js, nil },
		FindHaptics: func(string) (Actuator, error) { return act, nil },
	})
	snap := m.Sample()
	if !m.Connected() || m.Name() != "pad" {
		t.Fatalf("expected attached device")
	}
	if snap.Axis(0) != 1 {
		t.Fatalf("expected full deflection, got %v", snap.Axis(0))
	}
	m.Pulse(model.HapticPulse{Duration: 50 * time.Millisecond, Strong: 1, Weak: 1})
	if len(act.pulses) != 1 {
		t.Fatalf("expected one pulse, got %d", len(act.pulses))
	}
}

func TestManagerReadErrorDetaches(t *testing.T) {
	js := &fakeJoystick{name: "pad", state: joystick.State{AxisData: []int{32767, 0}}}
	act := &fakeActuator{}
	opens := 0
	m := NewManager(Options{
		RetryFrames: 2,
		Open: func(int) (joystick.Joystick, error) {
			opens++
			return js, nil
		},
		FindHaptics: func(string) (Actuator, error) { return act, nil },
	})
	m.Sample()
	js.readErr = errors.New("unplugged")
	snap := m.Sample()
	if m.Connected() || len(snap.Axes) != 0 || len(snap.Buttons) != 0 {
		t.Fatalf("expected zero snapshot after a read error, got %+v", snap)
	}
	if !js.closed || !act.closed {
		t.Fatalf("expected device and actuator to be closed")
	}
	if m.Actuator() != nil {
		t.Fatalf("expected actuator to be dropped")
	}

	js.readErr = nil
	js.closed = false
	m.Sample()
	m.Sample()
	if m.Connected() {
		t.Fatalf("expected reconnect to wait for the retry interval")
	}
	m.Sample()
	if !m.Connected() || opens != 2 {
		t.Fatalf("expected reconnect after retry interval, opens=%d", opens)
	}
}

func TestManagerWithoutDevice(t *testing.T) {
	m := NewManager(Options{
		Open:        func(int) (joystick.Joystick, error) { return nil, errors.New("missing") },
		FindHaptics: noHaptics,
	})
	snap := m.Sample()
	if m.Connected() || snap.Button(0) || snap.Axis(0) != 0 {
		t.Fatalf("expected rest snapshot without a device")
	}
	m.Pulse(model.HapticPulse{Duration: time.Millisecond})
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestManagerWithoutHaptics(t *testing.T) {
	js := &fakeJoystick{name: "pad"}
	m := NewManager(Options{
		Open:        func(int) (joystick.Joystick, error) { return js, nil },
		FindHaptics: noHaptics,
	})
	m.Sample()
	if !m.Connected() || m.Actuator() != nil {
		t.Fatalf("expected device without actuator")
	}
	m.Pulse(model.HapticPulse{Duration: time.Millisecond})
}

func TestListSkipsMissingIndexes(t *testing.T) {
	open := func(i int) (joystick.Joystick, error) {
		if i == 1 {
			return &fakeJoystick{name: "second", state: joystick.State{AxisData: make([]int, 4)}}, nil
		}
		return nil, errors.New("missing")
	}
	infos := List(open, 4)
	if len(infos) != 1 || infos[0].Index != 1 || infos[0].Name != "second" || infos[0].Axes != 4 {
		t.Fatalf("unexpected list: %+v", infos)
	}
}
