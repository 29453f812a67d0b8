// Package gamepad samples a joystick device once per frame and exposes its rumble motor.
package gamepad

import (
	"context"
	"log/slog"
	"time"

	"github.com/0xcafed00d/joystick"
	"github.com/pkg/errors"

	"github.com/verte-zerg/radtype/internal/model"
)

// axisMax is the full-scale value reported by the joystick driver.
const axisMax = 32767.0

// ErrNoHaptics is returned when a device has no usable force-feedback node.
var ErrNoHaptics = errors.New("no force-feedback device")

// Actuator plays a rumble pulse. Pulse must not block on the motor.
type Actuator interface {
	Pulse(p model.HapticPulse) error
	Close() error
}

// Opener opens the joystick with the given index.
type Opener func(index int) (joystick.Joystick, error)

// ActuatorFinder locates the rumble motor belonging to a joystick name.
type ActuatorFinder func(name string) (Actuator, error)

// Options configures a Manager.
type Options struct {
	Index int
	// RetryFrames is how many frames to wait between reconnect attempts.
	RetryFrames int
	Open        Opener
	FindHaptics ActuatorFinder
	Logger      *slog.Logger
}

// Manager owns the attach/detach lifecycle of one joystick.
type Manager struct {
	opts     Options
	js       joystick.Joystick
	name     string
	actuator Actuator
	retryIn  int
	log      *slog.Logger
}

// NewManager returns a manager; the device is opened lazily by Sample.
func NewManager(opts Options) *Manager {
	if opts.Open == nil {
		opts.Open = joystick.Open
	}
	if opts.FindHaptics == nil {
		opts.FindHaptics = FindActuator
	}
	if opts.RetryFrames <= 0 {
		opts.RetryFrames = 60
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Manager{opts: opts, log: log}
}

// Connected reports whether a device is attached.
func (m *Manager) Connected() bool {
	return m.js != nil
}

// Name returns the attached device name, or "" when detached.
func (m *Manager) Name() string {
	return m.name
}

// Actuator returns the current rumble motor. It may be nil and may change between frames.
func (m *Manager) Actuator() Actuator {
	return m.actuator
}

// Sample reads the current device state. A missing or failing device yields a zero
// snapshot, which reads as stick at rest with every button released.
func (m *Manager) Sample() model.Snapshot {
	if m.js == nil && !m.tryAttach() {
		return model.Snapshot{}
	}
	state, err := m.js.Read()
	if err != nil {
		m.log.Warn("joystick read failed, detaching", "index", m.opts.Index, "err", err)
		m.detach()
		return model.Snapshot{}
	}
	return Normalize(state, m.js.ButtonCount())
}

func (m *Manager) tryAttach() bool {
	if m.retryIn > 0 {
		m.retryIn--
		return false
	}
	js, err := m.opts.Open(m.opts.Index)
	if err != nil {
		m.retryIn = m.opts.RetryFrames
		m.log.Debug("joystick not available", "index", m.opts.Index, "err", err)
		return false
	}
	m.js = js
	m.name = js.Name()
	m.log.Info("joystick attached", "index", m.opts.Index, "name", m.name,
		"axes", js.AxisCount(), "buttons", js.ButtonCount())

	act, err := m.opts.FindHaptics(m.name)
	if err != nil {
		m.log.Info("haptics unavailable", "name", m.name, "err", err)
	} else {
		m.actuator = act
	}
	return true
}

func (m *Manager) detach() {
	if m.actuator != nil {
		if err := m.actuator.Close(); err != nil {
			m.log.Debug("failed to close actuator", "err", err)
		}
		m.actuator = nil
	}
	if m.js != nil {
		m.js.Close()
		m.js = nil
	}
	m.log.Info("joystick detached", "index", m.opts.Index, "name", m.name)
	m.name = ""
	m.retryIn = m.opts.RetryFrames
}

// Pulse plays p on the current actuator, if any.
func (m *Manager) Pulse(p model.HapticPulse) {
	if m.actuator == nil {
		return
	}
	if err := m.actuator.Pulse(p); err != nil {
		m.log.Debug("rumble failed", "err", err)
	}
}

// Close releases the device.
func (m *Manager) Close() error {
	if m.js != nil {
		m.detach()
	}
	return nil
}

// Normalize converts a raw joystick state into a snapshot with axes in [-1,1].
func Normalize(state joystick.State, buttons int) model.Snapshot {
	snap := model.Snapshot{
		Axes:    make([]float64, len(state.AxisData)),
		Buttons: make([]bool, buttons),
	}
	for i, v := range state.AxisData {
		f := float64(v) / axisMax
		if f > 1 {
			f = 1
		}
		if f < -1 {
			f = -1
		}
		snap.Axes[i] = f
	}
	for i := 0; i < buttons && i < 32; i++ {
		snap.Buttons[i] = state.Buttons&(1<<uint(i)) != 0
	}
	return snap
}

// Info describes one attached joystick.
type Info struct {
	Index   int
	Name    string
	Axes    int
	Buttons int
}

// HapticNode is an event device with a rumble motor.
type HapticNode struct {
	Path string
	Name string
}

// List probes joystick indexes [0, max) and returns the ones that open.
func List(open Opener, max int) []Info {
	if open == nil {
		open = joystick.Open
	}
	var out []Info
	for i := 0; i < max; i++ {
		js, err := open(i)
		if err != nil {
			continue
		}
		out = append(out, Info{Index: i, Name: js.Name(), Axes: js.AxisCount(), Buttons: js.ButtonCount()})
		js.Close()
	}
	return out
}

// Poll samples the manager every interval until ctx is done.
// fn runs on the calling goroutine.
func Poll(ctx context.Context, m *Manager, interval time.Duration, fn func(model.Snapshot)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(m.Sample())
		}
	}
}
