//go:build linux

package gamepad

import (
	"bytes"
	"encoding/binary"
	"math"
	"unsafe"

	evdev "github.com/gvalkov/golang-evdev"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/verte-zerg/radtype/internal/model"
)

const (
	ffRumble   = 0x50
	evFF       = 0x15
	eviocRmFF  = 0x40044581
	eventGlob  = "/dev/input/event*"
	ffNewIndex = -1
)

// ffEffect mirrors struct ff_effect with the rumble member of its union.
type ffEffect struct {
	Type      uint16
	ID        int16
	Direction uint16
	Trigger   [2]uint16
	Replay    [2]uint16 // length, delay in ms
	_         uint16
	Strong    uint16
	Weak      uint16
	_         [20 + unsafe.Sizeof(uintptr(0))]byte
}

var eviocSFF = uintptr(0x40000000 | unsafe.Sizeof(ffEffect{})<<16 | 'E'<<8 | 0x80)

type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

type evdevActuator struct {
	fd   int
	path string
	id   int16
}

// FindActuator opens the event node of the named device if it advertises FF_RUMBLE.
func FindActuator(name string) (Actuator, error) {
	devices, err := evdev.ListInputDevices(eventGlob)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list input devices")
	}
	path := ""
	for _, dev := range devices {
		if path == "" && dev.Name == name && hasRumble(dev) {
			path = dev.Fn
		}
		if dev.File != nil {
			dev.File.Close()
		}
	}
	if path == "" {
		return nil, errors.Wrapf(ErrNoHaptics, "device %q", name)
	}
	return OpenActuator(path)
}

// ListHaptics returns every event node that advertises FF_RUMBLE.
func ListHaptics() ([]HapticNode, error) {
	devices, err := evdev.ListInputDevices(eventGlob)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list input devices")
	}
	var out []HapticNode
	for _, dev := range devices {
		if hasRumble(dev) {
			out = append(out, HapticNode{Path: dev.Fn, Name: dev.Name})
		}
		if dev.File != nil {
			dev.File.Close()
		}
	}
	return out, nil
}

func hasRumble(dev *evdev.InputDevice) bool {
	for _, code := range dev.CapabilitiesFlat[evdev.EV_FF] {
		if code == ffRumble {
			return true
		}
	}
	return false
}

// OpenActuator opens an event node for writing force-feedback effects.
func OpenActuator(path string) (Actuator, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	return &evdevActuator{fd: fd, path: path, id: ffNewIndex}, nil
}

func (a *evdevActuator) Pulse(p model.HapticPulse) error {
	effect := ffEffect{
		Type:   ffRumble,
		ID:     a.id,
		Strong: magnitude(p.Strong),
		Weak:   magnitude(p.Weak),
	}
	effect.Replay[0] = uint16(min(p.Duration.Milliseconds(), math.MaxUint16))
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(a.fd), eviocSFF, uintptr(unsafe.Pointer(&effect))); errno != 0 {
		return errors.Wrapf(errno, "failed to upload effect to %s", a.path)
	}
	a.id = effect.ID

	var buf bytes.Buffer
	ev := inputEvent{Type: evFF, Code: uint16(a.id), Value: 1}
	if err := binary.Write(&buf, binary.LittleEndian, ev); err != nil {
		return errors.Wrap(err, "failed to encode effect event")
	}
	if _, err := unix.Write(a.fd, buf.Bytes()); err != nil {
		return errors.Wrapf(err, "failed to play effect on %s", a.path)
	}
	return nil
}

func (a *evdevActuator) Close() error {
	if a.id != ffNewIndex {
		unix.Syscall(unix.SYS_IOCTL, uintptr(a.fd), eviocRmFF, uintptr(a.id))
		a.id = ffNewIndex
	}
	if err := unix.Close(a.fd); err != nil {
		return errors.Wrapf(err, "failed to close %s", a.path)
	}
	return nil
}

func magnitude(f float64) uint16 {
	if f <= 0 || math.IsNaN(f) {
		return 0
	}
	if f >= 1 {
		return math.MaxUint16
	}
	return uint16(f * math.MaxUint16)
}
