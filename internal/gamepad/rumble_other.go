//go:build !linux

package gamepad

import "github.com/pkg/errors"

// FindActuator is only implemented on Linux.
func FindActuator(name string) (Actuator, error) {
	return nil, errors.Wrapf(ErrNoHaptics, "device %q", name)
}

// ListHaptics is only implemented on Linux.
func ListHaptics() ([]HapticNode, error) {
	return nil, nil
}
