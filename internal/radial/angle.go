// Package radial converts analog stick readings into debounced key commits.
package radial

import "math"

const fullTurn = 360.0

// Atan2Positive returns the angle of (x, y) in degrees within [0,360).
// The zero vector yields 0.
func Atan2Positive(x, y float64) float64 {
	return NormalizeDegrees(math.Atan2(y, x) * 180 / math.Pi)
}

// NormalizeDegrees wraps an angle into [0,360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, fullTurn)
	if deg < 0 {
		deg += fullTurn
	}
	// -tiny + 360 rounds to exactly 360.
	if deg >= fullTurn {
		deg = 0
	}
	return deg
}

// SegmentAngle returns the angular width of one of n segments.
func SegmentAngle(n int) float64 {
	return fullTurn / float64(n)
}

// SegmentIndex quantizes the direction of (x, y) into a segment index.
// Boundaries are rotated by offset degrees.
func SegmentIndex(x, y, segAngle, offset float64) int {
	count := int(math.Round(fullTurn / segAngle))
	rel := NormalizeDegrees(Atan2Positive(x, y) - offset)
	// Absorb float error for angles sitting exactly on a boundary.
	idx := int(math.Floor(rel/segAngle + 1e-9))
	if idx >= count {
		idx -= count
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
