package radial

import "github.com/verte-zerg/radtype/internal/model"

// Zone is the radial band a stick reading falls into.
type Zone int

const (
	// ZoneDead is the tiny zone around rest, eligible for the center key.
	ZoneDead Zone = iota
	// ZoneNeutral selects nothing.
	ZoneNeutral
	// ZoneActive is beyond the target radius; a segment is selected.
	ZoneActive
)

func (z Zone) String() string {
	switch z {
	case ZoneDead:
		return "dead"
	case ZoneActive:
		return "active"
	default:
		return "neutral"
	}
}

// Classification is the zone result for one sample.
type Classification struct {
	Zone        Zone
	Active      bool
	InTinyZone  bool
	MagnitudeSq float64
}

// Classify places a sample into exactly one zone. tinyRadius must not exceed targetRadius.
func Classify(s model.StickSample, targetRadius, tinyRadius float64) Classification {
	magSq := s.X*s.X + s.Y*s.Y
	c := Classification{
		Active:      magSq > targetRadius*targetRadius,
		InTinyZone:  magSq <= tinyRadius*tinyRadius,
		MagnitudeSq: magSq,
	}
	switch {
	case c.Active:
		c.Zone = ZoneActive
	case c.InTinyZone:
		c.Zone = ZoneDead
	default:
		c.Zone = ZoneNeutral
	}
	return c
}
