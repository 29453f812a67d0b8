package layout

import (
	"fmt"
	"unicode/utf8"

	"github.com/verte-zerg/radtype/internal/config"
)

// ApplyRings merges ring overrides from the config file into a preset.
func ApplyRings(p Preset, overrides []config.RingConfig) (Preset, error) {
	rings := append([]RingPreset(nil), p.Rings...)
	for _, o := range overrides {
		if o.Name == "" {
			return Preset{}, fmt.Errorf("ring override without a name")
		}
		idx := -1
		for i, r := range rings {
			if r.Name == o.Name {
				idx = i
				break
			}
		}
		if idx == -1 {
			if o.Keys == nil || o.XAxis == nil || o.YAxis == nil {
				return Preset{}, fmt.Errorf("new ring %q needs keys, x-axis and y-axis", o.Name)
			}
			rings = append(rings, RingPreset{Name: o.Name, AltButton: -1})
			idx = len(rings) - 1
		}
		r := &rings[idx]
		if o.Center != nil {
			if utf8.RuneCountInString(*o.Center) != 1 {
				return Preset{}, fmt.Errorf("ring %q: center must be a single character, got %q", o.Name, *o.Center)
			}
			r.CenterKey, _ = utf8.DecodeRuneInString(*o.Center)
		}
		if o.Keys != nil {
			r.DefaultKeys = *o.Keys
		}
		if o.AltKeys != nil {
			r.AltKeys = *o.AltKeys
		}
		if o.XAxis != nil {
			r.XAxis = *o.XAxis
		}
		if o.YAxis != nil {
			r.YAxis = *o.YAxis
		}
		if o.AltButton != nil {
			r.AltButton = *o.AltButton
		}
	}
	p.Rings = rings
	return p, nil
}
