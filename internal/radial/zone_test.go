package radial

import (
	"testing"

	"github.com/verte-zerg/radtype/internal/model"
)

func TestClassifyExactlyOneZone(t *testing.T) {
	cases := []struct {
		sample model.StickSample
		want   Zone
	}{
		{model.StickSample{}, ZoneDead},
		{model.StickSample{X: 0.2}, ZoneDead},
		{model.StickSample{X: 0.5}, ZoneNeutral},
		{model.StickSample{X: 0.85}, ZoneNeutral},
		{model.StickSample{X: 0.86}, ZoneActive},
		{model.StickSample{X: -0.7, Y: -0.7}, ZoneActive},
	}
	for _, c := range cases {
		got := Classify(c.sample, 0.85, 0.2)
		if got.Zone != c.want {
			t.Fatalf("sample %+v: expected %s, got %s", c.sample, c.want, got.Zone)
		}
		flags := 0
		if got.Active {
			flags++
		}
		if got.InTinyZone {
			flags++
		}
		if flags > 1 {
			t.Fatalf("sample %+v: active and tiny at once", c.sample)
		}
		if (got.Zone == ZoneNeutral) != (flags == 0) {
			t.Fatalf("sample %+v: neutral zone must have no flags", c.sample)
		}
	}
}
